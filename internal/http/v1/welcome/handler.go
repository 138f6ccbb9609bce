// Package welcome implements the submission endpoint that echoes its payload
// next to a fixed welcome message.
package welcome

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/welcome-api/internal/platform/logging"
)

// Register wires the welcome routes into the provided API.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "submit-test",
		Method:        http.MethodPost,
		Path:          "/test",
		Summary:       "Echo a message with the welcome text",
		Tags:          []string{"welcome"},
		DefaultStatus: http.StatusOK,
	}, submitHandler)
}

func submitHandler(ctx context.Context, input *SubmitInput) (*SubmitOutput, error) {
	applog.LogInfo(ctx, "welcome submit",
		zap.String("path", "/test"),
		zap.Bool("hasMessage", input.Body.Message != nil),
	)
	return &SubmitOutput{Body: Build(input.Body)}, nil
}

// Build derives the response for a validated payload. It has no side effects.
func Build(p Payload) Response {
	return Response{
		MessageDefault: DefaultMessage,
		Data:           p,
		Message:        p.Message,
	}
}
