// Package respond renders RFC 9457 problem details for errors raised outside
// Huma operations and routes Huma's own errors through the request logger.
package respond

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	applog "github.com/janisto/welcome-api/internal/platform/logging"
)

const (
	problemContentType = "application/problem+json"

	msgNotFound         = "resource not found"
	msgInternalServer   = "internal server error"
	msgMethodNotAllowed = "method %s not allowed"
)

var installOnce sync.Once

// Install wraps huma.NewErrorWithContext so every error response produced by
// an operation (validation failures included) is logged with the request
// logger. The response body is left as huma.ErrorModel.
func Install() {
	installOnce.Do(func() {
		build := huma.NewError
		huma.NewErrorWithContext = func(hctx huma.Context, status int, msg string, errs ...error) huma.StatusError {
			ctx := context.Background()
			if hctx != nil {
				ctx = hctx.Context()
			}
			se := build(status, msg, errs...)
			logStatus(ctx, status, msg, errs)
			return se
		}
	})
}

// WriteProblem writes a problem details body with the given status.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string, errs ...error) {
	logStatus(r.Context(), status, detail, errs)

	problem := &huma.ErrorModel{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(problem); err != nil {
		applog.LogError(r.Context(), "failed to write problem response", err)
	}
}

// NotFoundHandler answers unmatched routes.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteProblem(w, r, http.StatusNotFound, msgNotFound)
	}
}

// MethodNotAllowedHandler answers known paths requested with an unsupported
// method and lists the supported ones in Allow.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		WriteProblem(w, r, http.StatusMethodNotAllowed, fmt.Sprintf(msgMethodNotAllowed, r.Method))
	}
}

// Recoverer turns panics into 500 problem responses. http.ErrAbortHandler is
// re-raised so net/http can abort the connection, and nothing is written if
// the handler already started its response.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				err := fmt.Errorf("panic: %v\n%s", rec, debug.Stack())
				if rw.wroteHeader {
					applog.LogError(r.Context(), "panic after response started", err)
					return
				}
				WriteProblem(rw, r, http.StatusInternalServerError, msgInternalServer, err)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

// responseWriter records whether the response header has been sent.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(status int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// allowedMethods asks chi's route tree which methods match the request path.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	path := rctx.RoutePath
	if path == "" {
		path = r.URL.Path
	}
	if path == "" {
		path = "/"
	}

	var allowed []string
	for _, method := range []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	} {
		if rctx.Routes.Match(chi.NewRouteContext(), method, path) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

// logStatus logs 5xx as errors and 4xx as warnings; anything else is not an error.
func logStatus(ctx context.Context, status int, msg string, errs []error) {
	if status < http.StatusBadRequest {
		return
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	fields := []zap.Field{zap.Int("status", status)}
	var details []string
	for _, err := range errs {
		if err == nil {
			continue
		}
		var detailer huma.ErrorDetailer
		if errors.As(err, &detailer) {
			if d := detailer.ErrorDetail(); d != nil {
				details = append(details, d.Location+": "+d.Message)
				continue
			}
		}
		if status < http.StatusInternalServerError {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		fields = append(fields, zap.Strings("details", details))
	}

	if status >= http.StatusInternalServerError {
		applog.LogError(ctx, msg, errors.Join(errs...), fields...)
		return
	}
	applog.LogWarn(ctx, msg, fields...)
}
