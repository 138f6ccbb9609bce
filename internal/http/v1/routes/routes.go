package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/welcome-api/internal/http/v1/welcome"
)

// Register wires all v1 routes into the provided API.
func Register(api huma.API) {
	welcome.Register(api)
}
