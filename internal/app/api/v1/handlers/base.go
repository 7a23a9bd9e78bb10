// Package handlers contains the REST endpoints of the expense portal API.
package handlers

import (
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/tkrause/expense-portal/internal/app/api/core"
	"github.com/tkrause/expense-portal/internal/app/api/core/middleware/cors"
	"github.com/tkrause/expense-portal/internal/app/api/core/middleware/tracing"
	"github.com/tkrause/expense-portal/internal/app/api/core/respond"
	"github.com/tkrause/expense-portal/internal/app/api/v1/models"
	"github.com/tkrause/expense-portal/internal/config"
	"github.com/tkrause/expense-portal/internal/domain"
)

type Handler interface {
	// GetName returns the name of the handler.
	GetName() string
	// RegisterRoutes registers the routes for the handler.
	RegisterRoutes(g *routegroup.Bundle)
}

// NewRestApi mounts all v1 endpoints. Every route runs behind the tenant
// resolver so that handlers always find a caller identity in the context.
func NewRestApi(cfg *config.Config, handlers ...Handler) core.ApiEndpointSetupFunc {
	tenants := tenantResolver{cfg: cfg}

	return func() (core.ApiVersion, core.GroupSetupFn) {
		return "v1", func(group *routegroup.Bundle) {
			group.Use(cors.New().Handler)
			group.Use(tenants.Resolve)

			for _, h := range handlers {
				h.RegisterRoutes(group)
			}
		}
	}
}

// SendError renders any error as a failure envelope. Recognized application
// errors keep their status code, code, message and details untouched;
// everything else becomes an opaque internal server error.
func SendError(w http.ResponseWriter, r *http.Request, err error) {
	requestId := tracing.RequestId(r.Context())

	if dErr, ok := domain.AsDomainError(err); ok {
		respond.JSON(w, dErr.StatusCode,
			models.NewErrorResponse(dErr.Code, dErr.Message, dErr.Details, requestId))
		return
	}

	message := "something went wrong"
	if err != nil {
		message = err.Error()
	}

	respond.JSON(w, http.StatusInternalServerError,
		models.NewErrorResponse("INTERNAL_ERROR", message, nil, requestId))
}

// region handler-interfaces

type Validator interface {
	// Struct validates the given struct and returns one detail entry per violation.
	Struct(s any) []domain.DetailEntry
	// BindErrorDetails turns a request body decoding failure into detail entries,
	// including the violations of the fields that did decode.
	BindErrorDetails(err error, target any) []domain.DetailEntry
}

// endregion handler-interfaces
