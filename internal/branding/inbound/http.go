// Package inbound exposes the branding operations over HTTP.
package inbound

import (
	"context"
	"net/http"

	"github.com/chamindaf/lion-svc/internal/branding/entity"
	"github.com/chamindaf/lion-svc/internal/branding/usecase"
	"github.com/chamindaf/lion-svc/internal/pkg/router"
)

type brandingUsecase interface {
	CreateRequest(ctx context.Context, in usecase.CreateRequestInput) (*entity.Request, error)
	GetRequest(ctx context.Context, id int64) (*entity.Request, []entity.Element, error)
	ListRequests(ctx context.Context, in usecase.ListRequestsInput) (*usecase.ListRequestsOutput, error)
	UpdateRequest(ctx context.Context, in usecase.UpdateRequestInput) (*entity.Request, error)
	DeleteRequest(ctx context.Context, id int64) error
	AddElement(ctx context.Context, in usecase.AddElementInput) (*entity.Element, error)
	ListElements(ctx context.Context, requestID int64) ([]entity.Element, error)
	RemoveElement(ctx context.Context, requestID, elementID int64) error
	ListLookups(ctx context.Context, category entity.LookupCategory) ([]entity.Lookup, error)
}

// Endpoint holds the HTTP handlers for the branding module.
type Endpoint struct {
	uc brandingUsecase
}

// NewEndpoint creates the branding endpoints.
func NewEndpoint(uc brandingUsecase) *Endpoint {
	return &Endpoint{uc: uc}
}

// RegisterRoutes mounts the branding routes; all require a bearer token.
func (e *Endpoint) RegisterRoutes(rtr *router.Router) {
	rtr.Endpoint(http.MethodPost, "/api/v1/branding/requests", e.CreateRequest)
	rtr.Endpoint(http.MethodGet, "/api/v1/branding/requests", e.ListRequests)
	rtr.Endpoint(http.MethodGet, "/api/v1/branding/requests/:id", e.GetRequest)
	rtr.Endpoint(http.MethodPatch, "/api/v1/branding/requests/:id", e.UpdateRequest)
	rtr.Endpoint(http.MethodDelete, "/api/v1/branding/requests/:id", e.DeleteRequest)

	rtr.Endpoint(http.MethodPost, "/api/v1/branding/requests/:id/elements", e.AddElement)
	rtr.Endpoint(http.MethodGet, "/api/v1/branding/requests/:id/elements", e.ListElements)
	rtr.Endpoint(http.MethodDelete, "/api/v1/branding/requests/:id/elements/:element_id", e.RemoveElement)

	rtr.Endpoint(http.MethodGet, "/api/v1/branding/lookups/:category", e.ListLookups)
}
