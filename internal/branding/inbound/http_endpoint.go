package inbound

import (
	"github.com/chamindaf/lion-svc/internal/branding/entity"
	"github.com/chamindaf/lion-svc/internal/branding/usecase"
	"github.com/chamindaf/lion-svc/internal/pkg/router"
)

// CreateRequest godoc
//
//	@Summary		Create a branding change request
//	@Tags			branding
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Idempotency-Key	header	string					false	"dedupe key for retries"
//	@Param			payload			body	createRequestRequest	true	"request"
//	@Success		201	{object}	createRequestResponse
//	@Router			/api/v1/branding/requests [post]
func (e *Endpoint) CreateRequest(r *router.Request) (any, error) {
	var req createRequestRequest
	if err := r.DecodeJSON(&req); err != nil {
		return nil, err
	}

	out, err := e.uc.CreateRequest(r.Context(), usecase.CreateRequestInput{
		IdempotencyKey: r.Header("Idempotency-Key"),
		RequestTypeID:  req.RequestTypeID,
		OutletName:     req.OutletName,
		OutletCode:     req.OutletCode,
		AddressLine1:   req.AddressLine1,
		AddressLine2:   req.AddressLine2,
		City:           req.City,
		TerritoryID:    req.TerritoryID,
		ChannelID:      req.ChannelID,
		IsChain:        req.IsChain,
		Urgency:        req.Urgency,
		StatusID:       req.StatusID,
		StageID:        req.StageID,
		ContactName:    req.ContactName,
		ContactNumber:  req.ContactNumber,
		Metadata:       req.Metadata,
	})
	if err != nil {
		return nil, err
	}

	return createRequestResponse{requestResponse: newRequestResponse(*out)}, nil
}

// ListRequests godoc
//
//	@Summary		List branding requests
//	@Tags			branding
//	@Produce		json
//	@Security		BearerAuth
//	@Param			status_id	query	int	false	"filter by status"
//	@Param			limit		query	int	false	"page size"
//	@Param			offset		query	int	false	"rows to skip"
//	@Success		200	{object}	listRequestsResponse
//	@Router			/api/v1/branding/requests [get]
func (e *Endpoint) ListRequests(r *router.Request) (any, error) {
	in := usecase.ListRequestsInput{
		Limit:  r.QueryInt("limit", 20),
		Offset: r.QueryInt("offset", 0),
	}
	if v := r.QueryInt("status_id", 0); v > 0 {
		statusID := int64(v)
		in.StatusID = &statusID
	}

	out, err := e.uc.ListRequests(r.Context(), in)
	if err != nil {
		return nil, err
	}

	requests := make([]requestResponse, 0, len(out.Requests))
	for _, req := range out.Requests {
		requests = append(requests, newRequestResponse(req))
	}

	return listRequestsResponse{
		Requests: requests,
		total:    out.Total,
		limit:    in.Limit,
		offset:   in.Offset,
	}, nil
}

// GetRequest godoc
//
//	@Summary		Get one branding request with its elements
//	@Tags			branding
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	int	true	"request id"
//	@Success		200	{object}	requestDetailResponse
//	@Failure		404	"request not found"
//	@Router			/api/v1/branding/requests/{id} [get]
func (e *Endpoint) GetRequest(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	req, elements, err := e.uc.GetRequest(r.Context(), id)
	if err != nil {
		return nil, err
	}

	els := make([]elementResponse, 0, len(elements))
	for _, el := range elements {
		els = append(els, newElementResponse(el))
	}

	return requestDetailResponse{
		requestResponse: newRequestResponse(*req),
		Elements:        els,
	}, nil
}

// UpdateRequest godoc
//
//	@Summary		Patch a branding request
//	@Tags			branding
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path	int						true	"request id"
//	@Param			payload	body	updateRequestRequest	true	"fields to change"
//	@Success		200	{object}	requestResponse
//	@Failure		403	"not the owner"
//	@Failure		404	"request not found"
//	@Router			/api/v1/branding/requests/{id} [patch]
func (e *Endpoint) UpdateRequest(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req updateRequestRequest
	if err := r.DecodeJSON(&req); err != nil {
		return nil, err
	}

	out, err := e.uc.UpdateRequest(r.Context(), usecase.UpdateRequestInput{
		ID:            id,
		OutletName:    req.OutletName,
		OutletCode:    req.OutletCode,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		City:          req.City,
		TerritoryID:   req.TerritoryID,
		ChannelID:     req.ChannelID,
		IsChain:       req.IsChain,
		Urgency:       req.Urgency,
		StatusID:      req.StatusID,
		StageID:       req.StageID,
		ContactName:   req.ContactName,
		ContactNumber: req.ContactNumber,
		Metadata:      req.Metadata,
		SignedOff:     req.SignedOff,
	})
	if err != nil {
		return nil, err
	}

	return newRequestResponse(*out), nil
}

// DeleteRequest godoc
//
//	@Summary		Delete a branding request
//	@Tags			branding
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	int	true	"request id"
//	@Success		200	{object}	deleteRequestResponse
//	@Failure		403	"not the owner"
//	@Failure		404	"request not found"
//	@Router			/api/v1/branding/requests/{id} [delete]
func (e *Endpoint) DeleteRequest(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := e.uc.DeleteRequest(r.Context(), id); err != nil {
		return nil, err
	}

	return deleteRequestResponse{}, nil
}

// AddElement godoc
//
//	@Summary		Attach a branding element to a request
//	@Tags			branding
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path	int					true	"request id"
//	@Param			payload	body	addElementRequest	true	"element"
//	@Success		201	{object}	addElementResponse
//	@Failure		404	"request not found"
//	@Router			/api/v1/branding/requests/{id}/elements [post]
func (e *Endpoint) AddElement(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req addElementRequest
	if err := r.DecodeJSON(&req); err != nil {
		return nil, err
	}

	out, err := e.uc.AddElement(r.Context(), usecase.AddElementInput{
		RequestID:     id,
		ElementTypeID: req.ElementTypeID,
		Width:         req.Width,
		Height:        req.Height,
		Quantity:      req.Quantity,
		UnitCost:      req.UnitCost,
	})
	if err != nil {
		return nil, err
	}

	return addElementResponse{elementResponse: newElementResponse(*out)}, nil
}

// ListElements godoc
//
//	@Summary		List the elements of a request
//	@Tags			branding
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	int	true	"request id"
//	@Success		200	{array}	elementResponse
//	@Failure		404	"request not found"
//	@Router			/api/v1/branding/requests/{id}/elements [get]
func (e *Endpoint) ListElements(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	elements, err := e.uc.ListElements(r.Context(), id)
	if err != nil {
		return nil, err
	}

	els := make([]elementResponse, 0, len(elements))
	for _, el := range elements {
		els = append(els, newElementResponse(el))
	}

	return els, nil
}

// RemoveElement godoc
//
//	@Summary		Remove an element from a request
//	@Tags			branding
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id			path	int	true	"request id"
//	@Param			element_id	path	int	true	"element id"
//	@Success		200	{object}	removeElementResponse
//	@Failure		404	"request or element not found"
//	@Router			/api/v1/branding/requests/{id}/elements/{element_id} [delete]
func (e *Endpoint) RemoveElement(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	elementID, err := r.ParamInt64("element_id")
	if err != nil {
		return nil, err
	}

	if err := e.uc.RemoveElement(r.Context(), id, elementID); err != nil {
		return nil, err
	}

	return removeElementResponse{}, nil
}

// ListLookups godoc
//
//	@Summary		List lookup values for a category
//	@Tags			branding
//	@Produce		json
//	@Security		BearerAuth
//	@Param			category	path	string	true	"request_type, element_type, status or stage"
//	@Success		200	{array}	lookupResponse
//	@Router			/api/v1/branding/lookups/{category} [get]
func (e *Endpoint) ListLookups(r *router.Request) (any, error) {
	lookups, err := e.uc.ListLookups(r.Context(), entity.LookupCategory(r.Param("category")))
	if err != nil {
		return nil, err
	}

	out := make([]lookupResponse, 0, len(lookups))
	for _, l := range lookups {
		out = append(out, lookupResponse{ID: l.ID, Name: l.Name})
	}

	return out, nil
}
