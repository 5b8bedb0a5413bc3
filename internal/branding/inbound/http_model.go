package inbound

import (
	"net/http"
	"time"

	"github.com/chamindaf/lion-svc/internal/branding/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/valueobject"
)

type createRequestRequest struct {
	RequestTypeID int64               `json:"request_type_id"`
	OutletName    string              `json:"outlet_name"`
	OutletCode    string              `json:"outlet_code"`
	AddressLine1  string              `json:"address_line1"`
	AddressLine2  string              `json:"address_line2"`
	City          string              `json:"city"`
	TerritoryID   *int64              `json:"territory_id"`
	ChannelID     *int64              `json:"channel_id"`
	IsChain       bool                `json:"is_chain"`
	Urgency       string              `json:"urgency"`
	StatusID      int64               `json:"status_id"`
	StageID       int64               `json:"stage_id"`
	ContactName   string              `json:"contact_name"`
	ContactNumber string              `json:"contact_number"`
	Metadata      valueobject.JSONMap `json:"metadata"`
}

type requestResponse struct {
	ID            int64               `json:"id"`
	RequestTypeID int64               `json:"request_type_id"`
	OutletName    string              `json:"outlet_name"`
	OutletCode    string              `json:"outlet_code"`
	AddressLine1  string              `json:"address_line1"`
	AddressLine2  string              `json:"address_line2,omitempty"`
	City          string              `json:"city,omitempty"`
	TerritoryID   *int64              `json:"territory_id,omitempty"`
	ChannelID     *int64              `json:"channel_id,omitempty"`
	IsChain       bool                `json:"is_chain"`
	Urgency       string              `json:"urgency"`
	StatusID      int64               `json:"status_id"`
	StageID       int64               `json:"stage_id"`
	ContactName   string              `json:"contact_name"`
	ContactNumber string              `json:"contact_number"`
	Metadata      valueobject.JSONMap `json:"metadata,omitempty"`
	SignedOffAt   *time.Time          `json:"signed_off_at,omitempty"`
	CreatedBy     int64               `json:"created_by"`
	CreatedAt     time.Time           `json:"created_on"`
	UpdatedAt     time.Time           `json:"updated_on"`
}

func newRequestResponse(r entity.Request) requestResponse {
	return requestResponse{
		ID:            r.ID,
		RequestTypeID: r.RequestTypeID,
		OutletName:    r.OutletName,
		OutletCode:    r.OutletCode,
		AddressLine1:  r.AddressLine1,
		AddressLine2:  r.AddressLine2,
		City:          r.City,
		TerritoryID:   r.TerritoryID,
		ChannelID:     r.ChannelID,
		IsChain:       r.IsChain,
		Urgency:       string(r.Urgency),
		StatusID:      r.StatusID,
		StageID:       r.StageID,
		ContactName:   r.ContactName,
		ContactNumber: r.ContactNumber,
		Metadata:      r.Metadata,
		SignedOffAt:   r.SignedOffAt,
		CreatedBy:     r.CreatedBy,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

type createRequestResponse struct {
	requestResponse
}

func (createRequestResponse) StatusCode() int {
	return http.StatusCreated
}

type requestDetailResponse struct {
	requestResponse

	Elements []elementResponse `json:"elements"`
}

type listRequestsResponse struct {
	Requests []requestResponse `json:"requests"`

	total  int64
	limit  int
	offset int
}

func (r listRequestsResponse) Meta() map[string]any {
	return map[string]any{
		"total":  r.total,
		"limit":  r.limit,
		"offset": r.offset,
	}
}

type updateRequestRequest struct {
	OutletName    *string             `json:"outlet_name"`
	OutletCode    *string             `json:"outlet_code"`
	AddressLine1  *string             `json:"address_line1"`
	AddressLine2  *string             `json:"address_line2"`
	City          *string             `json:"city"`
	TerritoryID   *int64              `json:"territory_id"`
	ChannelID     *int64              `json:"channel_id"`
	IsChain       *bool               `json:"is_chain"`
	Urgency       *string             `json:"urgency"`
	StatusID      *int64              `json:"status_id"`
	StageID       *int64              `json:"stage_id"`
	ContactName   *string             `json:"contact_name"`
	ContactNumber *string             `json:"contact_number"`
	Metadata      valueobject.JSONMap `json:"metadata"`
	SignedOff     *bool               `json:"signed_off"`
}

type deleteRequestResponse struct{}

func (deleteRequestResponse) Message() string {
	return "branding request deleted"
}

type addElementRequest struct {
	ElementTypeID int64   `json:"element_type_id"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Quantity      int     `json:"quantity"`
	UnitCost      float64 `json:"unit_cost"`
}

type elementResponse struct {
	ID            int64   `json:"id"`
	RequestID     int64   `json:"request_id"`
	ElementTypeID int64   `json:"element_type_id"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Quantity      int     `json:"quantity"`
	UnitCost      float64 `json:"unit_cost"`
	TotalCost     float64 `json:"total_cost"`
}

func newElementResponse(el entity.Element) elementResponse {
	return elementResponse{
		ID:            el.ID,
		RequestID:     el.RequestID,
		ElementTypeID: el.ElementTypeID,
		Width:         el.Width,
		Height:        el.Height,
		Quantity:      el.Quantity,
		UnitCost:      el.UnitCost,
		TotalCost:     el.TotalCost(),
	}
}

type addElementResponse struct {
	elementResponse
}

func (addElementResponse) StatusCode() int {
	return http.StatusCreated
}

type removeElementResponse struct{}

func (removeElementResponse) Message() string {
	return "branding element removed"
}

type lookupResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
