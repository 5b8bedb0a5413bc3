// Package entity holds the branding domain types.
package entity

import (
	"time"

	"github.com/chamindaf/lion-svc/internal/pkg/valueobject"
)

// Urgency grades how fast a branding request should be handled.
type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

// Request is a branding change request for one outlet.
type Request struct {
	ID            int64
	RequestTypeID int64
	OutletName    string
	OutletCode    string
	AddressLine1  string
	AddressLine2  string
	City          string
	TerritoryID   *int64
	ChannelID     *int64
	IsChain       bool
	Urgency       Urgency
	StatusID      int64
	StageID       int64
	ContactName   string
	ContactNumber string
	Metadata      valueobject.JSONMap
	SignedOffAt   *time.Time
	CreatedBy     int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
