package service

import (
	"context"
)

// Vendor event types published on lifecycle transitions and payout settlement.
const (
	EventVendorApproved = "vendor.approved"
	EventVendorRejected = "vendor.rejected"
	EventPayoutSettled  = "payout.settled"
)

// VendorEvent represents a domain event emitted after a vendor lifecycle
// transition or a settled payout. Downstream settlement and notification
// systems consume these asynchronously.
type VendorEvent struct {
	RequestID       string `json:"request_id,omitempty"` // For distributed tracing
	Type            string `json:"type"`
	VendorProfileID string `json:"vendor_profile_id"`
	BusinessName    string `json:"business_name,omitempty"`
	PayoutRequestID string `json:"payout_request_id,omitempty"`
	Amount          string `json:"amount,omitempty"`  // Decimal string, e.g. "60.00"
	Balance         string `json:"balance,omitempty"` // Balance after the operation
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishVendorEvent publishes a vendor event for async processing
	PublishVendorEvent(ctx context.Context, event *VendorEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
