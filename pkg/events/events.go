// Package events defines the lifecycle events published for the notification
// service. Payloads carry enough to render a message without a read-back.
package events

// Event types carried in the event-type header.
const (
	TypeBookingCreated     = "booking.created"
	TypeBookingAssigned    = "booking.assigned"
	TypeBookingCompletedBy = "booking.completed_by_technician"
	TypeBookingConfirmed   = "booking.confirmed"
	TypeBookingCancelled   = "booking.cancelled"

	TypeWalletCredited = "wallet.credited"

	TypeTechnicianApproved = "technician.approved"
	TypeTechnicianRejected = "technician.rejected"
)

// Amounts are piasters, matching the ledger.

type BookingCreated struct {
	BookingID        string `json:"booking_id"`
	CustomerID       string `json:"customer_id"`
	DeviceType       string `json:"device_type"`
	PreferredDate    string `json:"preferred_date"`
	PreferredSlot    string `json:"preferred_time_slot"`
	TravelFeeCharged int64  `json:"travel_fee_charged"`
}

type BookingAssigned struct {
	BookingID         string `json:"booking_id"`
	CustomerID        string `json:"customer_id"`
	TechnicianID      string `json:"technician_id"`
	CommissionCharged int64  `json:"commission_charged"`
}

type BookingStatusChanged struct {
	BookingID    string `json:"booking_id"`
	CustomerID   string `json:"customer_id"`
	TechnicianID string `json:"technician_id,omitempty"`
	Status       string `json:"status"`
}

type WalletCredited struct {
	AccountID string `json:"account_id"`
	Amount    int64  `json:"amount"`
	Balance   int64  `json:"balance"`
}

type ApprovalDecided struct {
	TechnicianID string `json:"technician_id"`
	Status       string `json:"status"`
}
