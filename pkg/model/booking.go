package model

import "time"

type BookingStatus string

// Status values follow the names persisted by the original storefront.
const (
	StatusPendingAssignment     BookingStatus = "pending_technician_assignment"
	StatusAssigned              BookingStatus = "technician_assigned"
	StatusCompletedByTechnician BookingStatus = "completed_by_technician"
	StatusCompleted             BookingStatus = "completed"
	StatusCancelled             BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPendingAssignment, StatusAssigned, StatusCompletedByTechnician, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Booking is append-only at creation; after that only Status, TechnicianID
// and CommissionCharged change, and only through the repository's
// status-guarded Transition. TechnicianID and CommissionCharged are set
// exactly once, when the booking moves into technician_assigned.
type Booking struct {
	ID                 string        `json:"id" bson:"_id" validate:"required,uuid4"`
	CustomerID         string        `json:"customer_id" bson:"customer_id" validate:"required,uuid4"`
	DeviceType         string        `json:"device_type" bson:"device_type" validate:"required,min=2,max=100"`
	ProblemDescription string        `json:"problem_description" bson:"problem_description" validate:"required,min=5,max=1000"`
	PreferredDate      string        `json:"preferred_date" bson:"preferred_date" validate:"required,datetime=2006-01-02"`
	PreferredTimeSlot  string        `json:"preferred_time_slot" bson:"preferred_time_slot" validate:"required,min=2,max=50"`
	Status             BookingStatus `json:"status" bson:"status" validate:"required,oneof=pending_technician_assignment technician_assigned completed_by_technician completed cancelled"`
	TechnicianID       string        `json:"technician_id,omitempty" bson:"technician_id,omitempty" validate:"omitempty,uuid4"`
	TravelFeeCharged   int64         `json:"travel_fee_charged" bson:"travel_fee_charged" validate:"min=0"`
	CommissionCharged  *int64        `json:"commission_charged,omitempty" bson:"commission_charged,omitempty"`
	CreatedAt          time.Time     `json:"created_at" bson:"created_at"`
}

// BookingMutation is the only write shape Transition accepts: the fields an
// assignment or status change may touch.
type BookingMutation struct {
	Status            BookingStatus
	TechnicianID      string
	CommissionCharged *int64
}

// ServiceRequest is the customer-facing create payload. The travel fee is
// never client-supplied; it comes from platform settings at request time.
type ServiceRequest struct {
	CustomerID         string `json:"customer_id"`
	DeviceType         string `json:"device_type"`
	ProblemDescription string `json:"problem_description"`
	PreferredDate      string `json:"preferred_date"`
	PreferredTimeSlot  string `json:"preferred_time_slot"`
}
