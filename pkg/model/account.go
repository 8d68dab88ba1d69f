package model

import "time"

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleTechnician Role = "technician"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Account is a wallet-holding marketplace participant. Balance is in piasters
// and is mutated only through the wallet repository's conditional updates.
// ApprovalStatus is set for technicians only; once approved or rejected it
// never reverts to pending.
type Account struct {
	ID             string         `json:"id" bson:"_id" validate:"required,uuid4"`
	Role           Role           `json:"role" bson:"role" validate:"required,oneof=customer technician"`
	Name           string         `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Balance        int64          `json:"balance" bson:"balance" validate:"min=0"`
	Expertise      string         `json:"expertise,omitempty" bson:"expertise,omitempty" validate:"omitempty,min=2,max=100"`
	Documents      []string       `json:"documents,omitempty" bson:"documents,omitempty" validate:"omitempty,max=10,dive,min=1"`
	ApprovalStatus ApprovalStatus `json:"approval_status,omitempty" bson:"approval_status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
}

func (a *Account) IsTechnician() bool {
	return a.Role == RoleTechnician
}

func (a *Account) IsApproved() bool {
	return a.ApprovalStatus == ApprovalApproved
}
