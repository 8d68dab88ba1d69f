package model

import "time"

// PlatformSettingsID is the _id of the single settings document.
const PlatformSettingsID = "default"

// PlatformSettings is the admin-tunable configuration consulted at operation
// time: the commission rate applied on job acceptance and the balance floor a
// technician must hold to accept any job. CommissionRate is kept as a decimal
// string to avoid float drift in storage.
type PlatformSettings struct {
	ID                     string    `json:"-" bson:"_id"`
	CommissionRate         string    `json:"commission_rate" bson:"commission_rate"`
	MinimumBalanceToAccept int64     `json:"minimum_balance_to_accept" bson:"minimum_balance_to_accept"`
	TravelFee              int64     `json:"travel_fee" bson:"travel_fee"`
	UpdatedAt              time.Time `json:"updated_at" bson:"updated_at"`
}

// PlatformSettingsUpdate carries admin edits; amounts arrive as decimal EGP
// strings and nil fields are left unchanged.
type PlatformSettingsUpdate struct {
	CommissionRate         *string `json:"commission_rate,omitempty"`
	MinimumBalanceToAccept *string `json:"minimum_balance_to_accept,omitempty"`
	TravelFee              *string `json:"travel_fee,omitempty"`
}
