package model

import "time"

type LedgerCause string

const (
	CauseTravelFee  LedgerCause = "travel_fee"
	CauseCommission LedgerCause = "commission"
	CauseTopUp      LedgerCause = "top_up"
	CauseReversal   LedgerCause = "reversal"
)

// LedgerEntry records one balance mutation. Delta is signed piasters and
// Balance is the account balance immediately after the mutation, so summing
// deltas per account reconciles against the stored balance.
type LedgerEntry struct {
	ID        string      `json:"id" bson:"_id"`
	AccountID string      `json:"account_id" bson:"account_id"`
	BookingID string      `json:"booking_id,omitempty" bson:"booking_id,omitempty"`
	Cause     LedgerCause `json:"cause" bson:"cause"`
	Delta     int64       `json:"delta" bson:"delta"`
	Balance   int64       `json:"balance" bson:"balance"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}
