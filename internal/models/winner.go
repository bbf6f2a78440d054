package models

import (
	"time"
)

// PrizeCategory represents the prize tier a winner was drawn into
type PrizeCategory string

const (
	CategoryJackpot     PrizeCategory = "JACKPOT"
	CategorySecondary   PrizeCategory = "SECONDARY"
	CategoryConsolation PrizeCategory = "CONSOLATION"
)

// ClaimStatus represents the payment-processing state of a winner record
type ClaimStatus string

const (
	ClaimStatusPending ClaimStatus = "PENDING"
	ClaimStatusPaid    ClaimStatus = "PAID"
	ClaimStatusFailed  ClaimStatus = "FAILED"
)

// ValidClaimStatus reports whether s is one of the three claim states. Any
// of them may transition to any other; PAID and FAILED moving back to
// PENDING is how mistaken payment records get corrected.
func ValidClaimStatus(s ClaimStatus) bool {
	switch s {
	case ClaimStatusPending, ClaimStatusPaid, ClaimStatusFailed:
		return true
	}
	return false
}

// Winner represents a winner in a draw, as recorded by the winner ledger.
// IsOptedIn and IsValid are computed by the engine at selection time; a
// winner may be selected yet invalid (e.g. opted out), and both flags are
// surfaced on the console.
type Winner struct {
	ID            string        `json:"id"`
	DrawID        string        `json:"drawId"`
	MSISDN        string        `json:"msisdn"`
	PrizeCategory PrizeCategory `json:"prizeCategory"`
	PrizeAmount   float64       `json:"prizeAmount"`
	IsOptedIn     bool          `json:"isOptedIn"`
	IsValid       bool          `json:"isValid"`
	ClaimStatus   ClaimStatus   `json:"claimStatus"`
	WinDate       time.Time     `json:"winDate"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
