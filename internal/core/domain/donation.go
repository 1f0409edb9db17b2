package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Field limits for donor-supplied text.
const (
	MaxDonorNameLength = 100
	MaxMessageLength   = 500
)

// MaxAmount is the largest baht amount the ledger column holds (NUMERIC(12,2)).
const MaxAmount = 9_999_999_999.99

// EventNewDonation is the live feed event emitted for each completed donation.
const EventNewDonation = "new-donation"

// DonationStatus represents the lifecycle state of a redemption attempt.
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusFailed    DonationStatus = "failed"
)

// Donation is one append-only ledger entry for a voucher redemption attempt.
type Donation struct {
	ID           uuid.UUID       `json:"id"`
	DonorName    string          `json:"donor_name"`
	Amount       float64         `json:"amount"` // 0 for failed attempts
	Message      string          `json:"message"`
	VoucherHash  string          `json:"-"` // empty when the voucher never reached the redemption service
	VoucherLink  string          `json:"-"`
	IPAddress    string          `json:"-"`
	Status       DonationStatus  `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
	RawResponse  json.RawMessage `json:"-"` // upstream payload kept for forensic replay
	CreatedAt    time.Time       `json:"created_at"`
}

// IsTerminal returns true if the attempt reached a final state.
func (d *Donation) IsTerminal() bool {
	return d.Status == DonationStatusCompleted || d.Status == DonationStatusFailed
}

// Validate checks the ledger invariants for the record's status.
func (d *Donation) Validate() error {
	if d.DonorName == "" || len([]rune(d.DonorName)) > MaxDonorNameLength {
		return errors.New("donor name must be 1-100 characters")
	}
	if len([]rune(d.Message)) > MaxMessageLength {
		return errors.New("message must be at most 500 characters")
	}
	switch d.Status {
	case DonationStatusCompleted:
		if d.Amount <= 0 {
			return errors.New("completed donation requires a positive amount")
		}
		if d.VoucherHash == "" {
			return errors.New("completed donation requires a voucher hash")
		}
	case DonationStatusFailed:
		if d.Amount != 0 {
			return errors.New("failed donation must have zero amount")
		}
		if d.ErrorMessage == "" {
			return errors.New("failed donation requires an error message")
		}
	case DonationStatusPending:
	default:
		return errors.New("unknown donation status")
	}
	return nil
}

// Event builds the live feed payload for a completed donation.
func (d *Donation) Event() DonationEvent {
	return DonationEvent{
		ID:        d.ID,
		DonorName: d.DonorName,
		Amount:    d.Amount,
		Message:   d.Message,
		Timestamp: d.CreatedAt,
	}
}

// DonationEvent is broadcast to live feed subscribers. It is never persisted.
type DonationEvent struct {
	ID        uuid.UUID `json:"id"`
	DonorName string    `json:"donor_name"`
	Amount    float64   `json:"amount"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// DonationStats aggregates all completed donations.
type DonationStats struct {
	TotalAmount    float64    `json:"total_amount"`
	TotalDonations int64      `json:"total_donations"`
	AverageAmount  float64    `json:"average_amount"`
	TopDonation    float64    `json:"top_donation"`
	LastDonationAt *time.Time `json:"last_donation_at"` // nil when no donation is completed
}
