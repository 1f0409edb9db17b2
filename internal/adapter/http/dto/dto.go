package dto

import (
	"time"

	"voucher-donation-gateway/internal/core/domain"

	"github.com/google/uuid"
)

// DonationRequest is the request body for a voucher donation claim.
// Donor text is stored as typed; JSON output escapes it for HTML.
type DonationRequest struct {
	VoucherLink string `json:"voucher_link" binding:"required,max=2048" sanitize:"trim"`
	DonorName   string `json:"donor_name" binding:"required,max=100,single_line" sanitize:"trim"`
	Message     string `json:"message" binding:"max=500" sanitize:"trim"`
}

// DonationItem is one completed donation in the recent list.
type DonationItem struct {
	ID        uuid.UUID `json:"id"`
	DonorName string    `json:"donor_name"`
	Amount    float64   `json:"amount"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDonationItems maps ledger records to list items, never returning nil.
func NewDonationItems(donations []domain.Donation) []DonationItem {
	items := make([]DonationItem, 0, len(donations))
	for _, d := range donations {
		items = append(items, DonationItem{
			ID:        d.ID,
			DonorName: d.DonorName,
			Amount:    d.Amount,
			Message:   d.Message,
			CreatedAt: d.CreatedAt,
		})
	}
	return items
}
