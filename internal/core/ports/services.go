package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"encoding/json"

	"voucher-donation-gateway/internal/core/domain"
)

// VoucherRedeemer exchanges a voucher hash for its value at the external service.
type VoucherRedeemer interface {
	Redeem(ctx context.Context, voucherHash string) (*RedemptionResult, error)
}

// RedemptionResult is the normalized outcome of a successful redemption.
type RedemptionResult struct {
	Amount      float64
	RawResponse json.RawMessage
}

// FeedPublisher broadcasts live events to subscribers. Delivery is best-effort.
type FeedPublisher interface {
	Publish(ctx context.Context, event string, payload any) error
}

// --- Service Ports (Business Logic) ---

// DonationService runs the redemption pipeline for one claim.
type DonationService interface {
	// Claim never returns an error; every failure is a ClaimResult with Success=false.
	Claim(ctx context.Context, req ClaimRequest) ClaimResult
}

// ClaimRequest holds validated input for a voucher donation claim.
type ClaimRequest struct {
	VoucherLink string
	DonorName   string
	Message     string
	ClientIP    string
}

// ClaimResult is the outcome reported to the claimant.
type ClaimResult struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    *domain.DonationEvent `json:"data"`
	Err     error                 `json:"-"` // failure cause, nil on success
}

// ReportingService serves dashboard reads from the ledger.
type ReportingService interface {
	RecentDonations(ctx context.Context, limit int) ([]domain.Donation, error)
	// Stats never fails; read faults degrade to zero-valued stats.
	Stats(ctx context.Context) *domain.DonationStats
}
