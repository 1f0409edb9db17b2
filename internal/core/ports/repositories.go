package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"time"

	"voucher-donation-gateway/internal/core/domain"

	"github.com/google/uuid"
)

// DonationRepository is the append-only donation ledger.
type DonationRepository interface {
	// ExistsByVoucherHash reports whether any attempt already holds the hash.
	ExistsByVoucherHash(ctx context.Context, voucherHash string) (bool, error)
	// Create inserts a record. A unique-key violation on the voucher hash
	// returns apperror.ErrDuplicateVoucher; any other fault ErrPersistenceFailure.
	Create(ctx context.Context, donation *domain.Donation) (uuid.UUID, error)
	// ListRecentCompleted returns completed donations, newest first.
	ListRecentCompleted(ctx context.Context, limit int) ([]domain.Donation, error)
	// GetStats aggregates completed donations.
	GetStats(ctx context.Context) (*domain.DonationStats, error)
}

// RedeemedVoucherCache is the Redis-layer duplicate check (fast path).
// It only ever holds hashes that already have a ledger record.
type RedeemedVoucherCache interface {
	Seen(ctx context.Context, voucherHash string) (bool, error)
	Mark(ctx context.Context, voucherHash string, ttl time.Duration) error
}
