package postgres

import (
	"context"
	"errors"
	"fmt"

	"voucher-donation-gateway/internal/core/domain"
	"voucher-donation-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation  = "23505"
	voucherHashIndex = "idx_donations_voucher_hash"
)

// DonationRepo implements ports.DonationRepository.
type DonationRepo struct {
	pool Pool
}

// NewDonationRepo creates a new DonationRepo.
func NewDonationRepo(pool Pool) *DonationRepo {
	return &DonationRepo{pool: pool}
}

// ExistsByVoucherHash checks whether any recorded attempt holds the hash.
func (r *DonationRepo) ExistsByVoucherHash(ctx context.Context, voucherHash string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM donations WHERE voucher_hash = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, voucherHash).Scan(&exists); err != nil {
		return false, fmt.Errorf("check voucher hash exists: %w", err)
	}
	return exists, nil
}

// Create appends a donation record. An empty voucher hash is stored as NULL.
func (r *DonationRepo) Create(ctx context.Context, d *domain.Donation) (uuid.UUID, error) {
	query := `INSERT INTO donations (id, donor_name, amount, message, voucher_hash, voucher_link,
		ip_address, status, error_message, raw_response, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		d.ID, d.DonorName, d.Amount, d.Message, nullIfEmpty(d.VoucherHash), d.VoucherLink,
		d.IPAddress, d.Status, nullIfEmpty(d.ErrorMessage), nullJSON(d.RawResponse), d.CreatedAt,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == voucherHashIndex {
			return uuid.Nil, apperror.ErrDuplicateVoucher()
		}
		return uuid.Nil, apperror.ErrPersistenceFailure(fmt.Errorf("insert donation: %w", err))
	}
	return id, nil
}

// ListRecentCompleted fetches completed donations, newest first.
func (r *DonationRepo) ListRecentCompleted(ctx context.Context, limit int) ([]domain.Donation, error) {
	query := `SELECT id, donor_name, amount, message, status, created_at
		FROM donations WHERE status = 'completed'
		ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent donations: %w", err)
	}
	defer rows.Close()

	var donations []domain.Donation
	for rows.Next() {
		d := domain.Donation{}
		if err := rows.Scan(&d.ID, &d.DonorName, &d.Amount, &d.Message, &d.Status, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan donation row: %w", err)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donation rows: %w", err)
	}
	return donations, nil
}

// GetStats aggregates completed donations. With none, every numeric field
// is zero and LastDonationAt is nil.
func (r *DonationRepo) GetStats(ctx context.Context) (*domain.DonationStats, error) {
	query := `SELECT
		COALESCE(SUM(amount), 0)::float8 AS total_amount,
		COUNT(*) AS total_donations,
		COALESCE(AVG(amount), 0)::float8 AS average_amount,
		COALESCE(MAX(amount), 0)::float8 AS top_donation,
		MAX(created_at) AS last_donation_at
		FROM donations WHERE status = 'completed'`

	stats := &domain.DonationStats{}
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalAmount, &stats.TotalDonations, &stats.AverageAmount,
		&stats.TopDonation, &stats.LastDonationAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get donation stats: %w", err)
	}
	return stats, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
