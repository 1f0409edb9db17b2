package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"voucher-donation-gateway/internal/core/domain"
	"voucher-donation-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedDonation() *domain.Donation {
	return &domain.Donation{
		ID:          uuid.New(),
		DonorName:   "Alice",
		Amount:      50,
		Message:     "keep it up",
		VoucherHash: "ABC123",
		VoucherLink: "https://x/campaign/?v=ABC123",
		IPAddress:   "1.2.3.4",
		Status:      domain.DonationStatusCompleted,
		RawResponse: json.RawMessage(`{"success":true}`),
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestDonationRepo_ExistsByVoucherHash(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ABC123").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByVoucherHash(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_ExistsByVoucherHash_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ABC123").
		WillReturnError(errors.New("connection reset"))

	_, err = repo.ExistsByVoucherHash(context.Background(), "ABC123")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_Create_Completed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)
	d := completedDonation()

	mock.ExpectQuery("INSERT INTO donations").
		WithArgs(d.ID, d.DonorName, d.Amount, d.Message, "ABC123", d.VoucherLink,
			d.IPAddress, d.Status, nil, []byte(d.RawResponse), d.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(d.ID))

	id, err := repo.Create(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, d.ID, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_Create_FailedWithoutHashStoresNulls(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)
	d := completedDonation()
	d.Status = domain.DonationStatusFailed
	d.Amount = 0
	d.VoucherHash = ""
	d.RawResponse = nil
	d.ErrorMessage = "[SYS_004] redemption mobile number is not configured"

	mock.ExpectQuery("INSERT INTO donations").
		WithArgs(d.ID, d.DonorName, 0.0, d.Message, nil, d.VoucherLink,
			d.IPAddress, d.Status, d.ErrorMessage, nil, d.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(d.ID))

	_, err = repo.Create(context.Background(), d)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_Create_UniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)

	mock.ExpectQuery("INSERT INTO donations").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_donations_voucher_hash"})

	_, err = repo.Create(context.Background(), completedDonation())
	assert.True(t, errors.Is(err, apperror.ErrDuplicateVoucher()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_Create_OtherFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"primary key collision", &pgconn.PgError{Code: "23505", ConstraintName: "donations_pkey"}},
		{"check violation", &pgconn.PgError{Code: "23514", ConstraintName: "donations_completed_amount"}},
		{"connection", errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			repo := NewDonationRepo(mock)
			mock.ExpectQuery("INSERT INTO donations").WillReturnError(tt.err)

			_, err = repo.Create(context.Background(), completedDonation())
			assert.True(t, errors.Is(err, apperror.ErrPersistenceFailure(nil)))
			assert.False(t, errors.Is(err, apperror.ErrDuplicateVoucher()))
		})
	}
}

func TestDonationRepo_ListRecentCompleted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	newer, older := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT .+ FROM donations WHERE status = 'completed'").
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "donor_name", "amount", "message", "status", "created_at"}).
			AddRow(newer, "Bob", 20.0, "", domain.DonationStatusCompleted, now).
			AddRow(older, "Alice", 50.0, "hi", domain.DonationStatusCompleted, now.Add(-time.Hour)))

	donations, err := repo.ListRecentCompleted(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, donations, 2)
	assert.Equal(t, newer, donations[0].ID)
	assert.Equal(t, "Alice", donations[1].DonorName)
	assert.Equal(t, 50.0, donations[1].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_GetStats(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)
	last := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT .+ FROM donations WHERE status = 'completed'").
		WillReturnRows(pgxmock.NewRows([]string{"total_amount", "total_donations", "average_amount", "top_donation", "last_donation_at"}).
			AddRow(150.0, int64(3), 50.0, 100.0, &last))

	stats, err := repo.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150.0, stats.TotalAmount)
	assert.Equal(t, int64(3), stats.TotalDonations)
	assert.Equal(t, 50.0, stats.AverageAmount)
	assert.Equal(t, 100.0, stats.TopDonation)
	require.NotNil(t, stats.LastDonationAt)
	assert.Equal(t, last, *stats.LastDonationAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_GetStats_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM donations WHERE status = 'completed'").
		WillReturnRows(pgxmock.NewRows([]string{"total_amount", "total_donations", "average_amount", "top_donation", "last_donation_at"}).
			AddRow(0.0, int64(0), 0.0, 0.0, nil))

	stats, err := repo.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DonationStats{}, *stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	hc := NewHealthCheck(mock)
	mock.ExpectPing()
	mock.ExpectExec("SELECT 1 FROM donations").WillReturnResult(pgxmock.NewResult("SELECT", 0))

	assert.NoError(t, hc.Ping(context.Background()))
	assert.Equal(t, "postgresql", hc.Name())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck_MissingSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	hc := NewHealthCheck(mock)
	mock.ExpectPing()
	mock.ExpectExec("SELECT 1 FROM donations").WillReturnError(errors.New(`relation "donations" does not exist`))

	err = hc.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "donation ledger schema")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck_Unreachable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	hc := NewHealthCheck(mock)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	err = hc.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "donation ledger")
	assert.NoError(t, mock.ExpectationsWereMet())
}
