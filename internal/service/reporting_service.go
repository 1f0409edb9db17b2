package service

import (
	"context"

	"voucher-donation-gateway/internal/core/domain"
	"voucher-donation-gateway/internal/core/ports"
	"voucher-donation-gateway/pkg/apperror"
	"voucher-donation-gateway/pkg/metrics"

	"github.com/rs/zerolog"
)

// MaxRecentLimit caps the recent donations list.
const MaxRecentLimit = 100

// reportingService implements ports.ReportingService.
type reportingService struct {
	repo         ports.DonationRepository
	defaultLimit int
	metrics      *metrics.Metrics
	log          zerolog.Logger
}

// NewReportingService creates a new reporting service. defaultLimit is used
// when a caller asks for a non-positive number of donations.
func NewReportingService(
	repo ports.DonationRepository,
	defaultLimit int,
	m *metrics.Metrics,
	log zerolog.Logger,
) ports.ReportingService {
	if defaultLimit <= 0 || defaultLimit > MaxRecentLimit {
		defaultLimit = 10
	}
	return &reportingService{
		repo:         repo,
		defaultLimit: defaultLimit,
		metrics:      m,
		log:          log,
	}
}

// RecentDonations returns up to limit completed donations, newest first.
func (s *reportingService) RecentDonations(ctx context.Context, limit int) ([]domain.Donation, error) {
	switch {
	case limit <= 0:
		limit = s.defaultLimit
	case limit > MaxRecentLimit:
		limit = MaxRecentLimit
	}

	donations, err := s.repo.ListRecentCompleted(ctx, limit)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if donations == nil {
		donations = []domain.Donation{}
	}
	return donations, nil
}

// Stats aggregates completed donations. A read fault is logged and counted,
// and the zero-valued stats are returned instead.
func (s *reportingService) Stats(ctx context.Context) *domain.DonationStats {
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		s.metrics.IncrementLedgerFailure("stats")
		s.log.Error().Err(err).Msg("failed to aggregate donation stats")
		return &domain.DonationStats{}
	}
	if stats == nil {
		return &domain.DonationStats{}
	}
	return stats
}
