package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"voucher-donation-gateway/internal/core/domain"
	"voucher-donation-gateway/internal/core/ports"
	"voucher-donation-gateway/pkg/apperror"
	"voucher-donation-gateway/pkg/logger"
	"voucher-donation-gateway/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// redeemedCacheTTL bounds how long the Redis fast path remembers a hash.
// The ledger stays authoritative after expiry.
const redeemedCacheTTL = 30 * 24 * time.Hour

// DonationServiceImpl implements ports.DonationService.
type DonationServiceImpl struct {
	repo      ports.DonationRepository
	cache     ports.RedeemedVoucherCache
	redeemer  ports.VoucherRedeemer
	publisher ports.FeedPublisher
	metrics   *metrics.Metrics
	messages  *Messages
	log       zerolog.Logger
	now       func() time.Time
}

// NewDonationService creates a new DonationServiceImpl. cache, publisher
// and m may be nil.
func NewDonationService(
	repo ports.DonationRepository,
	cache ports.RedeemedVoucherCache,
	redeemer ports.VoucherRedeemer,
	publisher ports.FeedPublisher,
	m *metrics.Metrics,
	messages *Messages,
	log zerolog.Logger,
) *DonationServiceImpl {
	if messages == nil {
		messages = NewMessages(LocaleEnglish)
	}
	return &DonationServiceImpl{
		repo:      repo,
		cache:     cache,
		redeemer:  redeemer,
		publisher: publisher,
		metrics:   m,
		messages:  messages,
		log:       log,
		now:       time.Now,
	}
}

// Claim runs Locate -> duplicate check -> Redeem -> Persist -> Publish for
// one claim. Steps are never retried and only the redeemer has a deadline.
func (s *DonationServiceImpl) Claim(ctx context.Context, req ports.ClaimRequest) ports.ClaimResult {
	if err := validateClaim(req); err != nil {
		return s.reject("", err)
	}

	voucherHash, err := ExtractVoucherHash(req.VoucherLink)
	if err != nil {
		return s.reject("", err)
	}

	duplicate, err := s.isDuplicate(ctx, voucherHash)
	if err != nil {
		s.metrics.IncrementLedgerFailure("exists")
		return s.reject(voucherHash, apperror.ErrPersistenceFailure(err))
	}
	if duplicate {
		return s.reject(voucherHash, apperror.ErrDuplicateVoucher())
	}

	start := time.Now()
	result, err := s.redeemer.Redeem(ctx, voucherHash)
	s.metrics.ObserveRedemption(apperror.CodeOf(err), time.Since(start))

	// The voucher may already be spent upstream, so bookkeeping must not be
	// cut short by the claimant going away.
	persistCtx := context.WithoutCancel(ctx)

	if err != nil {
		record := s.newRecord(req, voucherHash, domain.DonationStatusFailed)
		if !submitted(err) {
			// never reached the redemption service, so it must not hold the hash
			record.VoucherHash = ""
		}
		record.ErrorMessage = err.Error()
		if s.persist(persistCtx, record) {
			return s.reject(voucherHash, apperror.ErrDuplicateVoucher())
		}
		return s.reject(voucherHash, err)
	}

	record := s.newRecord(req, voucherHash, domain.DonationStatusCompleted)
	record.Amount = result.Amount
	record.RawResponse = result.RawResponse
	if s.persist(persistCtx, record) {
		return s.reject(voucherHash, apperror.ErrDuplicateVoucher())
	}

	event := record.Event()
	s.publish(persistCtx, event)

	s.metrics.IncrementOutcome(string(domain.DonationStatusCompleted), "")
	s.metrics.AddDonated(record.Amount)
	s.log.Info().
		Str(logger.FieldDonationID, record.ID.String()).
		Str(logger.FieldVoucherHash, voucherHash).
		Float64("amount", record.Amount).
		Msg("donation completed")

	return ports.ClaimResult{
		Success: true,
		Message: s.messages.Success(record.DonorName, record.Amount),
		Data:    &event,
	}
}

// submitted reports whether a failed redemption may have reached the service.
func submitted(err error) bool {
	switch apperror.CodeOf(err) {
	case apperror.CodeConfiguration, apperror.CodeUpstreamUnreachable:
		return false
	}
	return true
}

func validateClaim(req ports.ClaimRequest) error {
	n := utf8.RuneCountInString(req.DonorName)
	if n == 0 || n > domain.MaxDonorNameLength {
		return apperror.Validation("donor_name must be 1-100 characters")
	}
	if utf8.RuneCountInString(req.Message) > domain.MaxMessageLength {
		return apperror.Validation("message must be at most 500 characters")
	}
	return nil
}

// isDuplicate checks Redis first, then the ledger. A cache fault falls
// through to the ledger; a ledger fault is returned.
func (s *DonationServiceImpl) isDuplicate(ctx context.Context, voucherHash string) (bool, error) {
	if s.cache != nil {
		seen, err := s.cache.Seen(ctx, voucherHash)
		if err != nil {
			s.log.Warn().Err(err).Str(logger.FieldVoucherHash, voucherHash).Msg("redis duplicate check failed, falling through to DB")
		}
		if seen {
			return true, nil
		}
	}
	return s.repo.ExistsByVoucherHash(ctx, voucherHash)
}

func (s *DonationServiceImpl) newRecord(req ports.ClaimRequest, voucherHash string, status domain.DonationStatus) *domain.Donation {
	return &domain.Donation{
		ID:          uuid.New(),
		DonorName:   req.DonorName,
		Message:     req.Message,
		VoucherHash: voucherHash,
		VoucherLink: req.VoucherLink,
		IPAddress:   req.ClientIP,
		Status:      status,
		CreatedAt:   s.now().UTC(),
	}
}

// persist appends record to the ledger. It reports true only when the
// insert lost a concurrent race for the voucher hash; every other fault is
// logged and counted, leaving the determined outcome unchanged.
func (s *DonationServiceImpl) persist(ctx context.Context, record *domain.Donation) (lostRace bool) {
	id, err := s.repo.Create(ctx, record)
	switch {
	case err == nil:
		record.ID = id
		s.markRedeemed(ctx, record.VoucherHash)
		return false
	case errors.Is(err, apperror.ErrDuplicateVoucher()):
		s.log.Warn().
			Str(logger.FieldVoucherHash, record.VoucherHash).
			Str("status", string(record.Status)).
			Msg("concurrent claim lost the unique-key race; redemption service may have been called twice")
		s.markRedeemed(ctx, record.VoucherHash)
		return true
	default:
		s.metrics.IncrementLedgerFailure("insert")
		s.log.Error().Err(err).
			Str(logger.FieldDonationID, record.ID.String()).
			Str(logger.FieldVoucherHash, record.VoucherHash).
			Str("status", string(record.Status)).
			Float64("amount", record.Amount).
			Msg("failed to record donation")
		return false
	}
}

// markRedeemed is best-effort; the ledger already holds the hash.
func (s *DonationServiceImpl) markRedeemed(ctx context.Context, voucherHash string) {
	if s.cache == nil || voucherHash == "" {
		return
	}
	if err := s.cache.Mark(ctx, voucherHash, redeemedCacheTTL); err != nil {
		s.log.Warn().Err(err).Str(logger.FieldVoucherHash, voucherHash).Msg("failed to cache redeemed voucher in redis")
	}
}

// publish broadcasts asynchronously (fire-and-forget).
func (s *DonationServiceImpl) publish(ctx context.Context, event domain.DonationEvent) {
	if s.publisher == nil {
		return
	}
	go func() {
		if err := s.publisher.Publish(ctx, domain.EventNewDonation, event); err != nil {
			s.metrics.IncrementFeedPublishFailure()
			s.log.Warn().Err(err).Str(logger.FieldDonationID, event.ID.String()).Msg("failed to publish donation event")
		}
	}()
}

func (s *DonationServiceImpl) reject(voucherHash string, err error) ports.ClaimResult {
	code := apperror.CodeOf(err)
	s.metrics.IncrementOutcome(string(domain.DonationStatusFailed), code)
	s.log.Info().
		Str(logger.FieldVoucherHash, voucherHash).
		Str(logger.FieldErrorCode, code).
		Err(err).
		Msg("donation failed")

	return ports.ClaimResult{
		Success: false,
		Message: s.messages.Failure(err),
		Err:     err,
	}
}
