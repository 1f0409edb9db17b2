package service

import (
	"errors"
	"fmt"
	"testing"

	"voucher-donation-gateway/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestMessages_Failure(t *testing.T) {
	m := NewMessages(LocaleEnglish)

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"duplicate", apperror.ErrDuplicateVoucher(), "voucher already redeemed"},
		{"wrapped duplicate", fmt.Errorf("insert: %w", apperror.ErrDuplicateVoucher()), "voucher already redeemed"},
		{"invalid link", apperror.ErrInvalidVoucherFormat(), "invalid voucher link"},
		{"rejected", apperror.ErrUpstreamRejected("VOUCHER_OUT_OF_STOCK"), "voucher was rejected: VOUCHER_OUT_OF_STOCK"},
		{"validation", apperror.Validation("donor_name must be 1-100 characters"), "donor_name must be 1-100 characters"},
		{"timeout", apperror.ErrUpstreamTimeout(nil), "redemption service timed out; the voucher could not be confirmed, please contact support"},
		{"unreachable", apperror.ErrUpstreamUnreachable(nil), "redemption service is unreachable, please try again later"},
		{"unknown app error", apperror.ErrRateLimitExceeded(), "could not process the donation"},
		{"plain error", errors.New("boom"), "could not process the donation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.Failure(tt.err))
		})
	}
}

func TestMessages_Success(t *testing.T) {
	assert.Equal(t, "Thank you Alice for donating 50 THB!", NewMessages(LocaleEnglish).Success("Alice", 50))
	assert.Equal(t, "Thank you Bob for donating 12.75 THB!", NewMessages(LocaleEnglish).Success("Bob", 12.75))
	assert.Equal(t, "ขอบคุณ Alice ที่สนับสนุน 50 บาท!", NewMessages(LocaleThai).Success("Alice", 50))
}

func TestMessages_OnlyUnsubmittedFailuresSuggestRetry(t *testing.T) {
	m := NewMessages(LocaleEnglish)
	assert.NotContains(t, m.Failure(apperror.ErrUpstreamTimeout(nil)), "try again")
	assert.NotContains(t, m.Failure(apperror.ErrUpstreamUnavailable(nil)), "try again")
	assert.Contains(t, m.Failure(apperror.ErrUpstreamUnreachable(nil)), "try again")
}

func TestNewMessages_UnknownLocaleFallsBackToEnglish(t *testing.T) {
	m := NewMessages("fr")
	assert.Equal(t, "voucher already redeemed", m.Failure(apperror.ErrDuplicateVoucher()))
}

func TestMessages_CatalogsCoverSameCodes(t *testing.T) {
	en := catalogs[LocaleEnglish]
	th := catalogs[LocaleThai]
	for code := range en.byCode {
		_, ok := th.byCode[code]
		assert.True(t, ok, "thai catalog missing %s", code)
	}
	assert.Len(t, th.byCode, len(en.byCode))
}
