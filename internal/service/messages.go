package service

import (
	"errors"
	"fmt"
	"strconv"

	"voucher-donation-gateway/pkg/apperror"
)

// Supported message locales.
const (
	LocaleEnglish = "en"
	LocaleThai    = "th"
)

type catalog struct {
	success  string // donor name, amount
	rejected string // upstream reason
	byCode   map[string]string
	fallback string
}

var catalogs = map[string]catalog{
	LocaleEnglish: {
		success:  "Thank you %s for donating %s THB!",
		rejected: "voucher was rejected: %s",
		byCode: map[string]string{
			apperror.CodeInvalidVoucherFormat: "invalid voucher link",
			apperror.CodeDuplicateVoucher:     "voucher already redeemed",
			apperror.CodeInvalidAmount:        "voucher has no redeemable amount",
			apperror.CodeUpstreamTimeout:      "redemption service timed out; the voucher could not be confirmed, please contact support",
			apperror.CodeUpstreamUnavailable:  "redemption service returned an unusable answer; the voucher could not be confirmed, please contact support",
			apperror.CodeUpstreamUnreachable:  "redemption service is unreachable, please try again later",
			apperror.CodeConfiguration:        "donations are not configured yet",
			apperror.CodePersistenceFailure:   "could not verify the voucher, please try again later",
		},
		fallback: "could not process the donation",
	},
	LocaleThai: {
		success:  "ขอบคุณ %s ที่สนับสนุน %s บาท!",
		rejected: "ไม่สามารถใช้ซองของขวัญได้: %s",
		byCode: map[string]string{
			apperror.CodeInvalidVoucherFormat: "ลิงก์ซองของขวัญไม่ถูกต้อง",
			apperror.CodeDuplicateVoucher:     "ซองของขวัญนี้ถูกใช้ไปแล้ว",
			apperror.CodeInvalidAmount:        "ซองของขวัญไม่มีมูลค่า",
			apperror.CodeUpstreamTimeout:      "ระบบแลกซองของขวัญไม่ตอบสนอง ไม่สามารถยืนยันซองของขวัญได้ กรุณาติดต่อผู้ดูแล",
			apperror.CodeUpstreamUnavailable:  "ระบบแลกซองของขวัญตอบกลับผิดปกติ ไม่สามารถยืนยันซองของขวัญได้ กรุณาติดต่อผู้ดูแล",
			apperror.CodeUpstreamUnreachable:  "ไม่สามารถเชื่อมต่อระบบแลกซองของขวัญได้ กรุณาลองใหม่ภายหลัง",
			apperror.CodeConfiguration:        "ยังไม่ได้ตั้งค่าการรับบริจาค",
			apperror.CodePersistenceFailure:   "ไม่สามารถตรวจสอบซองของขวัญได้ กรุณาลองใหม่ภายหลัง",
		},
		fallback: "ไม่สามารถดำเนินการบริจาคได้",
	},
}

// Messages renders claimant-facing text in one locale.
type Messages struct {
	cat catalog
}

// NewMessages returns the catalog for locale, falling back to English.
func NewMessages(locale string) *Messages {
	cat, ok := catalogs[locale]
	if !ok {
		cat = catalogs[LocaleEnglish]
	}
	return &Messages{cat: cat}
}

// Success thanks the donor and states the redeemed amount.
func (m *Messages) Success(donorName string, amount float64) string {
	return fmt.Sprintf(m.cat.success, donorName, strconv.FormatFloat(amount, 'f', -1, 64))
}

// Failure describes err to the claimant. Upstream rejections carry the
// service's own reason; request validation errors pass their text through.
func (m *Messages) Failure(err error) string {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return m.cat.fallback
	}
	switch appErr.Code {
	case apperror.CodeUpstreamRejected:
		return fmt.Sprintf(m.cat.rejected, appErr.Message)
	case apperror.CodeValidation:
		return appErr.Message
	}
	if msg, ok := m.cat.byCode[appErr.Code]; ok {
		return msg
	}
	return m.cat.fallback
}
