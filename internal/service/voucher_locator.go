package service

import (
	"regexp"
	"strings"

	"voucher-donation-gateway/pkg/apperror"
)

// voucherLinkRules are tried in order; the first capture wins.
var voucherLinkRules = []*regexp.Regexp{
	regexp.MustCompile(`[?&]v=([A-Za-z0-9]+)`),
	regexp.MustCompile(`/([A-Za-z0-9]+)/?$`),
	regexp.MustCompile(`gift\.truemoney\.com/campaign/?\?v=([A-Za-z0-9]+)`),
}

// ExtractVoucherHash returns the canonical voucher identifier from a voucher link.
// Same input always yields the same hash or apperror.ErrInvalidVoucherFormat.
func ExtractVoucherHash(link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" || strings.ContainsAny(link, " \t\r\n") {
		return "", apperror.ErrInvalidVoucherFormat()
	}

	for _, rule := range voucherLinkRules {
		if m := rule.FindStringSubmatch(link); m != nil {
			return m[1], nil
		}
	}
	return "", apperror.ErrInvalidVoucherFormat()
}
