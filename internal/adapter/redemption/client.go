package redemption

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"time"

	"voucher-donation-gateway/config"
	"voucher-donation-gateway/internal/core/domain"
	"voucher-donation-gateway/internal/core/ports"
	"voucher-donation-gateway/pkg/apperror"
	"voucher-donation-gateway/pkg/logger"

	"github.com/rs/zerolog"
)

const (
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 1 << 20
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// redeemRequest is the body the redemption service expects.
type redeemRequest struct {
	VoucherCode  string `json:"voucherCode"`
	MobileNumber string `json:"mobileNumber"`
}

// Client implements ports.VoucherRedeemer against the external redemption service.
type Client struct {
	httpClient   HTTPClient
	endpoint     string
	mobileNumber string
	timeout      time.Duration
	log          zerolog.Logger
}

// NewClient creates a redemption client. A zero timeout falls back to 30s.
func NewClient(cfg config.RedemptionConfig, httpClient HTTPClient, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient:   httpClient,
		endpoint:     cfg.Endpoint(),
		mobileNumber: cfg.MobileNumber,
		timeout:      timeout,
		log:          log,
	}
}

// Redeem makes exactly one redemption call for voucherHash and normalizes the answer.
func (c *Client) Redeem(ctx context.Context, voucherHash string) (*ports.RedemptionResult, error) {
	if c.mobileNumber == "" {
		return nil, apperror.ErrConfiguration("redemption mobile number is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(redeemRequest{VoucherCode: voucherHash, MobileNumber: c.mobileNumber})
	if err != nil {
		return nil, apperror.ErrUpstreamUnreachable(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperror.ErrUpstreamUnreachable(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.transportError(ctx, err)
	}

	c.log.Debug().
		Str(logger.FieldVoucherHash, voucherHash).
		Int("status", resp.StatusCode).
		Msg("redemption service responded")

	// Rejections often arrive as 4xx with a JSON body, so the status code
	// alone does not decide the outcome.
	payload, err := decode(raw)
	if err != nil {
		return nil, apperror.ErrUpstreamUnavailable(fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err))
	}

	if !payload.isSuccess() {
		return nil, apperror.ErrUpstreamRejected(payload.rejectionReason())
	}

	amount, ok := payload.amount()
	// the ledger stores baht to two decimals
	amount = math.Round(amount*100) / 100
	if !ok || amount <= 0 || amount > domain.MaxAmount {
		c.log.Warn().
			Str(logger.FieldVoucherHash, voucherHash).
			RawJSON("response", raw).
			Msg("redemption reported success without a positive amount")
		return nil, apperror.ErrInvalidAmount()
	}

	return &ports.RedemptionResult{Amount: amount, RawResponse: raw}, nil
}

// transportError separates faults before the request was written (dial,
// proxy connect) from faults after it, where the voucher may be spent.
func (c *Client) transportError(ctx context.Context, err error) error {
	var opErr *net.OpError
	if errors.As(err, &opErr) && (opErr.Op == "dial" || opErr.Op == "proxyconnect") {
		return apperror.ErrUpstreamUnreachable(err)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return apperror.ErrUpstreamTimeout(err)
	}
	return apperror.ErrUpstreamUnavailable(err)
}

func decode(raw []byte) (response, error) {
	if !json.Valid(raw) {
		return nil, errors.New("body is not valid JSON")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var payload response
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errors.New("body is not a JSON object")
	}
	return payload, nil
}
