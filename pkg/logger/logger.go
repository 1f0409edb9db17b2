package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ServiceName tags every line written by the gateway.
const ServiceName = "voucher-donation-gateway"

// Field names shared by the claim pipeline, so one voucher can be followed
// from the HTTP layer through redemption to the ledger.
const (
	FieldVoucherHash = "voucher_hash"
	FieldDonationID  = "donation_id"
	FieldErrorCode   = "error_code"
	FieldComponent   = "component"
)

// New builds the process logger. pretty switches to console output for
// local development; production lines are JSON.
func New(level string, pretty bool) zerolog.Logger {
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Caller().
		Str("service", ServiceName).
		Logger()
}

// NewWithWriter builds a JSON logger on w without caller info.
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// Component returns a child logger for one subsystem (ledger, redemption, feed).
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str(FieldComponent, name).Logger()
}

// parseLevel accepts zerolog level names and falls back to info.
func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
