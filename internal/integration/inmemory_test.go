package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"voucher-donation-gateway/internal/core/domain"
	"voucher-donation-gateway/pkg/apperror"

	"github.com/google/uuid"
)

// --- In-Memory Donation Ledger ---

// inMemoryLedger enforces the same unique voucher hash rule as the
// Postgres partial index.
type inMemoryLedger struct {
	mu      sync.RWMutex
	records []domain.Donation
	hashes  map[string]struct{}
}

func newInMemoryLedger() *inMemoryLedger {
	return &inMemoryLedger{hashes: make(map[string]struct{})}
}

func (l *inMemoryLedger) ExistsByVoucherHash(_ context.Context, voucherHash string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.hashes[voucherHash]
	return ok, nil
}

func (l *inMemoryLedger) Create(_ context.Context, d *domain.Donation) (uuid.UUID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if d.VoucherHash != "" {
		if _, ok := l.hashes[d.VoucherHash]; ok {
			return uuid.Nil, apperror.ErrDuplicateVoucher()
		}
		l.hashes[d.VoucherHash] = struct{}{}
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	l.records = append(l.records, *d)
	return d.ID, nil
}

func (l *inMemoryLedger) ListRecentCompleted(_ context.Context, limit int) ([]domain.Donation, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.Donation
	for _, d := range l.records {
		if d.Status == domain.DonationStatusCompleted {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (l *inMemoryLedger) GetStats(_ context.Context) (*domain.DonationStats, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	stats := &domain.DonationStats{}
	for _, d := range l.records {
		if d.Status != domain.DonationStatusCompleted {
			continue
		}
		stats.TotalDonations++
		stats.TotalAmount += d.Amount
		if d.Amount > stats.TopDonation {
			stats.TopDonation = d.Amount
		}
		if stats.LastDonationAt == nil || d.CreatedAt.After(*stats.LastDonationAt) {
			at := d.CreatedAt
			stats.LastDonationAt = &at
		}
	}
	if stats.TotalDonations > 0 {
		stats.AverageAmount = stats.TotalAmount / float64(stats.TotalDonations)
	}
	return stats, nil
}

func (l *inMemoryLedger) all() []domain.Donation {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.Donation(nil), l.records...)
}

func (l *inMemoryLedger) countByStatus(status domain.DonationStatus) int {
	n := 0
	for _, d := range l.all() {
		if d.Status == status {
			n++
		}
	}
	return n
}

// --- Fake voucher redemption service ---

// fakeRedemptionService credits each known voucher exactly once, the way the
// real service answers a second redemption with a rejection.
type fakeRedemptionService struct {
	mu       sync.Mutex
	amounts  map[string]string // voucher code -> amount_baht
	redeemed map[string]int
	calls    int
	delay    time.Duration
}

func newFakeRedemptionService(amounts map[string]string) *fakeRedemptionService {
	return &fakeRedemptionService{amounts: amounts, redeemed: make(map[string]int)}
}

func (f *fakeRedemptionService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VoucherCode  string `json:"voucherCode"`
		MobileNumber string `json:"mobileNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	delay := f.delay
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	f.calls++
	amount, known := f.amounts[body.VoucherCode]
	already := f.redeemed[body.VoucherCode] > 0
	if known && !already {
		f.redeemed[body.VoucherCode]++
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case !known:
		_, _ = w.Write([]byte(`{"status":{"code":"VOUCHER_NOT_FOUND","message":"Voucher doesn't exist."},"data":null}`))
	case already:
		_, _ = w.Write([]byte(`{"status":{"code":"VOUCHER_OUT_OF_STOCK","message":"Voucher ticket is out of stock."},"data":null}`))
	default:
		_, _ = w.Write([]byte(`{"status":{"code":"SUCCESS","message":"success"},"data":{"voucher":{"amount_baht":"` + amount + `"},"my_ticket":{"amount_baht":"` + amount + `"}}}`))
	}
}

func (f *fakeRedemptionService) credits(code string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.redeemed[code]
}

func (f *fakeRedemptionService) setDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delay = d
}

func (f *fakeRedemptionService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeRedemptionService) start() *httptest.Server {
	return httptest.NewServer(f)
}
