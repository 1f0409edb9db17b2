package redemption

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// response is a decoded upstream body. The service answers in several
// shapes, so fields are looked up by path rather than bound to a struct.
type response map[string]any

// successSignal reports whether one signal source marks the redemption successful.
type successSignal func(r response) bool

// textSource returns a rejection reason from one signal source.
type textSource func(r response) (string, bool)

// amountSource returns the raw amount value from one field, if the field is present.
type amountSource func(r response) (any, bool)

// successSignals are checked in order; any positive signal counts as success.
var successSignals = []successSignal{
	func(r response) bool { v, ok := r.lookup("success").(bool); return ok && v },
	func(r response) bool { return r.lookupString("status") == "success" },
	func(r response) bool { return r.lookupString("status", "code") == "SUCCESS" },
	func(r response) bool { return r.lookupString("status", "message") == "success" },
	func(r response) bool { return r.lookup("data", "voucher") != nil },
}

// reasonSources pick the rejection text, highest priority first.
var reasonSources = []textSource{
	stringAt("message"),
	stringAt("error"),
	stringAt("status", "message"),
}

// amountSources pick the redeemed amount, highest priority first.
// "amout" is a misspelling some upstream versions actually send.
var amountSources = []amountSource{
	fieldAt("data", "voucher", "amount_baht"),
	fieldAt("data", "voucher", "redeemed_amount_baht"),
	fieldAt("data", "my_ticket", "amount_baht"),
	fieldAt("amout"),
	fieldAt("amount"),
	fieldAt("value"),
}

func stringAt(path ...string) textSource {
	return func(r response) (string, bool) {
		s := strings.TrimSpace(r.lookupString(path...))
		return s, s != ""
	}
}

func fieldAt(path ...string) amountSource {
	return func(r response) (any, bool) {
		v := r.lookup(path...)
		return v, v != nil
	}
}

func (r response) isSuccess() bool {
	for _, source := range successSignals {
		if source(r) {
			return true
		}
	}
	return false
}

func (r response) rejectionReason() string {
	for _, source := range reasonSources {
		if s, ok := source(r); ok {
			return s
		}
	}
	return ""
}

// amount parses the first present amount field. ok is false when no field
// is present or the present one is not a finite number.
func (r response) amount() (float64, bool) {
	for _, source := range amountSources {
		if v, present := source(r); present {
			return parseAmount(v)
		}
	}
	return 0, false
}

func (r response) lookup(path ...string) any {
	var cur any = map[string]any(r)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

func (r response) lookupString(path ...string) string {
	s, _ := r.lookup(path...).(string)
	return s
}

func parseAmount(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case float64:
		f = t
	case string:
		n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", ""), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
