// Package finance holds the pricing and reconciliation core of the form
// platform: deriving a reservation's totals from a field schema plus answers,
// and reproducing the same derivation later from loosely-typed spreadsheet
// rows whose columns are keyed by human-entered labels.
package finance

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/model"
)

// Result is the derived financial tuple for one submission. It is recomputed
// on every read, never stored as an entity of its own; the snapshot columns
// written to the sheet are best-effort only.
type Result struct {
	Total     float64 `json:"total"`
	Paid      float64 `json:"paid"`
	Remaining float64 `json:"remaining"`
	Nights    int     `json:"nights"`
}

// Compute derives total, paid and remaining amounts by walking the schema in
// field order. Amounts accumulate unrounded; rounding happens only at display
// time.
func Compute(fields []model.FormField, answers model.AnswerSet, nights int) Result {
	r := Result{Nights: nights}

	for _, f := range fields {
		switch f.Type {
		case model.Product:
			for _, selected := range stringList(answers[f.ID]) {
				for _, opt := range f.ProductOptions {
					if opt.Label != selected {
						continue
					}
					r.Total += opt.Price * nightsFactor(opt.IsPerNight, nights)
					break
				}
			}

		case model.AdditionalPerson:
			count := guestCount(answers[f.ID])
			if count > 0 {
				r.Total += f.AdditionalPrice * float64(count) * nightsFactor(f.IsPerNight, nights)
			}

		default:
			if !f.PaymentLike() {
				continue
			}
			if amount, ok := ParseAmount(answers[f.ID]); ok {
				r.Paid += amount
			}
		}
	}

	r.Remaining = r.Total - r.Paid
	return r
}

// HasPricing reports whether any field of the schema can contribute to a
// financial result. The CSV export and the responses table only show the
// financial columns when this holds.
func HasPricing(fields []model.FormField) bool {
	for _, f := range fields {
		switch {
		case f.Type == model.Product && len(f.ProductOptions) > 0:
			return true
		case f.Type == model.AdditionalPerson && f.AdditionalPrice > 0:
			return true
		case f.PaymentLike():
			return true
		}
	}
	return false
}

func nightsFactor(perNight bool, nights int) float64 {
	if !perNight {
		return 1
	}
	if nights < 1 {
		return 1
	}
	return float64(nights)
}

// ParseAmount extracts a money value from a loosely-typed answer: numbers
// pass through, strings are stripped of every character except digits, dot
// and minus before parsing ("$ 30.50" -> 30.5). The boolean is false when no
// valid number remains.
func ParseAmount(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) {
			return 0, false
		}
		return v, true
	case int:
		return float64(v), true
	case string:
		var b strings.Builder
		for _, r := range v {
			if r >= '0' && r <= '9' || r == '.' || r == '-' {
				b.WriteRune(r)
			}
		}
		n, err := strconv.ParseFloat(b.String(), 64)
		if err != nil || math.IsNaN(n) {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// FormatAmount renders a money value the way the confirmation screen and the
// responses table display it.
func FormatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func stringList(v any) []string {
	switch v := v.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		// Persisted rows store multi-selections joined with ", ".
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return nil
}

func guestList(v any) []model.Guest {
	switch v := v.(type) {
	case []model.Guest:
		return v
	case []any:
		out := make([]model.Guest, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			g := model.Guest{}
			g.Name, _ = m["name"].(string)
			g.IDType, _ = m["idType"].(string)
			g.IDNum, _ = m["idNum"].(string)
			out = append(out, g)
		}
		return out
	}
	return nil
}

// guestCount tolerates both live answers (guest lists) and reconciled row
// values, where only the count-prefixed summary string survives
// ("2 Adicionales: ...").
func guestCount(v any) int {
	if guests := guestList(v); guests != nil {
		return len(guests)
	}
	s, _ := v.(string)
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if i := strings.IndexByte(s, ' '); i > 0 {
		if n, err := strconv.Atoi(s[:i]); err == nil && n >= 0 {
			return n
		}
	}
	return 0
}
