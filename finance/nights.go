package finance

import (
	"math"
	"strings"
	"time"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/model"
)

var (
	checkinKeywords  = []string{"entrada", "llegada", "check-in", "checkin", "desde"}
	checkoutKeywords = []string{"salida", "ida", "check-out", "checkout", "hasta"}
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
}

// ComputeNights derives the stay length from the check-in and check-out date
// fields of a form. A field is picked by its explicit role tag when one is
// set; otherwise the first date field whose label contains one of the known
// keywords is used. When several untagged date fields match the same keyword
// set, the first one in field order wins; there is deliberately no stricter
// tie-break.
//
// Missing fields, unparseable answers, same-day and inverted ranges all
// yield 0.
func ComputeNights(fields []model.FormField, answers model.AnswerSet) int {
	checkin := findDateField(fields, model.RoleCheckin, checkinKeywords)
	checkout := findDateField(fields, model.RoleCheckout, checkoutKeywords)
	if checkin == nil || checkout == nil {
		return 0
	}

	from, ok := parseDate(answers[checkin.ID])
	if !ok {
		return 0
	}
	to, ok := parseDate(answers[checkout.ID])
	if !ok {
		return 0
	}

	nights := int(math.Ceil(to.Sub(from).Hours() / 24))
	if nights < 0 {
		return 0
	}
	return nights
}

func findDateField(fields []model.FormField, role model.FieldRole, keywords []string) *model.FormField {
	for i := range fields {
		if fields[i].Type == model.Date && fields[i].Role == role && role != model.RoleNone {
			return &fields[i]
		}
	}
	for i := range fields {
		if fields[i].Type != model.Date || fields[i].Role != model.RoleNone {
			continue
		}
		label := strings.ToLower(fields[i].Label)
		for _, kw := range keywords {
			if strings.Contains(label, kw) {
				return &fields[i]
			}
		}
	}
	return nil
}

// parseDate anchors the parsed calendar date at noon UTC. UTC has no DST, so
// the interval between two anchored dates is always an exact multiple of 24
// hours; anchoring in the server's timezone would gain or lose an hour across
// a DST transition and shift the night count by one.
func parseDate(answer any) (time.Time, bool) {
	s, _ := answer.(string)
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
