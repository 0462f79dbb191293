package finance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/model"
)

// AssembleRow flattens one submission into the label-keyed record the
// spreadsheet store expects, financial snapshot included. This record is the
// literal write payload; nothing downstream transforms it further.
func AssembleRow(form model.FormSchema, answers model.AnswerSet, r Result) map[string]string {
	row := make(map[string]string, len(form.Fields)+6)
	row["formId"] = form.ID
	row["formTitle"] = form.Title

	for _, f := range form.Fields {
		if f.Type == model.AdditionalPerson {
			row[f.Label] = summarizeGuests(guestList(answers[f.ID]))
			continue
		}
		row[f.Label] = DisplayAnswer(f, answers[f.ID])
	}

	row[ColTotal] = strconv.FormatFloat(r.Total, 'f', 2, 64)
	row[ColPaid] = strconv.FormatFloat(r.Paid, 'f', 2, 64)
	row[ColRemaining] = strconv.FormatFloat(r.Remaining, 'f', 2, 64)
	row[ColNights] = strconv.Itoa(r.Nights)

	return row
}

// summarizeGuests renders the count-prefixed summary the sheet stores for
// additional guests, e.g. "2 Adicionales: Ana (CC 123) | Luis (CC 456)".
// The leading count is what guestCount recovers during reconciliation.
func summarizeGuests(guests []model.Guest) string {
	if len(guests) == 0 {
		return ""
	}
	parts := make([]string, len(guests))
	for i, g := range guests {
		parts[i] = formatGuest(g)
	}
	return fmt.Sprintf("%d Adicionales: %s", len(guests), strings.Join(parts, " | "))
}
