package finance

import (
	"sort"
	"strings"
	"time"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/model"
)

// Column names of the best-effort financial snapshot appended to each
// persisted row.
const (
	ColTotal     = "Total Calculado"
	ColPaid      = "Total Abono"
	ColRemaining = "Saldo Pendiente"
	ColNights    = "Noches Estancia"
	ColDate      = "Fecha"
)

// Row is one persisted response as read back from the spreadsheet store: a
// flat mapping from field labels (not ids) to scalar values. The mapping is
// untrusted — columns may be absent, renamed, case-varied, or belong to a
// different form sharing the same sheet — so every read goes through Resolve
// rather than direct map access.
type Row map[string]any

// Resolve looks an answer up by field label: an exact key hit wins (even when
// the stored value is empty), otherwise the keys are scanned for a
// case/whitespace-insensitive match. Unresolvable labels degrade to the empty
// string, never to an error.
func (row Row) Resolve(label string) any {
	if v, ok := row[label]; ok {
		return v
	}

	want := normalizeLabel(label)
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if normalizeLabel(k) == want {
			return row[k]
		}
	}
	return ""
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FormID returns the form tag the row was submitted under, when present.
func (row Row) FormID() string {
	s, _ := row["formId"].(string)
	return s
}

// SubmittedAt parses the row's timestamp, stored under "Fecha" by the sheet
// or "submittedAt" by older clients.
func (row Row) SubmittedAt() (time.Time, bool) {
	for _, key := range []string{ColDate, "submittedAt"} {
		switch v := row[key].(type) {
		case string:
			for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
				if t, err := time.Parse(layout, v); err == nil {
					return t, true
				}
			}
		case float64:
			// epoch milliseconds
			return time.UnixMilli(int64(v)), true
		}
	}
	return time.Time{}, false
}

// RelevantTo reports whether the row belongs to the given form. Rows tagged
// with the form's id match directly; untagged (or mis-tagged) rows still
// count when any of the form's field labels resolves to a non-empty value,
// which is what separates a form's submissions from unrelated rows sharing
// the same sheet.
func (row Row) RelevantTo(form model.FormSchema) bool {
	if id := row.FormID(); id != "" && id == form.ID {
		return true
	}
	for _, f := range form.Fields {
		if v := row.Resolve(f.Label); !isEmptyValue(v) {
			return true
		}
	}
	return false
}

// Financials reproduces the financial result for a persisted row. Stored
// snapshot columns are preferred when they hold a valid number — a stored 0
// is trusted, only a missing or unparseable value triggers the fallback —
// otherwise the engine recomputes from scratch, resolving each field's answer
// by label.
func (row Row) Financials(fields []model.FormField) Result {
	storedTotal, totalOK := ParseAmount(row.Resolve(ColTotal))
	storedPaid, paidOK := ParseAmount(row.Resolve(ColPaid))
	storedNights, nightsOK := ParseAmount(row.Resolve(ColNights))

	var recomputed Result
	if !totalOK || !paidOK || !nightsOK {
		answers := row.Answers(fields)
		recomputed = Compute(fields, answers, ComputeNights(fields, answers))
	}

	r := recomputed
	if totalOK {
		r.Total = storedTotal
	}
	if paidOK {
		r.Paid = storedPaid
	}
	if nightsOK {
		r.Nights = int(storedNights)
	}
	r.Remaining = r.Total - r.Paid
	return r
}

// Answers rebuilds an id-keyed answer set from the label-keyed row, so the
// same engine code paths serve both the live and the reconciled case.
func (row Row) Answers(fields []model.FormField) model.AnswerSet {
	answers := make(model.AnswerSet, len(fields))
	for _, f := range fields {
		answers[f.ID] = row.Resolve(f.Label)
	}
	return answers
}

func isEmptyValue(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}
