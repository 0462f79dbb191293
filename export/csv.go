// Package export renders a form's persisted responses as CSV.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/finance"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/model"
)

// Write streams the responses of one form as a CSV document: submission date,
// one column per field label, and — when the schema carries any priced field —
// the three financial columns. Cell values are resolved through the label
// reconciliation layer; financial cells prefer the stored snapshot and fall
// back to recomputation.
func Write(w io.Writer, form model.FormSchema, rows []finance.Row) error {
	cw := csv.NewWriter(w)

	priced := finance.HasPricing(form.Fields)

	header := []string{finance.ColDate}
	for _, f := range form.Fields {
		header = append(header, f.Label)
	}
	if priced {
		header = append(header, finance.ColTotal, finance.ColPaid, finance.ColRemaining)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := make([]string, 0, len(header))

		if t, ok := row.SubmittedAt(); ok {
			record = append(record, t.Format(time.DateTime))
		} else {
			record = append(record, "")
		}

		for _, f := range form.Fields {
			record = append(record, cellString(row.Resolve(f.Label)))
		}

		if priced {
			r := row.Financials(form.Fields)
			record = append(record,
				strconv.FormatFloat(r.Total, 'f', 2, 64),
				strconv.FormatFloat(r.Paid, 'f', 2, 64),
				strconv.FormatFloat(r.Remaining, 'f', 2, 64),
			)
		}

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func cellString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}
