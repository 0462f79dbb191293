package finance

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/model"
)

// Interpolate substitutes @FieldLabel tokens in a confirmation template with
// the answers of one submission, then the reserved tokens @total, @abono,
// @pendiente and @noches with the formatted financial values. Matching is
// case-insensitive; unresolved tokens stay in place as literal text.
//
// Field labels are substituted first, in field order. A field literally
// labeled "total", "abono", "pendiente" or "noches" therefore shadows the
// reserved token of the same name; that collision is undefined behavior
// inherited from the wire format and intentionally left as is.
func Interpolate(template string, fields []model.FormField, answers model.AnswerSet, r Result) string {
	out := template

	for _, f := range fields {
		if f.Label == "" {
			continue
		}
		out = replaceToken(out, f.Label, DisplayAnswer(f, answers[f.ID]))
	}

	out = replaceToken(out, "total", FormatAmount(r.Total))
	out = replaceToken(out, "abono", FormatAmount(r.Paid))
	out = replaceToken(out, "pendiente", FormatAmount(r.Remaining))
	out = replaceToken(out, "noches", strconv.Itoa(r.Nights))

	return out
}

func replaceToken(s, token, value string) string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta("@"+token))
	return re.ReplaceAllLiteralString(s, value)
}

// DisplayAnswer renders one answer for human consumption: list answers are
// joined with ", ", guest records become "name (idType idNum)", scalars pass
// through.
func DisplayAnswer(f model.FormField, v any) string {
	switch f.Type {
	case model.AdditionalPerson:
		guests := guestList(v)
		if guests == nil {
			return scalarString(v)
		}
		parts := make([]string, len(guests))
		for i, g := range guests {
			parts[i] = formatGuest(g)
		}
		return strings.Join(parts, ", ")
	case model.Product, model.Checkbox:
		if list := stringList(v); list != nil {
			return strings.Join(list, ", ")
		}
	}
	return scalarString(v)
}

func formatGuest(g model.Guest) string {
	id := strings.TrimSpace(g.IDType + " " + g.IDNum)
	if id == "" {
		return g.Name
	}
	return g.Name + " (" + id + ")"
}

func scalarString(v any) string {
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
	if list := stringList(v); list != nil {
		return strings.Join(list, ", ")
	}
	return ""
}
