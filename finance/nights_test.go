package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/model"
)

func dateField(id, label string) model.FormField {
	return model.FormField{ID: id, Type: model.Date, Label: label}
}

func TestComputeNights(t *testing.T) {
	fields := []model.FormField{
		dateField("in", "Fecha de Entrada"),
		dateField("out", "Fecha de Salida"),
	}

	tests := []struct {
		name    string
		answers model.AnswerSet
		want    int
	}{
		{"three nights", model.AnswerSet{"in": "2024-05-01", "out": "2024-05-04"}, 3},
		{"one night", model.AnswerSet{"in": "2024-05-01", "out": "2024-05-02"}, 1},
		{"same day", model.AnswerSet{"in": "2024-05-01", "out": "2024-05-01"}, 0},
		{"inverted range", model.AnswerSet{"in": "2024-05-04", "out": "2024-05-01"}, 0},
		{"missing checkout", model.AnswerSet{"in": "2024-05-01"}, 0},
		{"empty answers", model.AnswerSet{"in": "", "out": ""}, 0},
		{"garbage date", model.AnswerSet{"in": "mañana", "out": "2024-05-04"}, 0},
		{"slash layout", model.AnswerSet{"in": "01/05/2024", "out": "04/05/2024"}, 3},
		{"month boundary", model.AnswerSet{"in": "2024-01-30", "out": "2024-02-02"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeNights(fields, tt.answers))
		})
	}
}

func TestComputeNightsKeywordMatching(t *testing.T) {
	answers := model.AnswerSet{"a": "2024-05-01", "b": "2024-05-03"}

	t.Run("check-in and check-out spellings", func(t *testing.T) {
		fields := []model.FormField{
			dateField("a", "Check-in"),
			dateField("b", "Checkout"),
		}
		assert.Equal(t, 2, ComputeNights(fields, answers))
	})

	t.Run("desde and hasta", func(t *testing.T) {
		fields := []model.FormField{
			dateField("a", "Desde cuándo"),
			dateField("b", "Hasta cuándo"),
		}
		assert.Equal(t, 2, ComputeNights(fields, answers))
	})

	t.Run("no matching labels", func(t *testing.T) {
		fields := []model.FormField{
			dateField("a", "Cumpleaños"),
			dateField("b", "Aniversario"),
		}
		assert.Equal(t, 0, ComputeNights(fields, answers))
	})

	t.Run("first match in field order wins", func(t *testing.T) {
		fields := []model.FormField{
			dateField("a", "Llegada"),
			dateField("x", "Llegada estimada"),
			dateField("b", "Salida"),
		}
		assert.Equal(t, 2, ComputeNights(fields, answers))
	})

	t.Run("non-date fields ignored", func(t *testing.T) {
		fields := []model.FormField{
			{ID: "a", Type: model.ShortText, Label: "Llegada"},
			dateField("b", "Salida"),
		}
		assert.Equal(t, 0, ComputeNights(fields, answers))
	})
}

func TestComputeNightsDSTTransition(t *testing.T) {
	// New York gains an hour on 2024-11-03; the stay is still one night, not
	// ceil(25h/24h) = 2
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	restore := time.Local
	time.Local = loc
	defer func() { time.Local = restore }()

	fields := []model.FormField{
		dateField("in", "Fecha de Entrada"),
		dateField("out", "Fecha de Salida"),
	}

	t.Run("fall back", func(t *testing.T) {
		answers := model.AnswerSet{"in": "2024-11-02", "out": "2024-11-03"}
		assert.Equal(t, 1, ComputeNights(fields, answers))
	})

	t.Run("spring forward", func(t *testing.T) {
		answers := model.AnswerSet{"in": "2024-03-09", "out": "2024-03-10"}
		assert.Equal(t, 1, ComputeNights(fields, answers))
	})
}

func TestComputeNightsRoleTags(t *testing.T) {
	// explicit role tags beat the keyword heuristic
	fields := []model.FormField{
		dateField("trap", "Llegada del vuelo"),
		{ID: "in", Type: model.Date, Label: "Primer día", Role: model.RoleCheckin},
		{ID: "out", Type: model.Date, Label: "Último día", Role: model.RoleCheckout},
	}
	answers := model.AnswerSet{
		"trap": "2024-01-01",
		"in":   "2024-05-01",
		"out":  "2024-05-05",
	}
	assert.Equal(t, 4, ComputeNights(fields, answers))
}
