package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/model"
)

func TestInterpolate(t *testing.T) {
	fields := []model.FormField{
		{ID: "name", Type: model.ShortText, Label: "Nombre"},
		{ID: "guests", Type: model.AdditionalPerson, Label: "Acompañantes"},
		{ID: "extras", Type: model.Checkbox, Label: "Extras"},
	}
	answers := model.AnswerSet{
		"name": "Ana",
		"guests": []any{
			map[string]any{"name": "Luis", "idType": "CC", "idNum": "456"},
		},
		"extras": []any{"desayuno", "parqueadero"},
	}
	r := Result{Total: 100, Paid: 40, Remaining: 60, Nights: 2}

	t.Run("reserved tokens", func(t *testing.T) {
		out := Interpolate("Total: @total, Pendiente: @pendiente", fields, answers, r)
		assert.Equal(t, "Total: $100.00, Pendiente: $60.00", out)
		assert.NotContains(t, out, "@total")
	})

	t.Run("all reserved tokens", func(t *testing.T) {
		out := Interpolate("@total @abono @pendiente @noches", fields, answers, r)
		assert.Equal(t, "$100.00 $40.00 $60.00 2", out)
	})

	t.Run("field label tokens", func(t *testing.T) {
		out := Interpolate("Hola @Nombre, reservaste con @Acompañantes", fields, answers, r)
		assert.Equal(t, "Hola Ana, reservaste con Luis (CC 456)", out)
	})

	t.Run("case-insensitive", func(t *testing.T) {
		out := Interpolate("Hola @nombre. @TOTAL", fields, answers, r)
		assert.Equal(t, "Hola Ana. $100.00", out)
	})

	t.Run("list answers joined", func(t *testing.T) {
		out := Interpolate("Pediste: @Extras", fields, answers, r)
		assert.Equal(t, "Pediste: desayuno, parqueadero", out)
	})

	t.Run("unresolved tokens stay literal", func(t *testing.T) {
		out := Interpolate("Hola @Desconocido", fields, answers, r)
		assert.Equal(t, "Hola @Desconocido", out)
	})

	t.Run("missing answer replaces with empty", func(t *testing.T) {
		fields := []model.FormField{{ID: "x", Type: model.ShortText, Label: "Ciudad"}}
		out := Interpolate("Ciudad: @Ciudad.", fields, model.AnswerSet{}, r)
		assert.Equal(t, "Ciudad: .", out)
	})
}

func TestDisplayAnswer(t *testing.T) {
	guests := model.FormField{Type: model.AdditionalPerson, Label: "Acompañantes"}

	assert.Equal(t, "Luis (CC 456)", DisplayAnswer(guests, []any{
		map[string]any{"name": "Luis", "idType": "CC", "idNum": "456"},
	}))
	assert.Equal(t, "Luis", DisplayAnswer(guests, []any{
		map[string]any{"name": "Luis"},
	}))

	number := model.FormField{Type: model.Number, Label: "Edad"}
	assert.Equal(t, "42", DisplayAnswer(number, 42.0))
	assert.Equal(t, "", DisplayAnswer(number, nil))
}
