package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestValidateSubmission(t *testing.T) {
	form := FormSchema{
		ID: "form-1",
		Fields: []FormField{
			{ID: "name", Type: ShortText, Label: "Nombre", Required: true},
			{ID: "age", Type: Number, Label: "Edad", Validation: &ValidationRules{Min: floatPtr(18), Max: floatPtr(99)}},
			{ID: "room", Type: Product, Label: "Habitación", ProductOptions: []ProductOption{
				{Label: "Suite", Price: 50},
			}},
			{ID: "plan", Type: SingleSelect, Label: "Plan", Options: []string{"Básico", "Completo"}},
		},
	}

	t.Run("valid submission", func(t *testing.T) {
		errs := ValidateSubmission(form, AnswerSet{
			"name": "Ana",
			"age":  21.0,
			"room": []any{"Suite"},
			"plan": "Básico",
		})
		assert.Empty(t, errs)
	})

	t.Run("required field empty", func(t *testing.T) {
		errs := ValidateSubmission(form, AnswerSet{"name": "   "})
		assert.Len(t, errs, 1)
		assert.Equal(t, "name", errs[0].FieldID)
	})

	t.Run("optional fields may be empty", func(t *testing.T) {
		errs := ValidateSubmission(form, AnswerSet{"name": "Ana"})
		assert.Empty(t, errs)
	})

	t.Run("number out of range", func(t *testing.T) {
		errs := ValidateSubmission(form, AnswerSet{"name": "Ana", "age": "12"})
		assert.Len(t, errs, 1)
		assert.Equal(t, "age", errs[0].FieldID)

		errs = ValidateSubmission(form, AnswerSet{"name": "Ana", "age": 120.0})
		assert.Len(t, errs, 1)
	})

	t.Run("number not numeric", func(t *testing.T) {
		errs := ValidateSubmission(form, AnswerSet{"name": "Ana", "age": "veinte"})
		assert.Len(t, errs, 1)
	})

	t.Run("unknown product option", func(t *testing.T) {
		errs := ValidateSubmission(form, AnswerSet{"name": "Ana", "room": []any{"Cabaña"}})
		assert.Len(t, errs, 1)
		assert.Equal(t, "room", errs[0].FieldID)
	})

	t.Run("unknown select option", func(t *testing.T) {
		errs := ValidateSubmission(form, AnswerSet{"name": "Ana", "plan": "Premium"})
		assert.Len(t, errs, 1)
	})

	t.Run("violations accumulate", func(t *testing.T) {
		errs := ValidateSubmission(form, AnswerSet{"age": "12", "plan": "Premium"})
		assert.Len(t, errs, 3)
	})
}

func TestValidateSubmissionPaymentAmounts(t *testing.T) {
	form := FormSchema{
		ID: "form-1",
		Fields: []FormField{
			{ID: "pay", Type: Payment, Label: "Pago Inicial"},
			{ID: "abono", Type: Number, Label: "Abono"},
			{ID: "deposit", Type: Number, Label: "Depósito", Role: RolePayment,
				Validation: &ValidationRules{Min: floatPtr(10)}},
		},
	}

	t.Run("currency-formatted amounts are valid", func(t *testing.T) {
		errs := ValidateSubmission(form, AnswerSet{
			"pay":     "$30.50",
			"abono":   "COP 20.000",
			"deposit": "$ 15",
		})
		assert.Empty(t, errs)
	})

	t.Run("range checks see the stripped value", func(t *testing.T) {
		errs := ValidateSubmission(form, AnswerSet{"deposit": "$5"})
		assert.Len(t, errs, 1)
		assert.Equal(t, "deposit", errs[0].FieldID)
	})

	t.Run("amount without digits is rejected", func(t *testing.T) {
		errs := ValidateSubmission(form, AnswerSet{"pay": "gratis"})
		assert.Len(t, errs, 1)
		assert.Equal(t, "pay", errs[0].FieldID)
	})
}
