package model

import "regexp"

type FieldType string

const (
	ShortText        FieldType = "short_text"
	LongText         FieldType = "long_text"
	Number           FieldType = "number"
	SingleSelect     FieldType = "single_select"
	Checkbox         FieldType = "checkbox"
	Date             FieldType = "date"
	Time             FieldType = "time"
	ImageUpload      FieldType = "image_upload"
	Product          FieldType = "product"
	Payment          FieldType = "payment"
	AdditionalPerson FieldType = "additional_person"
	StarRating       FieldType = "star_rating"
)

// FieldRole is an explicit capability tag set at design time. When present it
// takes precedence over the label keyword heuristics used on untagged forms.
type FieldRole string

const (
	RoleNone     FieldRole = ""
	RoleCheckin  FieldRole = "checkin"
	RoleCheckout FieldRole = "checkout"
	RolePayment  FieldRole = "payment"
)

type ProductOption struct {
	Label      string  `json:"label"`
	Price      float64 `json:"price"`
	IsPerNight bool    `json:"isPerNight,omitempty"`
}

type ValidationRules struct {
	Min             *float64 `json:"min,omitempty"`
	Max             *float64 `json:"max,omitempty"`
	MaxSizeMB       float64  `json:"maxSizeMB,omitempty"`
	AcceptedFormats []string `json:"acceptedFormats,omitempty"`
}

// FormField is one question of a form. Label doubles as the external key under
// which answers are persisted to the spreadsheet store, so renaming a field
// orphans its historical column (see finance.Row for the tolerant lookup).
type FormField struct {
	ID              string           `json:"id"`
	Type            FieldType        `json:"type"`
	Label           string           `json:"label"`
	Placeholder     string           `json:"placeholder,omitempty"`
	Required        bool             `json:"required"`
	Role            FieldRole        `json:"role,omitempty"`
	Options         []string         `json:"options,omitempty"`
	ProductOptions  []ProductOption  `json:"productOptions,omitempty"`
	Validation      *ValidationRules `json:"validation,omitempty"`
	AdditionalPrice float64          `json:"additionalPrice,omitempty"`
	IsPerNight      bool             `json:"isPerNight,omitempty"`
}

// paymentLabelRe detects free-form payment fields by their label.
var paymentLabelRe = regexp.MustCompile(`(?i)abono|pago|anticipo|seña|adelanto`)

// PaymentLike reports whether the field collects a money amount: a payment
// field, or a number field tagged — or recognizably labeled — as one. Such
// answers arrive currency-formatted and are parsed leniently everywhere.
func (f FormField) PaymentLike() bool {
	if f.Type == Payment {
		return true
	}
	if f.Type != Number {
		return false
	}
	return f.Role == RolePayment || paymentLabelRe.MatchString(f.Label)
}

type ThankYouScreen struct {
	Title       string `json:"title"`
	Message     string `json:"message"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	ButtonText  string `json:"buttonText,omitempty"`
}

type FormSchema struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	IsActive           bool           `json:"isActive"`
	CreatedAt          int64          `json:"createdAt"`
	Fields             []FormField    `json:"fields"`
	ThankYouScreen     ThankYouScreen `json:"thankYouScreen"`
	GoogleSheetURL     string         `json:"googleSheetUrl,omitempty"`
	BackgroundImageURL string         `json:"backgroundImageUrl,omitempty"`
}

// Guest is one entry of an additional_person answer.
type Guest struct {
	Name   string `json:"name"`
	IDType string `json:"idType"`
	IDNum  string `json:"idNum"`
}

// AnswerSet maps field id to the live answer collected during a submission
// session. Value shapes depend on the field type; everything arrives through
// JSON decoding, so lists are []any and numbers are float64.
type AnswerSet map[string]any

type FormResponse struct {
	ID          string         `json:"id"`
	FormID      string         `json:"formId"`
	SubmittedAt int64          `json:"submittedAt"`
	Answers     map[string]any `json:"answers"`
}

type AppConfig struct {
	AppName       string `json:"appName"`
	LogoURL       string `json:"logoUrl"`
	FaviconURL    string `json:"faviconUrl"`
	LoginImageURL string `json:"loginImageUrl"`
}
