// Package ai generates a draft form schema from a free-text description
// through a generative-language endpoint.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/config"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/model"
)

var ErrMissingAPIKey = errors.New("ai: missing API key")

const systemInstruction = `You are an expert Form Builder assistant.
Your task is to generate a JSON schema for a web form based on the user's description.
Focus on creating a relevant, user-friendly structure.

Available Field Types:
- short_text (Names, Emails, simple inputs)
- long_text (Comments, Descriptions)
- number (Age, Quantity, Ratings)
- single_select (Categories, Options - MUST provide options array)
- image_upload (Photos, Documents)

Respond with a single JSON object:
{"title": string, "description": string,
 "fields": [{"label": string, "type": string, "required": bool, "placeholder": string, "options": [string]}],
 "thankYouTitle": string, "thankYouMessage": string}

If the user doesn't specify details, infer reasonable defaults.`

type Generator struct {
	endpoint string
	key      string
	http     *http.Client
}

func New(cfg config.Config) *Generator {
	return &Generator{
		endpoint: cfg.AIEndpoint,
		key:      cfg.AIKey,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

// draft is the partial schema the model is asked to produce.
type draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Fields      []struct {
		Label       string   `json:"label"`
		Type        string   `json:"type"`
		Required    bool     `json:"required"`
		Placeholder string   `json:"placeholder"`
		Options     []string `json:"options"`
	} `json:"fields"`
	ThankYouTitle   string `json:"thankYouTitle"`
	ThankYouMessage string `json:"thankYouMessage"`
}

// Generate asks the model for a draft schema and post-processes it into a
// FormSchema: fresh ids per field, a default min for number fields and a
// default thank-you screen.
func (g *Generator) Generate(ctx context.Context, prompt string) (model.FormSchema, error) {
	if g.key == "" {
		return model.FormSchema{}, ErrMissingAPIKey
	}

	body, err := json.Marshal(map[string]any{
		"system_instruction": map[string]any{
			"parts": []map[string]string{{"text": systemInstruction}},
		},
		"contents": []map[string]any{{
			"parts": []map[string]string{{"text": "Create a form for: " + prompt}},
		}},
		"generationConfig": map[string]string{
			"responseMimeType": "application/json",
		},
	})
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("ai.encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("ai.request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.key)

	resp, err := g.http.Do(req)
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("ai.post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.FormSchema{}, fmt.Errorf("ai.post: unexpected status %d", resp.StatusCode)
	}

	var wire struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return model.FormSchema{}, fmt.Errorf("ai.decode: %w", err)
	}
	if len(wire.Candidates) == 0 || len(wire.Candidates[0].Content.Parts) == 0 {
		return model.FormSchema{}, errors.New("ai: empty response")
	}

	var d draft
	if err := json.Unmarshal([]byte(wire.Candidates[0].Content.Parts[0].Text), &d); err != nil {
		return model.FormSchema{}, fmt.Errorf("ai.decode.draft: %w", err)
	}

	return buildForm(d), nil
}

func buildForm(d draft) model.FormSchema {
	form := model.FormSchema{
		ID:          uuid.NewString(),
		Title:       d.Title,
		Description: d.Description,
		IsActive:    true,
		CreatedAt:   time.Now().UnixMilli(),
		ThankYouScreen: model.ThankYouScreen{
			Title:      d.ThankYouTitle,
			Message:    d.ThankYouMessage,
			ButtonText: "Volver al Inicio",
		},
	}

	for _, f := range d.Fields {
		field := model.FormField{
			ID:          uuid.NewString(),
			Type:        model.FieldType(f.Type),
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Required:    f.Required,
			Options:     f.Options,
		}
		if field.Type == model.Number {
			min := 0.0
			field.Validation = &model.ValidationRules{Min: &min}
		}
		form.Fields = append(form.Fields, field)
	}
	return form
}
