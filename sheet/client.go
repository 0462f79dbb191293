// Package sheet talks to the spreadsheet-backed remote store: a single
// webhook endpoint accepting {action, ...payload} POST bodies. Reads are
// awaited and decoded; writes go through a durable local outbox and are
// acknowledged optimistically.
package sheet

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/config"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/finance"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/model"
)

// ErrScriptOutdated signals that the deployed store script predates the
// get_responses action: such scripts fall through to their default save
// handler and echo {"result":"success"}, which must not be mistaken for an
// empty result set.
var ErrScriptOutdated = errors.New("sheet: remote script outdated, redeploy the webhook with get_responses support")

const (
	actionGetForms     = "get_forms"
	actionGetResponses = "get_responses"
	actionSaveForm     = "save_form"
	actionSaveResponse = "save_response"
	actionDeleteForm   = "delete_form"
	actionGetConfig    = "get_config"
	actionSaveConfig   = "save_config"
)

type Client struct {
	url    string
	http   *http.Client
	outbox *Outbox
}

func New(cfg config.Config, db *sql.DB) *Client {
	return &Client{
		url:    cfg.SheetURL,
		http:   &http.Client{Timeout: 30 * time.Second},
		outbox: &Outbox{db: db},
	}
}

// Outbox exposes the write queue so main can start the flush worker.
func (c *Client) Outbox() *Outbox {
	return c.outbox
}

// Forms fetches every stored form schema.
func (c *Client) Forms(ctx context.Context) ([]model.FormSchema, error) {
	body, err := c.post(ctx, map[string]any{"action": actionGetForms})
	if err != nil {
		return nil, err
	}

	var forms []model.FormSchema
	if err := json.Unmarshal(body, &forms); err != nil {
		return nil, fmt.Errorf("sheet.get_forms.decode: %w", err)
	}
	return forms, nil
}

// FormByID fetches a single form. The store has no dedicated lookup action,
// so this scans the full list.
func (c *Client) FormByID(ctx context.Context, id string) (model.FormSchema, bool, error) {
	forms, err := c.Forms(ctx)
	if err != nil {
		return model.FormSchema{}, false, err
	}
	for _, f := range forms {
		if f.ID == id {
			return f, true, nil
		}
	}
	return model.FormSchema{}, false, nil
}

// Responses fetches the persisted rows for a form and unwraps them into
// finance.Row values. It accepts both row generations over the wire: flat
// label-keyed objects and objects nesting the answers under an "answers" key.
func (c *Client) Responses(ctx context.Context, formID string) ([]finance.Row, error) {
	body, err := c.post(ctx, map[string]any{"action": actionGetResponses, "formId": formID})
	if err != nil {
		return nil, err
	}

	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err == nil {
		rows := make([]finance.Row, len(raw))
		for i, m := range raw {
			rows[i] = unwrapRow(m)
		}
		return rows, nil
	}

	// Not an array: either the outdated-script sentinel or garbage.
	var sentinel struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(body, &sentinel); err == nil && sentinel.Result == "success" {
		return nil, ErrScriptOutdated
	}
	return nil, fmt.Errorf("sheet.get_responses.decode: unexpected response %.100s", body)
}

// Config fetches the global app configuration.
func (c *Client) Config(ctx context.Context) (model.AppConfig, error) {
	body, err := c.post(ctx, map[string]any{"action": actionGetConfig})
	if err != nil {
		return model.AppConfig{}, err
	}

	var cfg model.AppConfig
	if err := json.Unmarshal(body, &cfg); err != nil {
		return model.AppConfig{}, fmt.Errorf("sheet.get_config.decode: %w", err)
	}
	return cfg, nil
}

// SaveForm enqueues a whole-schema overwrite. There are no partial updates.
func (c *Client) SaveForm(ctx context.Context, form model.FormSchema) error {
	return c.outbox.Enqueue(ctx, actionSaveForm, map[string]any{"action": actionSaveForm, "form": form})
}

func (c *Client) DeleteForm(ctx context.Context, id string) error {
	return c.outbox.Enqueue(ctx, actionDeleteForm, map[string]any{"action": actionDeleteForm, "id": id})
}

// SaveResponse enqueues one assembled submission row. Old store scripts that
// do not know the action fall through to their default save handler, which
// appends the row all the same.
func (c *Client) SaveResponse(ctx context.Context, row map[string]string) error {
	payload := make(map[string]any, len(row)+2)
	for k, v := range row {
		payload[k] = v
	}
	payload["action"] = actionSaveResponse
	payload[finance.ColDate] = time.Now().Format(time.RFC3339)
	return c.outbox.Enqueue(ctx, actionSaveResponse, payload)
}

func (c *Client) SaveConfig(ctx context.Context, cfg model.AppConfig) error {
	return c.outbox.Enqueue(ctx, actionSaveConfig, map[string]any{"action": actionSaveConfig, "config": cfg})
}

func (c *Client) post(ctx context.Context, payload map[string]any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("sheet.encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("sheet.request: %w", err)
	}
	// text/plain keeps the webhook's CORS handling on the simple-request path
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheet.post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet.post: unexpected status %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("sheet.read: %w", err)
	}
	return buf.Bytes(), nil
}

// unwrapRow flattens the nested row generation: metadata keys stay, the
// answers object is merged in beside them.
func unwrapRow(m map[string]any) finance.Row {
	nested, ok := m["answers"].(map[string]any)
	if !ok {
		return finance.Row(m)
	}

	row := make(finance.Row, len(m)+len(nested))
	for k, v := range m {
		if k == "answers" {
			continue
		}
		row[k] = v
	}
	for k, v := range nested {
		row[k] = v
	}
	return row
}
