package routes

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/ai"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/app"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/export"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/finance"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/httpx"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/log"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/model"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/sharelink"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/sheet"
)

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := app.Sheets.Forms(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "sheet.get_forms", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

// SaveForm persists a form as a unit: the whole schema is overwritten, there
// is no partial update. New forms and fields get ids assigned here; the write
// itself is queued and acknowledged optimistically.
func SaveForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := model.FormSchema{}
		if err := render.DecodeJSON(r.Body, &form); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if id := chi.URLParam(r, "id"); id != "" {
			form.ID = id
		}
		if form.ID == "" {
			form.ID = uuid.NewString()
		}
		if form.CreatedAt == 0 {
			form.CreatedAt = time.Now().UnixMilli()
		}
		for i := range form.Fields {
			if form.Fields[i].ID == "" {
				form.Fields[i].ID = uuid.NewString()
			}
		}

		if err := app.Sheets.SaveForm(r.Context(), form); err != nil {
			httpx.LogInternalError(w, "sheet.save_form.enqueue", err)
			return
		}

		render.Status(r, http.StatusAccepted)
		render.JSON(w, r, form)
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := app.Sheets.DeleteForm(r.Context(), id); err != nil {
			httpx.LogInternalError(w, "sheet.delete_form.enqueue", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// responseView is one persisted row prepared for the admin table: answers
// resolved by label and the financial result, recomputed when the stored
// snapshot is unusable.
type responseView struct {
	SubmittedAt string         `json:"submittedAt,omitempty"`
	Answers     map[string]any `json:"answers"`
	Financials  finance.Result `json:"financials"`
}

func ListResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, rows, ok := formResponses(app, w, r)
		if !ok {
			return
		}

		views := make([]responseView, 0, len(rows))
		for _, row := range rows {
			view := responseView{
				Answers:    row.Answers(form.Fields),
				Financials: row.Financials(form.Fields),
			}
			if t, timeOK := row.SubmittedAt(); timeOK {
				view.SubmittedAt = t.Format(time.RFC3339)
			}
			views = append(views, view)
		}

		render.JSON(w, r, map[string]any{
			"hasPricing": finance.HasPricing(form.Fields),
			"responses":  views,
		})
	}
}

func ExportResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, rows, ok := formResponses(app, w, r)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", form.Title+".csv"))
		if err := export.Write(w, form, rows); err != nil {
			log.Errorf("export.csv: %s", err)
		}
	}
}

// formResponses loads a form plus the rows of its sheet that actually belong
// to it. Rows from sibling forms sharing the sheet are filtered out here.
func formResponses(app app.App, w http.ResponseWriter, r *http.Request) (model.FormSchema, []finance.Row, bool) {
	id := chi.URLParam(r, "id")

	form, found, err := app.Sheets.FormByID(r.Context(), id)
	if err != nil {
		httpx.LogInternalError(w, "sheet.get_form", err)
		return form, nil, false
	}
	if !found {
		httpx.LogNotFound(w, "get_form", id)
		return form, nil, false
	}

	rows, err := app.Sheets.Responses(r.Context(), id)
	if errors.Is(err, sheet.ErrScriptOutdated) {
		log.Warnf("sheet.get_responses: %s", err)
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, map[string]any{
			"error": "SCRIPT_OUTDATED",
			"message": "La hoja de cálculo usa una versión antigua del script. " +
				"Abre el editor de Apps Script, pega la última versión y vuelve a publicar el despliegue, luego reintenta.",
		})
		return form, nil, false
	}
	if err != nil {
		httpx.LogInternalError(w, "sheet.get_responses", err)
		return form, nil, false
	}

	relevant := rows[:0]
	for _, row := range rows {
		if row.RelevantTo(form) {
			relevant = append(relevant, row)
		}
	}
	return form, relevant, true
}

func ShareLink(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		form, found, err := app.Sheets.FormByID(r.Context(), id)
		if err != nil {
			httpx.LogInternalError(w, "sheet.get_form", err)
			return
		}
		if !found {
			httpx.LogNotFound(w, "get_form", id)
			return
		}

		data, err := sharelink.Encode(form)
		if err != nil {
			httpx.LogInternalError(w, "sharelink.encode", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"id":     "?id=" + form.ID,
			"legacy": "?data=" + data,
		})
	}
}

func GetConfig(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := app.Sheets.Config(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "sheet.get_config", err)
			return
		}
		render.JSON(w, r, cfg)
	}
}

func SaveConfig(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := model.AppConfig{}
		if err := render.DecodeJSON(r.Body, &cfg); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err := app.Sheets.SaveConfig(r.Context(), cfg); err != nil {
			httpx.LogInternalError(w, "sheet.save_config.enqueue", err)
			return
		}

		render.Status(r, http.StatusAccepted)
		render.JSON(w, r, cfg)
	}
}

func GenerateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		if err := render.DecodeJSON(r.Body, &req); err != nil || req.Prompt == "" {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		form, err := app.Generator.Generate(r.Context(), req.Prompt)
		if errors.Is(err, ai.ErrMissingAPIKey) {
			httpx.LogStatusMsg(w, http.StatusServiceUnavailable, log.WarnLevel, "ai.generate",
				"Falta la API KEY en la configuración del servidor.")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "ai.generate", err)
			return
		}

		render.JSON(w, r, form)
	}
}
