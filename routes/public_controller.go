package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/app"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/finance"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/httpx"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/log"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/model"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/sharelink"
)

// PublicSharedForm resolves a shared link into a renderable form. Current
// links carry ?id= and hit the store; legacy links carry the whole schema in
// ?data=. When both are present, ?id= wins.
func PublicSharedForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id := r.URL.Query().Get("id"); id != "" {
			form, ok, err := app.Sheets.FormByID(r.Context(), id)
			if err != nil {
				httpx.LogInternalError(w, "sheet.get_form", err)
				return
			}
			if !ok {
				httpx.LogNotFound(w, "get_form", id)
				return
			}
			render.JSON(w, r, form)
			return
		}

		if data := r.URL.Query().Get("data"); data != "" {
			form, err := sharelink.Decode(data)
			if err != nil {
				log.Debugf("sharelink.decode: %s", err)
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, map[string]any{
					"error":   "INVALID_LINK",
					"message": "El enlace del formulario es inválido o está dañado.",
				})
				return
			}
			render.JSON(w, r, form)
			return
		}

		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.shared.missing_param")
	}
}

func PublicGetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		form, ok, err := app.Sheets.FormByID(r.Context(), id)
		if err != nil {
			httpx.LogInternalError(w, "sheet.get_form", err)
			return
		}
		if !ok {
			httpx.LogNotFound(w, "get_form", id)
			return
		}

		render.JSON(w, r, form)
	}
}

type submissionRequest struct {
	// Data carries the legacy self-contained schema when the visitor opened a
	// ?data= link; the form then never existed in the store.
	Data    string          `json:"data,omitempty"`
	Answers model.AnswerSet `json:"answers"`
}

type submissionResponse struct {
	Message    string               `json:"message"`
	Financials finance.Result       `json:"financials"`
	ThankYou   model.ThankYouScreen `json:"thankYouScreen"`
}

func PublicSubmitForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req submissionRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		var form model.FormSchema
		if req.Data != "" {
			var err error
			form, err = sharelink.Decode(req.Data)
			if err != nil {
				httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.decode_data")
				return
			}
		} else {
			var ok bool
			var err error
			form, ok, err = app.Sheets.FormByID(r.Context(), id)
			if err != nil {
				httpx.LogInternalError(w, "sheet.get_form", err)
				return
			}
			if !ok {
				httpx.LogNotFound(w, "get_form", id)
				return
			}
		}

		submitForm(app, w, r, form, req.Answers)
	}
}

func submitForm(app app.App, w http.ResponseWriter, r *http.Request, form model.FormSchema, answers model.AnswerSet) {
	if !form.IsActive && form.ID != "" {
		httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "submit.form_inactive")
		return
	}

	if errs := model.ValidateSubmission(form, answers); len(errs) > 0 {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, map[string]any{"errors": errs})
		return
	}

	nights := finance.ComputeNights(form.Fields, answers)
	result := finance.Compute(form.Fields, answers, nights)

	row := finance.AssembleRow(form, answers, result)
	// Writes are optimistic: a failed enqueue is logged, never surfaced. The
	// visitor sees the confirmation screen regardless.
	if err := app.Sheets.SaveResponse(context.WithoutCancel(r.Context()), row); err != nil {
		log.Errorf("submit.enqueue: %s", err)
	}

	thankYou := form.ThankYouScreen
	thankYou.Message = finance.Interpolate(thankYou.Message, form.Fields, answers, result)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, submissionResponse{
		Message:    thankYou.Message,
		Financials: result,
		ThankYou:   thankYou,
	})
}
