package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/app"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/config"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/database"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/model"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/sheet"
)

// responseStoreApp wires an app whose fake store returns the given rows for
// get_responses.
func responseStoreApp(t *testing.T, rows any) app.App {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch body["action"] {
		case "get_forms":
			json.NewEncoder(w).Encode([]model.FormSchema{reservationForm()})
		case "get_responses":
			json.NewEncoder(w).Encode(rows)
		}
	}))
	t.Cleanup(srv.Close)

	cfg := config.Config{
		SheetURL: srv.URL,
		DBUrl:    filepath.Join(t.TempDir(), "test.sqlite"),
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return app.App{DB: db, Config: cfg, Sheets: sheet.New(cfg, db)}
}

func adminRouter(a app.App) http.Handler {
	r := chi.NewRouter()
	r.Get("/forms/{id}/responses", ListResponses(a))
	r.Get("/forms/{id}/responses.csv", ExportResponses(a))
	return r
}

func TestListResponsesFiltersAndDerives(t *testing.T) {
	a := responseStoreApp(t, []map[string]any{
		// tagged row with a stored snapshot
		{"formId": "form-1", "Nombre": "Ana", "Total Calculado": "42", "Total Abono": "0", "Noches Estancia": "1"},
		// untagged row, relevant through its label values, snapshot missing
		{"Nombre": "Luis", "Habitación": "Suite", "Fecha de Entrada": "2024-05-01", "Fecha de Salida": "2024-05-03"},
		// row of a sibling form sharing the sheet
		{"formId": "other-form", "Asunto": "Queja"},
	})
	router := adminRouter(a)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/forms/form-1/responses", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		HasPricing bool `json:"hasPricing"`
		Responses  []struct {
			Answers    map[string]any `json:"answers"`
			Financials struct {
				Total     float64 `json:"total"`
				Paid      float64 `json:"paid"`
				Remaining float64 `json:"remaining"`
				Nights    int     `json:"nights"`
			} `json:"financials"`
		} `json:"responses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.HasPricing)
	require.Len(t, body.Responses, 2)

	// stored snapshot wins, including the trusted zero
	assert.Equal(t, 42.0, body.Responses[0].Financials.Total)
	assert.Equal(t, 0.0, body.Responses[0].Financials.Paid)
	assert.Equal(t, 42.0, body.Responses[0].Financials.Remaining)

	// missing snapshot is recomputed from the reconciled answers
	assert.Equal(t, 100.0, body.Responses[1].Financials.Total)
	assert.Equal(t, 2, body.Responses[1].Financials.Nights)
	assert.Equal(t, "Luis", body.Responses[1].Answers["name"])
}

func TestListResponsesScriptOutdated(t *testing.T) {
	a := responseStoreApp(t, map[string]any{"result": "success"})
	router := adminRouter(a)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/forms/form-1/responses", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SCRIPT_OUTDATED", body["error"])
}

func TestExportResponsesCSV(t *testing.T) {
	a := responseStoreApp(t, []map[string]any{
		{"formId": "form-1", "Fecha": "2024-05-01 08:00:00", "Nombre": "Ana", "Habitación": "Suite",
			"Total Calculado": "150", "Total Abono": "50", "Noches Estancia": "3"},
	})
	router := adminRouter(a)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/forms/form-1/responses.csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Fecha,Nombre,"))
	assert.Contains(t, lines[0], "Saldo Pendiente")
	assert.Contains(t, lines[1], "150.00,50.00,100.00")
}
