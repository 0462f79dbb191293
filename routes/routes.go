package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/app"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	root.
		With(middlewares.CookieAuth(app.BearerServer), middlewares.Admin(app.TokenSecret)).
		Mount("/admin", servePrivateFiles("/admin"))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	// public client surface
	api.Get("/shared", PublicSharedForm(app))
	api.Get("/forms/{id}", PublicGetForm(app))
	api.Post("/forms/{id}/submissions", PublicSubmitForm(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin(app.TokenSecret))

		// CRUD forms (whole-schema overwrite, no partial update)
		r.Get("/forms", ListForms(app))
		r.Post("/forms", SaveForm(app))
		r.Put("/forms/{id}", SaveForm(app))
		r.Delete("/forms/{id}", DeleteForm(app))

		r.Get("/forms/{id}/responses", ListResponses(app))
		r.Get("/forms/{id}/responses.csv", ExportResponses(app))
		r.Get("/forms/{id}/link", ShareLink(app))

		r.Get("/config", GetConfig(app))
		r.Put("/config", SaveConfig(app))

		r.Post("/generate", GenerateForm(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}

func servePrivateFiles(path string) http.Handler {
	return http.StripPrefix(path, http.FileServer(http.Dir("private")))
}
