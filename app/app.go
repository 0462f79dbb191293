package app

import (
	"database/sql"

	"github.com/go-chi/oauth"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/ai"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/config"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/sheet"
)

type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config
	Sheets    *sheet.Client
	Generator *ai.Generator
}
