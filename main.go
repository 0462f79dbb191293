package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/ai"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/app"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/config"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/database"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/httpx"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/log"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/routes"
	"github.com/ecoparadisepereira-bit/Eco-Formularios/sheet"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	bearerServer := httpx.NewBearerServer(db, cfg)
	sheets := sheet.New(cfg, db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sheets.Outbox().Run(ctx, cfg.SheetURL, 15*time.Second)

	app := app.App{
		DB:           db,
		BearerServer: bearerServer,
		Config:       cfg,
		Sheets:       sheets,
		Generator:    ai.New(cfg),
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
