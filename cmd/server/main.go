package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"salesdash/internal/api"
	"salesdash/internal/config"
	"salesdash/internal/engine"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// The API goes live immediately; endpoints answer 503 until the
	// dataset lands.
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = api.JSONSerializer{}
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	store := engine.NewStore()
	h := api.NewHandler(store)
	h.RegisterRoutes(e)
	e.Static("/", cfg.SiteDir)

	// Load in the background so startup stays instant.
	go func() {
		t0 := time.Now()
		ds, source, err := engine.LoadDataset(cfg.DataDir)
		if err != nil {
			log.Printf("BACKGROUND: %v", err)
			return
		}
		store.SetData(ds, source)
		log.Printf("BACKGROUND: dataset ready (%s, %d records) in %v", source, len(ds.Records), time.Since(t0))
	}()

	log.Printf("Server ready on %s (data loading in background...)", cfg.Addr)
	e.Logger.Fatal(e.Start(cfg.Addr))
}
