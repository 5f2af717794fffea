package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"backend/configs"
	"backend/middlewares"
	"backend/routes"
	"backend/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectDB(cfg.DBSource)
	db := configs.DB()
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}

	// Event fan-out hub
	hub := ws.NewHub()
	go hub.Run()

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	routes.RegisterRoutes(r, db, cfg, hub)

	// No blanket write timeout: WS subscriptions stay open for the life of
	// the client. Request work is bounded by the DB layer.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Println("server running at", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
