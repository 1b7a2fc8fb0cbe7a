package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/tablegames/blackjack-table-be/internal/api"
	"github.com/tablegames/blackjack-table-be/internal/config"
	"github.com/tablegames/blackjack-table-be/internal/db"
	"github.com/tablegames/blackjack-table-be/internal/game"
	"github.com/tablegames/blackjack-table-be/internal/store"
)

var cli struct {
	Config string `help:"Path to the HCL configuration file." default:"blackjack.hcl"`
	Listen string `help:"Listen address, overriding the configuration file." default:""`
	DB     string `help:"Database path, overriding the configuration file." default:""`
	Origin string `help:"Allowed CORS origin, overriding the configuration file." default:""`
	Debug  bool   `help:"Enable debug logging."`
}

func main() {
	kong.Parse(&cli, kong.Description("Blackjack table server."))

	logger := log.New(os.Stderr)

	cfg, err := config.LoadServerConfig(cli.Config)
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}
	if cli.Listen != "" {
		cfg.Server.Listen = cli.Listen
	}
	if cli.DB != "" {
		cfg.Server.DatabasePath = cli.DB
	}
	if cli.Origin != "" {
		cfg.Server.AllowedOrigin = cli.Origin
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	switch {
	case cli.Debug:
		logger.SetLevel(log.DebugLevel)
	case cfg.Server.LogLevel != "":
		if level, err := log.ParseLevel(cfg.Server.LogLevel); err == nil {
			logger.SetLevel(level)
		}
	}

	// Create data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.Server.DatabasePath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		logger.Fatal("failed to create data directory", "error", err)
	}

	tableStore := store.NewMemoryStore()

	database, err := db.NewDatabase(cfg.Server.DatabasePath)
	if err != nil {
		logger.Warn("failed to initialize database, continuing without persistence", "error", err)
		database = nil
	} else {
		defer database.Close()
	}

	hub := api.NewHub(logger)
	go hub.Run()

	// Create the configured tables, restoring persisted bankrolls.
	for _, tc := range cfg.Tables {
		rules, err := tc.RulesFor()
		if err != nil {
			logger.Fatal("invalid table configuration", "table", tc.Name, "error", err)
		}
		bankroll := cfg.Server.StartingBankroll
		if database != nil {
			if balance, found, err := database.GetBankroll(tc.Name); err == nil && found {
				bankroll = balance
			}
		}
		t := game.NewTable(tc.Name, rules, bankroll)
		if err := tableStore.SaveTable(t); err != nil {
			logger.Fatal("failed to create table", "table", tc.Name, "error", err)
		}
		logger.Info("table ready", "table", t.ID, "name", t.Name, "rules", rules.Name, "bankroll", bankroll)
	}

	handlers := api.NewHandlers(tableStore, database, hub, logger, cfg.Server.StartingBankroll)

	r := mux.NewRouter()
	handlers.RegisterRoutes(r)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			logger.Debug("request", "method", req.Method, "uri", req.RequestURI, "duration", time.Since(start))
		})
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Server.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", cfg.Server.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
