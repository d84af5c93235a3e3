package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/housetab/housetab/internal/api"
	"github.com/housetab/housetab/internal/auth"
	"github.com/housetab/housetab/internal/config"
	"github.com/housetab/housetab/internal/notify"
	"github.com/housetab/housetab/internal/service"
	"github.com/housetab/housetab/internal/storage/sqlite"
	"github.com/housetab/housetab/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config yaml (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.Email.Enabled {
		notifier = notify.NewEmailNotifier(
			cfg.Email.Host, cfg.Email.Port,
			cfg.Email.Username, cfg.Email.Password,
			cfg.Email.From, store,
		)
		slog.Info("Email notifications enabled", "host", cfg.Email.Host)
	}

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenDuration())

	router := api.SetupRouter(cfg.Server.Mode, api.Services{
		Authenticator: auth.NewPasswordAuthenticator(store),
		JWTManager:    jwtManager,
		Houses:        service.NewHouseService(store),
		Expenses:      service.NewExpenseService(store),
		Balances:      service.NewBalanceService(store),
		Settlements:   service.NewSettlementService(store, notifier),
	})

	addr := ":" + cfg.Server.Port
	slog.Info("Server starting", "address", addr)
	if err := router.Run(addr); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
