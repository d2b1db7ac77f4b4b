package main

import (
	"context"
	"os"

	"github.com/evgeny-myasishchev/ledger.transactions-api/config"
	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/api"
	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/app"
	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/ledger"
	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/lib-core-golang/diag"
	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/lib-core-golang/router"
	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/session"
	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/version"
)

var logger = diag.CreateLogger()

func main() {
	ctx := context.Background()

	appCfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Error(ctx, "Failed to load app config")
		os.Exit(1)
	}

	diag.SetupLoggingSystem(func(setup diag.LoggingSystemSetup) {
		setup.SetLogLevel(appCfg.Log.Level)
	})

	injector := app.BootstrapServices(appCfg)

	if err := injector(func(svc ledger.Service, sessions *session.Resolver) error {
		logger.WithData(diag.MsgData{
			"port":    appCfg.Server.Port,
			"version": version.Version,
		}).Info(ctx, "Starting %v", version.AppName)
		return router.StartServer(appCfg.Server.Port, func(r router.Router) {
			r.Use(diag.NewRequestIDMiddleware())
			r.Use(diag.NewLogRequestsMiddleware())
			api.Setup(r, svc, sessions)
		})
	}); err != nil {
		logger.WithError(err).Error(ctx, "Server failed")
		os.Exit(1)
	}
}
