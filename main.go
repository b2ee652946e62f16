package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"pukaar/app/api"
	"pukaar/app/config"
	"pukaar/app/service/advice"
	"pukaar/app/service/classifier"
	"pukaar/app/service/flow"
	"pukaar/app/service/orchestrator"
	"pukaar/app/service/redflag"
	"pukaar/app/service/screening"
	"pukaar/app/service/session"
	"pukaar/app/service/triage"
	"pukaar/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, session.New)
	do.Provide(di, flow.New)
	do.Provide(di, classifier.New)
	do.Provide(di, triage.New)
	do.Provide(di, redflag.New)
	do.Provide(di, screening.New)
	do.Provide(di, advice.New)
	do.Provide(di, orchestrator.New)
	do.Provide(di, api.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	do.MustInvoke[*api.Server](di).Run(appCtx)
}
