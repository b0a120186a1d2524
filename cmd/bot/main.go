package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/fx"

	"strat_bot/internal/modules/bootstrap"
	"strat_bot/internal/modules/config"
	"strat_bot/internal/modules/health"
	"strat_bot/internal/modules/okx_client"
	"strat_bot/internal/modules/okx_websocket"
	"strat_bot/internal/modules/postgres"
	"strat_bot/internal/modules/strategy"
	"strat_bot/internal/runner"
	"strat_bot/internal/steps"
)

func main() {
	app := fx.New(
		fx.NopLogger,
		config.Module(),
		bootstrap.Module(),
		health.Module(),
		postgres.Module(),
		okx_client.Module(),
		okx_websocket.Module(),
		strategy.Module(),
		steps.Module(),
		runner.Module(),
	)
	if err := app.Err(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatal(err)
	}

	sig := <-app.Wait()

	stopCtx, cancel := context.WithTimeout(ctx, app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Printf("stop: %v", err)
	}
	os.Exit(sig.ExitCode)
}
