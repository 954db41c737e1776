package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mod7ex/chrome-ext-test/internal/client/config"
	"github.com/mod7ex/chrome-ext-test/internal/client/popup"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := popup.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
		stop()
		os.Exit(1)
	}

}
