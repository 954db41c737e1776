package main

import (
	"context"
	"log"
	"os"

	"github.com/mod7ex/chrome-ext-test/internal/buildinfo"
	"github.com/mod7ex/chrome-ext-test/internal/server"
	"github.com/mod7ex/chrome-ext-test/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
