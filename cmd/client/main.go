package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/shoppal/internal/buildinfo"
	"github.com/dmitrijs2005/shoppal/internal/client/cli"
	"github.com/dmitrijs2005/shoppal/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	// SIGINT is left to the REPL, which uses it to cancel in-flight requests.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
