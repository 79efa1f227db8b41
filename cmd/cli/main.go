package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/dndadmin/internal/buildinfo"
	"github.com/dmitrijs2005/dndadmin/internal/client/cli"
	"github.com/dmitrijs2005/dndadmin/internal/client/config"
	"github.com/dmitrijs2005/dndadmin/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if usage, uerr := config.EnvUsage(); uerr == nil {
			fmt.Fprintln(os.Stderr, usage)
		}
		os.Exit(2)
	}

	logger, err := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Root(ctx)

}
