package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/sharelink/internal/buildinfo"
	"github.com/dmitrijs2005/sharelink/internal/client/cli"
	"github.com/dmitrijs2005/sharelink/internal/client/config"
	"github.com/dmitrijs2005/sharelink/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.LoadConfig(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, cli.Usage())
		return 2
	}

	rest := config.Rest(args)
	if len(rest) > 0 && rest[0] == "version" {
		buildinfo.PrintBuildData(os.Stdout)
		return 0
	}

	log, closer, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(cfg, log, os.Stdin, os.Stdout)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer app.Close()

	if len(rest) == 0 {
		buildinfo.PrintBuildData(os.Stdout)
		app.Run(ctx)
		return 0
	}

	if err := app.RunCommand(ctx, rest); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr, cli.Usage())
			return 2
		}
		if !cli.Shown(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}
