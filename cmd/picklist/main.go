package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"

	"github.com/v-s-abhishek/PickList/internal/cli"
	"github.com/v-s-abhishek/PickList/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Root flags (apply to every subcommand) override the environment.
	group := flag.Bool("group", false, "split each category into to-pack / packed")
	flag.StringVar(&cfg.Store, "store", cfg.Store, "storage backend: json, sqlite, redis or memory")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "data directory for the json store")
	flag.StringVar(&cfg.Theme, "theme", cfg.Theme, "theme for this run: classic, neon or mono")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Run(ctx, flag.Args(), cli.Options{
		Group:  *group,
		Config: cfg,
	})
	stop()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
