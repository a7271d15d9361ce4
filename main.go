//go:generate go run ./internal/cmd/generate

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/chirino/docmodel/internal/cmd/seed"
	"github.com/chirino/docmodel/internal/cmd/serve"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "docmodel",
		Usage: "Multi-tenant document store CRUD service",
		Commands: []*cli.Command{
			serve.Command(),
			seed.Command(),
		},
	}
	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
