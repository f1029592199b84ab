package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"author-registry/internal/config"
	"author-registry/pkg/container"
	"author-registry/pkg/logger"
)

const usage = `usage: authorctl [--env-file FILE] <command> [flags] [args]

commands:
  create   --username U --email E --password P [--avatar URL]
  get      <id>
  find     <username substring>
  update   <id> [--username U] [--email E] [--avatar URL] [--password P]
  activate <id> --token T
  delete   <id>
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("authorctl", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	envFile := flags.String("env-file", ".env", "dotenv file to load before reading the environment")
	flags.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Init(cfg.IsDevelopment(), cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize")
		return 1
	}
	defer c.Cleanup(context.Background())

	a := &app{
		svc:    c.AuthorService,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	return a.dispatch(ctx, flags.Args())
}
