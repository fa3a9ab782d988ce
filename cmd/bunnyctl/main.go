package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"

	"github.com/khoahotran/bunny-go/internal/config"
	"github.com/khoahotran/bunny-go/pkg/bunny"
	"github.com/khoahotran/bunny-go/pkg/bunny/result"
	"github.com/khoahotran/bunny-go/pkg/bunny/storage"
	"github.com/khoahotran/bunny-go/pkg/logger"
)

func main() {
	app := cli.App{
		Name:        "bunnyctl",
		Description: "a command line interface to BunnyCDN storage, stream and account APIs",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored output",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log every request",
			},
		},
		Commands: []*cli.Command{
			storageCommand(),
			streamCommand(),
			accountCommand(),
			queueCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// env is what every action needs: loaded config, an SDK client and an
// output printer.
type env struct {
	cfg     config.Config
	client  *bunny.Client
	log     logger.Logger
	printer *pp.PrettyPrinter
}

func (e *env) print(v any) error {
	_, err := e.printer.Println(v)
	return err
}

// printResult prints data on success and fails the command otherwise.
func printResult[T any](e *env, res result.Result[T], err error) error {
	if err != nil {
		return err
	}
	if !res.Succeeded() {
		return fmt.Errorf("%s (HTTP %d): %s", res.Status, res.Code, res.Message)
	}
	return e.print(res.Data)
}

func withEnv(required []string, f func(e *env, ctx *cli.Context) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(required...); err != nil {
			return err
		}

		logEnv := cfg.App.Env
		if !ctx.Bool("verbose") {
			logEnv = "production"
		}
		appLogger := logger.NewZapLogger(logEnv)

		endpoint, err := storage.ParseEndpoint(cfg.Bunny.StorageEndpoint)
		if err != nil {
			return err
		}

		printer := pp.New()
		printer.SetOutput(ctx.App.Writer)
		printer.SetColoringEnabled(!ctx.Bool("no-color"))

		client := bunny.New(cfg.Bunny.AccessKey,
			bunny.WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}),
			bunny.WithEndpoint(endpoint),
			bunny.WithAccountKey(cfg.Bunny.AccountKey),
			bunny.WithLogger(appLogger),
		)

		return f(&env{cfg: cfg, client: client, log: appLogger, printer: printer}, ctx)
	}
}

func background(ctx *cli.Context) context.Context {
	if ctx.Context != nil {
		return ctx.Context
	}
	return context.Background()
}
