package main

import (
	"github.com/urfave/cli/v2"

	"github.com/khoahotran/bunny-go/pkg/bunny/account"
)

var accountRequired = []string{"bunny.access_key"}

func accountCommand() *cli.Command {
	return &cli.Command{
		Name:        "account",
		Description: "account-level reference data and video libraries",
		Subcommands: []*cli.Command{{
			Name: "countries",
			Action: withEnv(accountRequired, func(e *env, ctx *cli.Context) error {
				res, err := e.client.Account().ListCountries(background(ctx))
				return printResult(e, res, err)
			}),
		}, {
			Name: "regions",
			Action: withEnv(accountRequired, func(e *env, ctx *cli.Context) error {
				res, err := e.client.Account().ListRegions(background(ctx))
				return printResult(e, res, err)
			}),
		}, {
			Name: "languages",
			Action: withEnv(accountRequired, func(e *env, ctx *cli.Context) error {
				res, err := e.client.Account().ListLanguages(background(ctx))
				return printResult(e, res, err)
			}),
		}, {
			Name:    "libraries",
			Aliases: []string{"videolibraries"},
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "page"},
				&cli.IntFlag{Name: "per-page"},
				&cli.StringFlag{Name: "search"},
			},
			Action: withEnv(accountRequired, func(e *env, ctx *cli.Context) error {
				res, err := e.client.Account().ListVideoLibraries(background(ctx), account.ListVideoLibrariesParams{
					Page:    ctx.Int("page"),
					PerPage: ctx.Int("per-page"),
					Search:  ctx.String("search"),
				})
				if err != nil || !res.Succeeded() {
					return printResult(e, res, err)
				}
				out := make([]account.VideoLibraryData, 0, len(res.Data.Items))
				for _, l := range res.Data.Items {
					out = append(out, l.Data())
				}
				return e.print(out)
			}),
		}},
	}
}
