package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/khoahotran/bunny-go/pkg/bunny/stream"
)

var streamRequired = []string{"bunny.library_id", "bunny.library_key"}

func library(e *env) *stream.Library {
	return e.client.GetLibrary(e.cfg.Bunny.LibraryID, e.cfg.Bunny.LibraryKey)
}

func videoID(ctx *cli.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("video id: %w", err)
	}
	return id, nil
}

func streamCommand() *cli.Command {
	return &cli.Command{
		Name:        "stream",
		Description: "commands for the configured video library",
		Subcommands: []*cli.Command{
			videoCommand(),
			collectionCommand(),
		},
	}
}

func videoCommand() *cli.Command {
	return &cli.Command{
		Name:        "video",
		Description: "manage videos",
		Subcommands: []*cli.Command{{
			Name:      "get",
			ArgsUsage: "<video id>",
			Action: withEnv(streamRequired, func(e *env, ctx *cli.Context) error {
				id, err := videoID(ctx)
				if err != nil {
					return err
				}
				res, err := library(e).GetVideo(background(ctx), id)
				if err != nil || !res.Succeeded() {
					return printResult(e, res, err)
				}
				return e.print(res.Data.Data())
			}),
		}, {
			Name:    "list",
			Aliases: []string{"ls"},
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "page"},
				&cli.IntFlag{Name: "per-page"},
				&cli.StringFlag{Name: "search"},
				&cli.StringFlag{Name: "collection"},
				&cli.StringFlag{Name: "order-by"},
			},
			Action: withEnv(streamRequired, func(e *env, ctx *cli.Context) error {
				res, err := library(e).ListVideos(background(ctx), stream.ListVideosParams{
					Page:         ctx.Int("page"),
					ItemsPerPage: ctx.Int("per-page"),
					Search:       ctx.String("search"),
					Collection:   ctx.String("collection"),
					OrderBy:      ctx.String("order-by"),
				})
				return printResult(e, res, err)
			}),
		}, {
			Name:      "create",
			ArgsUsage: "<title>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "collection"},
			},
			Action: withEnv(streamRequired, func(e *env, ctx *cli.Context) error {
				res, err := library(e).CreateVideo(background(ctx), stream.CreateVideoParams{
					Title:        ctx.Args().First(),
					CollectionID: ctx.String("collection"),
				})
				return printResult(e, res, err)
			}),
		}, {
			Name:        "fetch",
			Description: "ingest a video from a remote URL",
			ArgsUsage:   "<url>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "collection"},
				&cli.BoolFlag{Name: "low-priority"},
			},
			Action: withEnv(streamRequired, func(e *env, ctx *cli.Context) error {
				res, err := library(e).FetchVideo(background(ctx),
					stream.FetchVideoBody{URL: ctx.Args().First()},
					stream.FetchVideoQuery{
						CollectionID: ctx.String("collection"),
						LowPriority:  ctx.Bool("low-priority"),
					})
				return printResult(e, res, err)
			}),
		}, {
			Name:      "delete",
			Aliases:   []string{"rm"},
			ArgsUsage: "<video id>",
			Action: withEnv(streamRequired, func(e *env, ctx *cli.Context) error {
				id, err := videoID(ctx)
				if err != nil {
					return err
				}
				v := stream.NewVideo(library(e), stream.VideoData{}, id)
				res, err := v.Delete(background(ctx))
				return printResult(e, res, err)
			}),
		}},
	}
}

func collectionCommand() *cli.Command {
	return &cli.Command{
		Name:        "collection",
		Description: "manage collections",
		Subcommands: []*cli.Command{{
			Name:    "list",
			Aliases: []string{"ls"},
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "page"},
				&cli.StringFlag{Name: "search"},
			},
			Action: withEnv(streamRequired, func(e *env, ctx *cli.Context) error {
				res, err := library(e).GetCollectionList(background(ctx), stream.ListCollectionsParams{
					Page:   ctx.Int("page"),
					Search: ctx.String("search"),
				})
				if err != nil || !res.Succeeded() {
					return printResult(e, res, err)
				}
				out := make([]stream.CollectionData, 0, len(res.Data.Items))
				for _, c := range res.Data.Items {
					out = append(out, c.Data())
				}
				return e.print(out)
			}),
		}, {
			Name:      "create",
			ArgsUsage: "[name]",
			Action: withEnv(streamRequired, func(e *env, ctx *cli.Context) error {
				res, err := library(e).CreateCollection(background(ctx), ctx.Args().First())
				if err != nil || !res.Succeeded() {
					return printResult(e, res, err)
				}
				return e.print(res.Data.Data())
			}),
		}},
	}
}
