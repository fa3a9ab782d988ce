package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/khoahotran/bunny-go/pkg/bunny/result"
)

var storageRequired = []string{"bunny.access_key", "bunny.storage_zone"}

func storageCommand() *cli.Command {
	return &cli.Command{
		Name:        "storage",
		Description: "commands for the configured edge storage zone",
		Subcommands: []*cli.Command{{
			Name:        "ls",
			Aliases:     []string{"list"},
			Description: "list a directory",
			ArgsUsage:   "[path]",
			Action: withEnv(storageRequired, func(e *env, ctx *cli.Context) error {
				zone := e.client.CreateClient(e.cfg.Bunny.StorageZone)
				files, err := zone.ListFiles(background(ctx), ctx.Args().First())
				if err != nil {
					return err
				}
				return e.print(files)
			}),
		}, {
			Name:        "get",
			Description: "download a file to stdout or --out",
			ArgsUsage:   "<path>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "out",
					Usage: "write the file here instead of stdout",
				},
			},
			Action: withEnv(storageRequired, func(e *env, ctx *cli.Context) error {
				path := ctx.Args().First()
				if path == "" {
					return fmt.Errorf("path is required")
				}
				zone := e.client.CreateClient(e.cfg.Bunny.StorageZone)
				dl, err := zone.DownloadFile(background(ctx), path)
				if err != nil {
					return err
				}
				if dl.Code != 200 {
					var payload struct{ Message string }
					_ = dl.JSON(&payload)
					return fmt.Errorf("download %s: HTTP %d: %s", path, dl.Code, payload.Message)
				}
				if out := ctx.String("out"); out != "" {
					return os.WriteFile(out, dl.Body, 0o644)
				}
				_, err = ctx.App.Writer.Write(dl.Body)
				return err
			}),
		}, {
			Name:        "put",
			Aliases:     []string{"upload"},
			Description: "upload a local file",
			ArgsUsage:   "<local file> <path>",
			Action: withEnv(storageRequired, func(e *env, ctx *cli.Context) error {
				if ctx.NArg() != 2 {
					return fmt.Errorf("expected <local file> <path>")
				}
				content, err := os.ReadFile(ctx.Args().Get(0))
				if err != nil {
					return err
				}
				zone := e.client.CreateClient(e.cfg.Bunny.StorageZone)
				res, err := zone.UploadFile(background(ctx), ctx.Args().Get(1), content)
				if err != nil {
					return err
				}
				if res.Status != result.Created {
					return fmt.Errorf("upload failed: %s (HTTP %d): %s", res.Status, res.Code, res.Message)
				}
				return e.print(res.Status)
			}),
		}, {
			Name:        "rm",
			Aliases:     []string{"delete", "remove"},
			Description: "delete a file, or a directory when path ends in /",
			ArgsUsage:   "<path>",
			Action: withEnv(storageRequired, func(e *env, ctx *cli.Context) error {
				path := ctx.Args().First()
				if path == "" {
					return fmt.Errorf("path is required")
				}
				zone := e.client.CreateClient(e.cfg.Bunny.StorageZone)
				res, err := zone.DeleteFile(background(ctx), path)
				if err != nil {
					return err
				}
				if res.Status != result.OK {
					return fmt.Errorf("delete failed: %s (HTTP %d): %s", res.Status, res.Code, res.Message)
				}
				return e.print(res.Status)
			}),
		}},
	}
}
