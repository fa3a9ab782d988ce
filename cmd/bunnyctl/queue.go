package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/khoahotran/bunny-go/adapters/event"
)

func queueCommand() *cli.Command {
	return &cli.Command{
		Name:        "queue",
		Description: "publish jobs for the worker",
		Subcommands: []*cli.Command{{
			Name:      "upload",
			ArgsUsage: "<local file>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "folder"},
				&cli.StringFlag{Name: "name", Usage: "defaults to the local file name"},
			},
			Action: withEnv([]string{"kafka.brokers"}, func(e *env, ctx *cli.Context) error {
				local := ctx.Args().First()
				content, err := os.ReadFile(local)
				if err != nil {
					return err
				}
				name := ctx.String("name")
				if name == "" {
					name = filepath.Base(local)
				}
				return publish(e, ctx, event.JobPayload{
					Type:    event.JobStorageUpload,
					Folder:  ctx.String("folder"),
					Name:    name,
					Content: content,
				})
			}),
		}, {
			Name:      "fetch",
			ArgsUsage: "<url>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "collection"},
				&cli.BoolFlag{Name: "low-priority"},
			},
			Action: withEnv([]string{"kafka.brokers"}, func(e *env, ctx *cli.Context) error {
				url := ctx.Args().First()
				if url == "" {
					return fmt.Errorf("url is required")
				}
				return publish(e, ctx, event.JobPayload{
					Type:         event.JobStreamFetch,
					URL:          url,
					CollectionID: ctx.String("collection"),
					LowPriority:  ctx.Bool("low-priority"),
				})
			}),
		}},
	}
}

func publish(e *env, ctx *cli.Context, job event.JobPayload) error {
	producer, err := event.NewKafkaProducerClient(e.cfg, e.log)
	if err != nil {
		return err
	}
	defer producer.Close()

	id, err := producer.PublishJob(background(ctx), job)
	if err != nil {
		return err
	}
	return e.print(map[string]string{"job_id": id, "type": string(job.Type)})
}
