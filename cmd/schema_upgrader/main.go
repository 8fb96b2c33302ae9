package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	kconf "github.com/taskboard/taskboard/pkg/configs/server"
	kpg "github.com/taskboard/taskboard/pkg/domain/taskboard/db/postgres"
	kio "github.com/taskboard/taskboard/pkg/io"
	"github.com/taskboard/taskboard/pkg/utils/try"
	"github.com/youta-t/flarc"
)

type Flag struct {
	URI    string `flag:"uri" help:"The connection string of the postgres database."`
	Schema string `flag:"schema" help:"The path to the schema repository directory."`
	DryRun bool   `flag:"dry-run" help:"Print versions only. Do not upgrade."`
}

const ARG_SCHEMA_DEST = "ARG_SCHEMA_DEST"

func main() {
	logger := log.Default()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	cmd := try.To(flarc.NewCommand(
		"taskboard database schema upgrader",
		Flag{
			URI:    os.Getenv(kconf.EnvDBURI),
			Schema: os.Getenv("TASKBOARD_SCHEMA"),
		},
		flarc.Args{
			{
				Name: ARG_SCHEMA_DEST, Help: "The schema files are copied to this directory before upgrade.",
				Required: false, Repeatable: false,
			},
		},
		func(ctx context.Context, c flarc.Commandline[Flag], a []any) error {
			flags := c.Flags()
			if flags.URI == "" {
				return fmt.Errorf("%w: flag `--uri` (or, envvar %s) is required", flarc.ErrUsage, kconf.EnvDBURI)
			}
			if flags.Schema == "" {
				return fmt.Errorf("%w: flag `--schema` (or, envvar TASKBOARD_SCHEMA) is required", flarc.ErrUsage)
			}

			if dest := c.Args()[ARG_SCHEMA_DEST]; len(dest) != 0 {
				logger.Printf("copying schema files into %s ...", dest[0])
				if err := kio.DirCopy(flags.Schema, dest[0]); err != nil {
					return err
				}
			}

			db, err := kpg.New(ctx, flags.URI, kpg.WithSchemaRepository(flags.Schema))
			if err != nil {
				return err
			}
			defer db.Close()

			current, err := db.Schema().Version(ctx)
			if err != nil {
				return err
			}
			logger.Printf("current schema version: %d", current)
			if flags.DryRun {
				return nil
			}

			if err := db.Schema().Upgrade(ctx); err != nil {
				return err
			}
			upgraded, err := db.Schema().Version(ctx)
			if err != nil {
				return err
			}
			logger.Printf("upgraded schema version: %d", upgraded)
			return nil
		},
	)).OrFatal(logger)

	os.Exit(flarc.Run(ctx, cmd))
}
