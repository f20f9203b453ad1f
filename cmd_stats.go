package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/akinalp/bloglist/database"
	"github.com/akinalp/bloglist/models"
	"github.com/akinalp/bloglist/pkg/listhelper"
	"github.com/akinalp/bloglist/pkg/logger"
	"github.com/akinalp/bloglist/repository"
)

// Output formats of the stats command.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// statsReport is what the stats command prints.
type statsReport struct {
	Users int `json:"users" yaml:"users"`
	Blogs int `json:"blogs" yaml:"blogs"`

	models.BlogStats `yaml:",inline"`
}

func statsCmd() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Print the aggregates over the stored blogs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Usage:   "SQLite database file",
				Sources: cli.EnvVars("DATABASE_PATH"),
				Value:   "./data/bloglist.db",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format (json, yaml)",
				Value:   formatJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format := cmd.String("format")
			if format != formatJSON && format != formatYAML {
				return fmt.Errorf("unknown output format: %q", format)
			}

			db, err := database.New(cmd.String("db"), database.Migrations(), logger.Nop())
			if err != nil {
				return err
			}
			defer db.Close()

			report, err := collectStats(ctx, repository.NewSQLiteUserRepo(db.Conn), repository.NewSQLiteBlogRepo(db.Conn))
			if err != nil {
				return err
			}
			return writeStats(cmd.Root().Writer, format, report)
		},
	}
}

func collectStats(ctx context.Context, users repository.UserRepository, blogs repository.BlogRepository) (*statsReport, error) {
	userCount, err := users.Count(ctx)
	if err != nil {
		return nil, err
	}

	all, err := blogs.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &statsReport{
		Users:     userCount,
		Blogs:     len(all),
		BlogStats: listhelper.Summarize(all),
	}, nil
}

func writeStats(w io.Writer, format string, report *statsReport) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
}
