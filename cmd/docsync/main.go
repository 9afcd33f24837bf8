package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jorge-barreto/docsync/internal/docs"
	"github.com/jorge-barreto/docsync/internal/scaffold"
	"github.com/jorge-barreto/docsync/internal/ux"
	cli "github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:        "docsync",
		Usage:       "Keep documentation in sync with code pull requests",
		Description: "Run 'docsync docs' for documentation on configuration, prompts, and outcomes.",
		Commands: []*cli.Command{
			runCmd(),
			initCmd(),
			docsCmd(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		stop()
		os.Exit(1)
	}
}

func runCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Sync documentation for one source pull request",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "source-pr", Usage: "Source pull request number", Required: true},
			&cli.StringFlag{Name: "source-repo", Usage: "Source repository (owner/name)", Required: true},
			&cli.StringFlag{Name: "doc-repo", Usage: "Documentation repository (owner/name)", Required: true},
			&cli.StringFlag{Name: "doc-path", Usage: "Path to scan in the documentation repository", Required: true},
			&cli.StringFlag{Name: "repo-path", Usage: "Local checkout of the source repository", Value: "."},
			&cli.StringFlag{Name: "config", Usage: "Config file (default <repo-path>/.docsync.yaml)"},
			&cli.StringFlag{Name: "strategy", Usage: "Generation strategy: per-file or batched"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the planned branch and files without writing"},
			&cli.StringFlag{Name: "artifacts-dir", Usage: "Record prompts, responses, and a run summary here"},
			&cli.BoolFlag{Name: "verbose", Usage: "Log diagnostic detail to stderr"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd.Bool("verbose"))

			opts := runOptions{
				SourcePR:     int(cmd.Int("source-pr")),
				SourceRepo:   cmd.String("source-repo"),
				DocRepo:      cmd.String("doc-repo"),
				DocPath:      cmd.String("doc-path"),
				RepoPath:     cmd.String("repo-path"),
				ConfigPath:   cmd.String("config"),
				Strategy:     cmd.String("strategy"),
				DryRun:       cmd.Bool("dry-run"),
				ArtifactsDir: cmd.String("artifacts-dir"),
			}
			report, err := run(ctx, opts, os.Getenv)
			if err != nil {
				return err
			}
			if report.URL != "" {
				ux.Success(report.URL)
			} else {
				ux.Done(report.Message())
			}
			return nil
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a starter .docsync.yaml in the current directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "prompts", Usage: "Also write editable prompt templates"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir, cmd.Bool("prompts"))
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'docsync docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}
