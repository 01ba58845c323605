// Package main provides the renamer command. It renames every file below a
// directory by replacing one substring of its name with another.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/Cyclone1070/dirtools/internal/config"
	"github.com/Cyclone1070/dirtools/internal/logutil"
	"github.com/Cyclone1070/dirtools/internal/tool/errutil"
	"github.com/Cyclone1070/dirtools/internal/tool/fsutil"
	"github.com/Cyclone1070/dirtools/internal/tool/gitutil"
	"github.com/Cyclone1070/dirtools/internal/tool/rename"
)

const completedMessage = "Renaming completed!"

// Dependencies holds the components required to run the command.
type Dependencies struct {
	Config *config.Config
	FS     *fsutil.OSFileSystem
	Logger *logrus.Logger
}

// options are the parsed command-line arguments.
type options struct {
	Directory        string
	Search           string
	Replace          string
	RespectGitignore bool
}

func optionsFromCli(cliCtx *cli.Context) options {
	return options{
		Directory:        cliCtx.String("directory"),
		Search:           cliCtx.String("string1"),
		Replace:          cliCtx.String("string2"),
		RespectGitignore: cliCtx.Bool("gitignore"),
	}
}

func newApp(deps Dependencies) *cli.App {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Usage = "rename files below a directory by substring substitution"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:     "directory, d",
			Usage:    "Directory to search",
			Required: true,
		},
		cli.StringFlag{
			Name:     "string1, s1",
			Usage:    "Substring to find in file names",
			Required: true,
		},
		cli.StringFlag{
			Name:     "string2, s2",
			Usage:    "Substring to put in its place",
			Required: true,
		},
		cli.BoolFlag{
			Name:  "gitignore",
			Usage: "Skip entries matched by the directory's .gitignore (default from config)",
		},
	}

	logutil.ConfigureLogging(app, logutil.NewConfig(deps.Logger, deps.Config.Log))

	app.Action = func(cliCtx *cli.Context) error {
		opts := optionsFromCli(cliCtx)
		opts.RespectGitignore = opts.RespectGitignore || deps.Config.Renamer.RespectGitignore

		if err := run(context.Background(), deps, opts); err != nil {
			return err
		}

		_, err := fmt.Fprintln(cliCtx.App.Writer, completedMessage)
		return err
	}

	return app
}

func run(ctx context.Context, deps Dependencies, opts options) error {
	req, err := rename.NewRenameRequest(rename.RenameDTO{
		Directory:        opts.Directory,
		Search:           opts.Search,
		Replace:          opts.Replace,
		RespectGitignore: opts.RespectGitignore,
	}, deps.FS)
	if err != nil {
		return err
	}

	renamer := rename.NewRenamer(deps.FS, gitutil.NewLoader(deps.FS), deps.Logger)
	resp, err := renamer.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("renaming in %s: %w", opts.Directory, err)
	}

	deps.Logger.WithFields(logrus.Fields{
		"directories": resp.DirsVisited,
		"files":       len(resp.Renamed),
		"changed":     resp.ChangedCount(),
	}).Info("renaming finished")

	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}

	deps := Dependencies{
		Config: cfg,
		FS:     fsutil.NewOSFileSystem(),
		Logger: logrus.StandardLogger(),
	}

	if err := newApp(deps).Run(os.Args); err != nil {
		logrus.WithField("kind", errutil.Classify(err)).Fatal(err)
	}
}
