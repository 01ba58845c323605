// Package main provides the countexec command. It tallies the interpreter
// directives ("#!" first lines) of the files directly inside a directory.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/Cyclone1070/dirtools/internal/config"
	"github.com/Cyclone1070/dirtools/internal/logutil"
	"github.com/Cyclone1070/dirtools/internal/tool/errutil"
	"github.com/Cyclone1070/dirtools/internal/tool/fsutil"
	"github.com/Cyclone1070/dirtools/internal/tool/gitutil"
	"github.com/Cyclone1070/dirtools/internal/tool/shebang"
)

// Dependencies holds the components required to run the command.
type Dependencies struct {
	Config *config.Config
	FS     *fsutil.OSFileSystem
	Logger *logrus.Logger
}

type options struct {
	Directory        string
	Format           string
	RespectGitignore bool
}

func newApp(deps Dependencies) *cli.App {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Usage = "count the shebang lines of the files in a directory"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:     "directory, d",
			Usage:    "Directory to scan",
			Required: true,
		},
		cli.StringFlag{
			Name:  "format, f",
			Usage: fmt.Sprintf("Report format (options: %s)", strings.Join(shebang.Formats, ", ")),
			Value: deps.Config.Counter.DefaultFormat,
		},
		cli.BoolFlag{
			Name:  "gitignore",
			Usage: "Skip files matched by the directory's .gitignore (default from config)",
		},
	}

	logutil.ConfigureLogging(app, logutil.NewConfig(deps.Logger, deps.Config.Log))

	app.Action = func(cliCtx *cli.Context) error {
		opts := options{
			Directory:        cliCtx.String("directory"),
			Format:           cliCtx.String("format"),
			RespectGitignore: cliCtx.Bool("gitignore") || deps.Config.Counter.RespectGitignore,
		}
		return run(context.Background(), deps, opts, cliCtx.App.Writer)
	}

	return app
}

func run(ctx context.Context, deps Dependencies, opts options, w io.Writer) error {
	if !lo.Contains(shebang.Formats, opts.Format) {
		return &shebang.UnknownFormatError{Format: opts.Format}
	}

	req, err := shebang.NewCountRequest(shebang.CountDTO{
		Directory:        opts.Directory,
		RespectGitignore: opts.RespectGitignore,
	}, deps.FS)
	if err != nil {
		return err
	}

	counter := shebang.NewCounter(deps.FS, gitutil.NewLoader(deps.FS), deps.Config.Counter.DecodeSampleSize, deps.Logger)
	resp, err := counter.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", opts.Directory, err)
	}

	deps.Logger.WithFields(logrus.Fields{
		"scanned":  resp.Scanned,
		"skipped":  resp.Skipped,
		"shebangs": resp.Table.Total(),
	}).Info("scan finished")

	return shebang.WriteReport(w, resp.Table, opts.Format)
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
