// Package logutil configures the logrus logger shared by the dirtools commands.
package logutil

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/Cyclone1070/dirtools/internal/config"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	logFlags = []cli.Flag{
		cli.BoolFlag{
			Name:   "debug",
			Usage:  "debug mode",
			EnvVar: "DIRTOOLS_DEBUG",
		},
		cli.StringFlag{
			Name:  "log-level, l",
			Usage: "Log level (options: debug, info, warn, error, fatal, panic)",
		},
		cli.StringFlag{
			Name:  "log-format",
			Usage: "Choose log format (options: text, json)",
		},
	}

	formats = map[string]func() logrus.Formatter{
		FormatText: func() logrus.Formatter { return &logrus.TextFormatter{DisableTimestamp: true} },
		FormatJSON: func() logrus.Formatter { return new(logrus.JSONFormatter) },
	}
)

func formatNames() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Config holds the effective logger settings. File/env configuration is
// applied first; command-line flags win.
type Config struct {
	logger *logrus.Logger
	level  logrus.Level
	format logrus.Formatter
	output io.Writer
}

// NewConfig creates a Config for logger seeded from the loaded configuration.
// Invalid values were already rejected by config.Validate, so failures here
// fall back to warning level and text output.
func NewConfig(logger *logrus.Logger, cfg config.LogConfig) *Config {
	c := &Config{
		logger: logger,
		level:  logrus.WarnLevel,
		format: formats[FormatText](),
		output: os.Stderr,
	}
	_ = c.SetLevel(cfg.Level)
	_ = c.SetFormat(cfg.Format)
	return c
}

func (l *Config) SetLevel(levelString string) error {
	level, err := logrus.ParseLevel(levelString)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	l.level = level

	return nil
}

func (l *Config) SetFormat(format string) error {
	newFormatter, ok := formats[format]
	if !ok {
		return fmt.Errorf("unknown log format %q, expected one of: %v", format, formatNames())
	}

	l.format = newFormatter()

	return nil
}

func (l *Config) handleCliCtx(cliCtx *cli.Context) error {
	if cliCtx.IsSet("log-level") || cliCtx.IsSet("l") {
		if err := l.SetLevel(cliCtx.String("log-level")); err != nil {
			return err
		}
	}

	if cliCtx.Bool("debug") {
		l.level = logrus.DebugLevel
	}

	if cliCtx.IsSet("log-format") {
		if err := l.SetFormat(cliCtx.String("log-format")); err != nil {
			return err
		}
	}

	l.ReloadConfiguration()

	return nil
}

// SetOutput redirects log output. Logs never share stdout with command output.
func (l *Config) SetOutput(w io.Writer) {
	l.output = w
}

// ReloadConfiguration pushes the current settings into the logger.
func (l *Config) ReloadConfiguration() {
	l.logger.SetOutput(l.output)
	l.logger.SetFormatter(l.format)
	l.logger.SetLevel(l.level)
}

// ConfigureLogging adds the logging flags to app and applies them before the
// action runs. Any Before hook already present on app is kept.
func ConfigureLogging(app *cli.App, l *Config) {
	app.Flags = append(app.Flags, logFlags...)

	appBefore := app.Before
	app.Before = func(cliCtx *cli.Context) error {
		if err := l.handleCliCtx(cliCtx); err != nil {
			return err
		}

		if appBefore != nil {
			return appBefore(cliCtx)
		}
		return nil
	}
}
