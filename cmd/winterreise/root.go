package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"winterreise/internal/app"
	"winterreise/internal/ui"
	"winterreise/internal/wm"
	"winterreise/pkg/config"
	"winterreise/pkg/logger"
	"winterreise/pkg/notify"
)

const version = "0.3.0"

var (
	configPath  string
	debug       bool
	currentOnly bool
)

var rootCmd = &cobra.Command{
	Use:          "winterreise",
	Short:        "Window navigation",
	Long:         "Shows the open windows as a list of buttons with one-letter hints and focuses the one you pick.",
	Version:      version,
	SilenceUsage: true,
	RunE:         runSwitcher,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&currentOnly, "current", "c", false, "only show windows on the current desktop")
}

// environment is what every command needs before it can talk to the compositor.
type environment struct {
	log      *logger.Logger
	notifier *notify.NotifyService
	cfg      *config.Config
	comp     wm.Compositor
}

func setup() (*environment, error) {
	logLevel := zerolog.InfoLevel
	if debug {
		logLevel = zerolog.DebugLevel
	}

	log, err := logger.NewLogger(
		logger.WithConsole(),
		logger.WithLevel(logLevel),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return nil, err
	}

	log.Info("Starting winterreise",
		"version", version,
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"debug", debug)

	env := &environment{log: log, notifier: notify.NewNotifyService(log)}

	cfg, err := config.FindConfig(configPath, log)
	if err != nil {
		env.fail("Failed to load configuration", err, "provided_path", configPath)
		return nil, err
	}
	env.cfg = cfg
	log.Info("Configuration loaded successfully",
		"tmpfile", cfg.GetTmpfilePolicy().String(),
		"maxwidth", cfg.GetMaxWidth(),
		"blacklist_count", len(cfg.GetBlacklist()))

	comp, err := wm.NewCompositor(log, cfg.GetTransport(), cfg.GetQueryTimeout())
	if err != nil {
		env.fail("Failed to initialize compositor support", err)
		return nil, err
	}
	env.comp = comp

	return env, nil
}

// fail logs a fatal startup error and tells the user why nothing is shown.
func (e *environment) fail(msg string, err error, fields ...interface{}) {
	e.log.Error(msg, err, fields...)
	if nerr := e.notifier.Error("winterreise", fmt.Sprintf("%s: %v", msg, err)); nerr != nil {
		e.log.Warn("Failed to show notification", "error", nerr.Error())
	}
}

func (e *environment) close() {
	e.log.Close()
}

func runSwitcher(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	w := app.NewWinterreise(env.cfg, env.comp, ui.NewFyne(env.log), env.notifier, env.log)
	if _, err := w.Run(context.Background(), currentOnly); err != nil {
		env.fail("Switcher failed", err)
		return err
	}
	return nil
}
