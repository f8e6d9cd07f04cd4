// Command graphlens is the headless companion to the interactive
// viewers: it lays out graphs and exports the results, serves the
// GraphQL API, and inspects graph files from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dd0wney/graphlens/pkg/config"
	"github.com/dd0wney/graphlens/pkg/logging"
	"github.com/dd0wney/graphlens/pkg/source"
)

var version = "1.0.0"

// Output colors
var (
	brand  = color.New(color.FgHiMagenta, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

var (
	configPath string
	cfg        config.Config
	logger     logging.Logger
)

var rootCmd = &cobra.Command{
	Use:     "graphlens",
	Short:   "graphlens: force-directed graph layout and export",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger = logging.NewJSONLogger(os.Stderr, logging.WarnLevel)
		return nil
	},
}

func openSource(kind string) (source.Source, error) {
	if kind == "" {
		kind = cfg.Source.Kind
	}
	switch kind {
	case "file":
		if cfg.Source.Path == "" {
			return nil, fmt.Errorf("file source needs source.path in %s", configPath)
		}
		return source.NewFileSource(cfg.Source.Path), nil
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return source.NewPGSource(ctx, cfg.Source.PostgresURL)
	case "feed":
		return source.NewFeedSource(cfg.Source.FeedURL, logger)
	case "demo":
		return source.NewDemoSource(), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", kind)
	}
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "graphlens.yaml", "config file path")

	rootCmd.AddCommand(
		exportCmd(),
		serveCmd(),
		inspectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		bad.Fprintf(os.Stderr, "graphlens: %v\n", err)
		os.Exit(1)
	}
}
