package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/mfg-search/api"
	"github.com/gcbaptista/mfg-search/config"
	"github.com/gcbaptista/mfg-search/internal/engine"
	"github.com/gcbaptista/mfg-search/internal/indexing"
	"github.com/gcbaptista/mfg-search/internal/logger"
	"github.com/gcbaptista/mfg-search/internal/metrics"
	"github.com/gcbaptista/mfg-search/internal/tui"
)

const configKey = "config"

func main() {
	app := &cli.App{
		Name:  "mfg-search",
		Usage: "Static full-text search over a directory of manufacturing companies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file (defaults are used when omitted)",
				EnvVars: []string{"MFG_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error); overrides the config file",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Set log output format (text, json); overrides the config file",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "build-index",
				Usage:  "Build the search index from a JSON array of company records",
				Action: buildIndexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Read records from this file instead of stdin",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Write the index to this file instead of stdout",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the search page and JSON API over HTTP",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "Port to listen on; overrides the config file",
					},
				},
			},
			{
				Name:   "tui",
				Usage:  "Search interactively in the terminal",
				Action: tuiCommand,
			},
			{
				Name:      "search",
				Usage:     "Evaluate one query and print the result view as JSON",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup loads .env and the config file, then configures logging.
func setup(c *cli.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Logging.Format = c.String("log-format")
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	c.App.Metadata = map[string]interface{}{configKey: cfg}
	return nil
}

func appConfig(c *cli.Context) *config.AppConfig {
	if cfg, ok := c.App.Metadata[configKey].(*config.AppConfig); ok {
		return cfg
	}
	return config.DefaultAppConfig()
}

func buildIndexCommand(c *cli.Context) error {
	cfg := appConfig(c)

	var input io.Reader = os.Stdin
	if path := c.String("input"); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		input = f
	}

	if out := c.String("out"); out != "" && out != "-" {
		ii, err := indexing.BuildIndex(input, cfg.Index)
		if err != nil {
			return fmt.Errorf("building index: %w", err)
		}
		if err := engine.SaveIndex(out, ii); err != nil {
			return fmt.Errorf("writing index: %w", err)
		}
		slog.Info("index written", "path", out)
		return nil
	}

	return buildIndex(input, os.Stdout, cfg.Index)
}

// buildIndex reads a JSON array of records from r and writes the serialized
// index to w. Nothing is written to w unless the whole corpus indexes cleanly.
func buildIndex(r io.Reader, w io.Writer, settings config.IndexSettings) error {
	ii, err := indexing.BuildIndex(r, settings)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	if _, err := ii.WriteTo(w); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

func serveCommand(c *cli.Context) error {
	cfg := appConfig(c)
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}

	eng, err := engine.Load(cfg)
	if err != nil {
		return err
	}

	if !strings.EqualFold(cfg.Logging.Level, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, eng, metrics.New())

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("search server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("search server stopped")
	return nil
}

func tuiCommand(c *cli.Context) error {
	eng, err := engine.Load(appConfig(c))
	if err != nil {
		return err
	}

	info := eng.IndexInfo()
	summary := fmt.Sprintf("%d companies, %d terms, fields: %s",
		info.DatasetSize, info.TermCount, strings.Join(info.Fields, ", "))

	p := tea.NewProgram(tui.New(eng, summary), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func searchCommand(c *cli.Context) error {
	eng, err := engine.Load(appConfig(c))
	if err != nil {
		return err
	}

	vm := eng.Render(strings.Join(c.Args().Slice(), " "))

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(vm)
}
