package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/config"
	"github.com/sandeepkv93/tasklist/internal/logging"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/scheduler"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"github.com/sandeepkv93/tasklist/internal/update"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tasklist failed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:           "tasklist",
		Short:         "A terminal task list",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.String(config.KeyConfig, "", "path to a YAML config file")
	flags.String(config.KeyBackend, "", "storage backend: sqlite, file or memory")
	flags.String(config.KeyDriver, "", "sqlite driver: sqlite3 (cgo) or sqlite (pure Go)")
	flags.String(config.KeyDBPath, "", "sqlite database path")
	flags.String(config.KeyFilePath, "", "JSON file path for the file backend")
	flags.String(config.KeyLogFile, "", "write logs to this file")
	flags.String(config.KeyLogLevel, "", "log level: debug, info, warn or error")
	flags.Bool(config.KeyMouse, true, "enable mouse input")
	flags.Bool(config.KeyAnimations, true, "animate row removal")
	for _, name := range []string{
		config.KeyConfig, config.KeyBackend, config.KeyDriver, config.KeyDBPath, config.KeyFilePath,
		config.KeyLogFile, config.KeyLogLevel, config.KeyMouse, config.KeyAnimations,
	} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(newListCmd(stdout, v))
	return root
}

func newListCmd(stdout io.Writer, v *viper.Viper) *cobra.Command {
	var filterName, format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print stored tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer closer.Close()

			store, kv, err := openStore(cfg, logger)
			if err != nil {
				return err
			}
			defer kv.Close()

			ctx := context.Background()
			f := store.LoadFilter(ctx)
			if strings.TrimSpace(filterName) != "" {
				parsed, ok := model.ParseFilter(filterName)
				if !ok {
					return fmt.Errorf("%w: %q", model.ErrInvalidFilter, filterName)
				}
				f = parsed
			}
			return printTasks(stdout, store.Load(ctx), f, format)
		},
	}
	cmd.Flags().StringVar(&filterName, "filter", "", "all, active or completed (default: stored filter)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")
	return cmd
}

func printTasks(w io.Writer, tasks []model.Task, f model.Filter, format string) error {
	visible := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Visible(t.Done) {
			visible = append(visible, t)
		}
	}

	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(visible, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(visible)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "text", "":
		for _, t := range visible {
			box := "[ ]"
			if t.Done {
				box = "[x]"
			}
			fmt.Fprintf(w, "%s %s (%d)\n", box, t.Text, t.ID)
		}
		_, err := fmt.Fprintf(w, "%s | showing %s\n", model.CountTasks(tasks).ItemsLeftLabel(), f.Label())
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func openStore(cfg config.RuntimeConfig, logger *slog.Logger) (*storage.Store, storage.KV, error) {
	kv, err := storage.Open(storage.Config{
		Backend:  storage.Backend(cfg.Backend),
		Driver:   cfg.Driver,
		DBPath:   cfg.DBPath,
		FilePath: cfg.FilePath,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	return storage.NewStore(kv, logger), kv, nil
}

func runTUI(ctx context.Context, cfg config.RuntimeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, kv, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer kv.Close()

	engine := scheduler.NewEngine(cfg.DeadlineBuffer)
	engine.Start()
	defer engine.Stop()

	m := update.NewModel(ctx, update.Deps{
		Store:     store,
		Scheduler: engine,
		Logger:    logger,
		Config:    cfg,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	logger.Info("tasklist starting", "backend", cfg.Backend, "animations", cfg.Animations)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return err
	}
	return nil
}
