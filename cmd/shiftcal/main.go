package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"shiftcal/internal/config"
	"shiftcal/internal/export"
	"shiftcal/internal/metrics"
	"shiftcal/internal/shiftapi"
	"shiftcal/internal/tui"
)

var cfgPath string

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "shiftcal",
		Short:         "Terminal shift-scheduling calendar over a remote shift store",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCalendar,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export a month of shifts to an Excel workbook",
		RunE:  runExport,
	}
	exportCmd.Flags().String("month", time.Now().Format("2006-01"), "month to export (YYYY-MM)")
	exportCmd.Flags().String("out", "", "output file (defaults to shifts-<month>.xlsx in export.path)")
	root.AddCommand(exportCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = os.Getenv("SHIFTCAL_CONFIG_PATH")
	}
	if path == "" {
		if _, err := os.Stat("configs/config.yaml"); err != nil {
			// No config anywhere: run on defaults.
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func runCalendar(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The TUI owns the terminal, so the log goes to a file.
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg.Log.Level)

	client := shiftapi.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, logger)
	}

	logger.Info().Str("api", cfg.API.BaseURL).Msg("shiftcal started")
	p := tea.NewProgram(tui.New(client, logger, cfg.Export.Path), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}, cfg.Log.Level)

	month, _ := cmd.Flags().GetString("month")
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = filepath.Join(cfg.Export.Path, fmt.Sprintf("shifts-%s.xlsx", month))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := shiftapi.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, logger)
	shifts, err := client.ListShifts(ctx)
	if err != nil {
		return err
	}
	if err := export.WriteMonth(shifts, month, out); err != nil {
		return err
	}
	logger.Info().Str("path", out).Int("shifts", len(shifts)).Msg("export written")
	return nil
}

func newLogger(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func startMetricsServer(ctx context.Context, port int, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
