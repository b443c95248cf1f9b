package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/furlong/internal/catalog"
	"github.com/papapumpkin/furlong/internal/config"
	"github.com/papapumpkin/furlong/internal/quantity"
	"github.com/papapumpkin/furlong/internal/ui"
)

// session bundles what every subcommand needs: validated configuration,
// a logger, a printer and the active catalog.
type session struct {
	cfg     config.Config
	logger  *slog.Logger
	printer *ui.Printer
	catalog *catalog.Catalog
	format  func(quantity.Quantity) string
}

// newSession loads configuration without opening the catalog.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		logger:  newLogger(cmd.ErrOrStderr(), cfg.Verbose),
		printer: printerFor(cmd),
	}
	s.format = func(q quantity.Quantity) string { return q.Format(cfg.Precision) }
	if cfg.Locale != "" {
		f, err := quantity.NewFormatter(cfg.Precision, cfg.Locale)
		if err != nil {
			return nil, err
		}
		s.format = f.Format
	}
	return s, nil
}

// openSession loads configuration and the configured catalog.
func openSession(cmd *cobra.Command) (*session, error) {
	s, err := newSession(cmd)
	if err != nil {
		return nil, err
	}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) open() error {
	if s.cfg.Catalog != "" && !fileExists(s.cfg.Catalog) {
		s.printer.Warn(fmt.Sprintf("catalog file %s not found; using the built-in catalog", s.cfg.Catalog))
		s.cfg.Catalog = ""
	}
	c, err := catalog.Open(s.cfg.Catalog, s.catalogOptions()...)
	if err != nil {
		return err
	}
	s.catalog = c
	s.logger.Debug("catalog opened", "path", s.catalogName(), "units", len(c.Units()))
	return nil
}

func (s *session) catalogOptions() []catalog.Option {
	return []catalog.Option{
		catalog.WithLogger(s.logger),
		catalog.WithStrictExact(s.cfg.StrictExact),
		catalog.WithEpsilon(s.cfg.Epsilon),
	}
}

func (s *session) catalogName() string {
	if s.cfg.Catalog == "" {
		return "(built-in)"
	}
	return s.cfg.Catalog
}

// newLogger returns a text logger at Warn, or Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// printerFor returns a terminal printer for the process streams and a plain
// one when the command's writers were redirected.
func printerFor(cmd *cobra.Command) *ui.Printer {
	if cmd.OutOrStdout() == os.Stdout && cmd.ErrOrStderr() == os.Stderr {
		return ui.New()
	}
	return ui.NewWriter(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: not a number", s)
	}
	return v, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
