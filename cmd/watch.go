package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/furlong/internal/catalog"
	"github.com/papapumpkin/furlong/internal/telemetry"
	"github.com/papapumpkin/furlong/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-check the catalog file whenever it changes",
	Long: "Watch checks the configured catalog, then rebuilds and re-checks it each time " +
		"the file is saved. A catalog that fails to build is reported and the previous " +
		"one stays active. Stop with Ctrl-C.",
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	if s.cfg.Catalog == "" {
		return errors.New("watch needs a catalog file (--catalog or FURLONG_CATALOG)")
	}
	if !fileExists(s.cfg.Catalog) {
		return fmt.Errorf("catalog file %s does not exist", s.cfg.Catalog)
	}
	if err := s.open(); err != nil {
		return err
	}
	unresolved := s.catalog.Verify()
	s.printer.CheckResult(s.catalogName(), s.catalog, unresolved)

	var events *telemetry.Emitter
	if s.cfg.Watch.Events != "" {
		if events, err = telemetry.NewEmitter(s.cfg.Watch.Events); err != nil {
			return err
		}
		defer events.Close()
	}
	s.emit(events, telemetry.Event{
		Kind:       telemetry.KindWatchStart,
		Catalog:    s.cfg.Catalog,
		Units:      len(s.catalog.Units()),
		Unresolved: len(unresolved),
	})

	r, err := watch.New(s.cfg.Catalog, s.catalog,
		watch.WithDebounce(s.cfg.Watch.Debounce),
		watch.WithLogger(s.logger),
		watch.WithCatalogOptions(s.catalogOptions()...),
	)
	if err != nil {
		return err
	}
	if err := r.Start(); err != nil {
		return err
	}
	defer r.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	s.printer.Info(fmt.Sprintf("watching %s", r.Path))

	for {
		select {
		case <-ctx.Done():
			s.emit(events, telemetry.Event{Kind: telemetry.KindWatchStop, Catalog: s.cfg.Catalog})
			return nil
		case ev := <-r.Events:
			reportReload(s, ev)
			s.emit(events, reloadEvent(s.cfg.Catalog, ev))
		}
	}
}

func reportReload(s *session, ev watch.Event) {
	var ve *catalog.ValidationError
	switch {
	case errors.As(ev.Err, &ve):
		s.printer.ValidationErrors(s.catalogName(), ev.Err)
		s.printer.ReloadFailed(s.catalogName(), errors.New("invalid definition"))
	case ev.Err != nil:
		s.printer.ReloadFailed(s.catalogName(), ev.Err)
	default:
		s.printer.Reloaded(s.catalogName(), len(ev.Catalog.Units()), len(ev.Unresolved))
		if len(ev.Unresolved) > 0 {
			s.printer.CheckResult(s.catalogName(), ev.Catalog, ev.Unresolved)
		}
	}
}

func reloadEvent(path string, ev watch.Event) telemetry.Event {
	if ev.Err != nil {
		return telemetry.Event{Kind: telemetry.KindReloadFailed, Catalog: path, Error: ev.Err.Error()}
	}
	return telemetry.Event{
		Kind:       telemetry.KindReload,
		Catalog:    path,
		Units:      len(ev.Catalog.Units()),
		Unresolved: len(ev.Unresolved),
	}
}

// emit records evt; a failing event log is logged but never stops the watch.
func (s *session) emit(em *telemetry.Emitter, evt telemetry.Event) {
	if err := em.Emit(evt); err != nil {
		s.logger.Warn("recording watch event", "kind", evt.Kind, "error", err)
	}
}

func init() {
	watchCmd.Flags().String("events", "", "append a JSONL record of every reload to this file")
	rootCmd.AddCommand(watchCmd)
}
