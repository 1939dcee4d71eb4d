package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jgivc/flowexport/internal/adapter/flowapi"
	"github.com/jgivc/flowexport/internal/adapter/sink"
	"github.com/jgivc/flowexport/internal/config"
	"github.com/jgivc/flowexport/internal/entity"
	srvexport "github.com/jgivc/flowexport/internal/service/export"
)

type App struct {
	cfg *config.Config
	log *slog.Logger
}

func New(cfg *config.Config) *App {
	lo := &slog.HandlerOptions{}
	switch {
	case cfg.Verbosity <= 0:
		lo.Level = slog.LevelWarn
	case cfg.Verbosity == 1:
		lo.Level = slog.LevelInfo
	default:
		lo.Level = slog.LevelDebug
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, lo)).
		With(slog.String("run_id", uuid.NewString()))

	return &App{
		cfg: cfg,
		log: log,
	}
}

// Run performs one export: login, list the calendar range, stream every
// exercise session into snk. The run is strictly sequential and single
// attempt; snk is closed before Run returns, on failure too, so a partial
// archive still ends up with a valid central directory.
func (a *App) Run(ctx context.Context, snk sink.Sink) (err error) {
	defer func() {
		if cerr := snk.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	format, err := entity.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}

	start, err := config.ParseDay(a.cfg.StartDate)
	if err != nil {
		return fmt.Errorf("start date: %w", err)
	}

	end, err := config.ParseDay(a.cfg.EndDate)
	if err != nil {
		return fmt.Errorf("end date: %w", err)
	}

	client, err := flowapi.New(a.cfg.BaseURL, a.cfg.UserAgent, a.cfg.Timeout, a.log)
	if err != nil {
		return fmt.Errorf("cannot create api client: %w", err)
	}

	if err := client.Login(ctx, a.cfg.Email, a.cfg.Password); err != nil {
		return fmt.Errorf("cannot login: %w", err)
	}

	a.log.Info("Export started",
		slog.String("start", a.cfg.StartDate),
		slog.String("end", a.cfg.EndDate),
		slog.String("format", format.String()))

	sessions, err := client.Sessions(ctx, start, end)
	if err != nil {
		return fmt.Errorf("cannot list sessions: %w", err)
	}

	srv := srvexport.New(client, snk, a.cfg.KeepGoing, a.cfg.Verbosity > 0, a.log)

	exported, err := srv.ExportAll(ctx, sessions, format)
	if err != nil {
		return err
	}

	a.log.Info("Export finished", slog.Int("exported", exported))

	return nil
}
