package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jgivc/flowexport/internal/adapter/sink"
	"github.com/jgivc/flowexport/internal/common"
	"github.com/jgivc/flowexport/internal/entity"
	"github.com/schollz/progressbar/v3"
)

const (
	serviceName = "export"

	fileNameLayout = "2006-01-02-15_04_05"
)

// Downloader hands out the raw export payload stream for one session.
type Downloader interface {
	Export(ctx context.Context, format entity.ExportFormat, listItemID uint64) (io.ReadCloser, int64, error)
}

type Service struct {
	dl   Downloader
	sink sink.Sink

	keepGoing    bool
	showProgress bool

	log *slog.Logger
}

func New(dl Downloader, snk sink.Sink, keepGoing, showProgress bool, log *slog.Logger) *Service {
	return &Service{
		dl:           dl,
		sink:         snk,
		keepGoing:    keepGoing,
		showProgress: showProgress,
		log:          log.With(slog.String("service", serviceName)),
	}
}

// SessionFileName derives the destination name for a session payload:
// the session start time as YYYY-MM-DD-HH_MM_SS in the service-local
// offset it was reported with, plus the format token as extension.
func SessionFileName(s *entity.Session, format entity.ExportFormat) (string, error) {
	t, err := time.Parse(time.RFC3339, s.Datetime)
	if err != nil {
		return "", fmt.Errorf("session %d: %w: %q", s.ListItemID, common.ErrBadTimestamp, s.Datetime)
	}

	return t.Format(fileNameLayout) + "." + format.String(), nil
}

// ExportSession streams one session payload into the sink under its
// derived name. The payload is copied through without full buffering.
func (s *Service) ExportSession(ctx context.Context, sess *entity.Session, format entity.ExportFormat) error {
	name, err := SessionFileName(sess, format)
	if err != nil {
		return err
	}

	body, size, err := s.dl.Export(ctx, format, sess.ListItemID)
	if err != nil {
		return err
	}
	defer body.Close()

	w, err := s.sink.Create(name)
	if err != nil {
		return err
	}

	var dst io.Writer = w
	if s.showProgress {
		bar := progressbar.NewOptions64(size,
			progressbar.OptionSetDescription(name),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)
		dst = io.MultiWriter(w, bar)
	}

	if _, err := io.Copy(dst, body); err != nil {
		w.Close()

		return fmt.Errorf("cannot write %s: %w", name, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("cannot close %s: %w", name, err)
	}

	s.log.Debug("Exported session", slog.String("name", name), slog.Uint64("id", sess.ListItemID))

	return nil
}

// ExportAll exports every exercise session from the list in order,
// skipping non-exercise calendar entries. With keepGoing set a failed
// session is logged and the run continues; otherwise the first failure
// aborts. Failures are never dropped silently either way.
func (s *Service) ExportAll(ctx context.Context, sessions []entity.Session, format entity.ExportFormat) (int, error) {
	var exported, failed int

	for i := range sessions {
		sess := &sessions[i]
		if !sess.IsExercise() {
			s.log.Debug("Skip calendar entry", slog.String("type", sess.Type))

			continue
		}

		s.log.Info("Exporting session",
			slog.String("start", sess.Datetime),
			slog.String("duration", sess.DurationHMS()),
			slog.Uint64("calories", uint64(sess.Calories)),
			slog.String("distance_km", fmt.Sprintf("%.2f", sess.DistanceKm())))

		if err := s.ExportSession(ctx, sess, format); err != nil {
			if !s.keepGoing {
				return exported, fmt.Errorf("cannot export session %d: %w", sess.ListItemID, err)
			}

			failed++
			s.log.Error("Cannot export session",
				slog.Uint64("id", sess.ListItemID), slog.Any("error", err))

			continue
		}

		exported++
	}

	if failed > 0 {
		return exported, fmt.Errorf("%d of %d sessions failed to export", failed, exported+failed)
	}

	return exported, nil
}
