package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/suggest"
	"github.com/blackwell-systems/gymdesk/internal/watcher"
)

var (
	watchInterval string
	watchQuiet    bool
	watchNotify   bool
)

// minWatchInterval bounds how often the data directory is re-read.
const minWatchInterval = 30 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor the data directory and alert on new insights",
	Long: `Re-read the data directory at a fixed interval and report insights
that open or clear, plus new members, classes and guest visits.

Examples:
  gymdesk watch                    # check every 10 minutes (ctrl-c to stop)
  gymdesk watch --interval 1m      # check every minute
  gymdesk watch --notify           # also send desktop notifications`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchInterval, "interval", "10m", "Check interval as duration string (e.g. 1m, 1h)")
	watchCmd.Flags().BoolVar(&watchQuiet, "quiet", false, "Suppress terminal output, only send notifications")
	watchCmd.Flags().BoolVar(&watchNotify, "notify", false, "Send desktop notifications for alerts")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval, err := time.ParseDuration(watchInterval)
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", watchInterval, err)
	}
	if interval < minWatchInterval {
		return fmt.Errorf("interval must be at least %s, got %s", minWatchInterval, interval)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := watcher.NewNotifier("gymdesk")
	notifier.Fallback = cmd.ErrOrStderr()
	alertFn := func(a watcher.Alert) {
		s.log.Info("alert", zap.String("level", a.Level), zap.String("title", a.Title))
		if watchNotify {
			if err := notifier.Notify(ctx, a); err != nil {
				s.log.Debug("notify failed", zap.Error(err))
			}
		}
		if !watchQuiet {
			printAlert(s.out, a)
		}
	}

	w := watcher.New(s.watchSource(), interval, alertFn)
	initial, err := w.Prime(ctx)
	if err != nil {
		return err
	}

	if !watchQuiet {
		fmt.Fprintf(s.out, "gymdesk watching %s (checking every %s)\n", s.cfg.DataDir, interval)
		fmt.Fprintf(s.out, "[%s] %s %d members, %d classes, %d open insights\n",
			initial.Timestamp.Format("15:04:05"),
			checkMark(),
			initial.Members,
			initial.Classes,
			len(initial.Insights))
	}

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		if !watchQuiet {
			fmt.Fprintln(s.out, "\nStopped.")
		}
		return nil
	}
	return err
}

// watchSource returns a watcher.Source that reloads the dataset and
// re-runs the insight engine. The reference day follows the clock unless
// --today pins it.
func (s *session) watchSource() watcher.Source {
	return func(ctx context.Context) (*watcher.WatchState, error) {
		if flagToday == "" {
			s.now = model.DateOf(clock())
		}
		ds, err := s.loadData(ctx)
		if err != nil {
			return nil, err
		}

		db, err := s.openStore()
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()

		ranking, err := s.rankTrainers(db, ds.Trainers, s.now.Period())
		if err != nil {
			return nil, err
		}

		insights := suggest.NewEngine().Run(buildInsightContext(s, ds, ranking))
		return watcher.NewState(ds, insights, clock()), nil
	}
}

// printAlert formats and prints an alert.
func printAlert(w io.Writer, a watcher.Alert) {
	fmt.Fprintf(w, "[%s] %s %s\n", a.Time.Format("15:04:05"), alertIcon(a.Level), a.Title)
	if a.Message != "" {
		fmt.Fprintf(w, "         %s\n", a.Message)
	}
}

// alertIcon returns the terminal indicator for an alert level.
func alertIcon(level string) string {
	switch level {
	case watcher.LevelCritical:
		return "\xf0\x9f\x94\xb4" // red circle
	case watcher.LevelWarning:
		return "\xe2\x9a\xa0\xef\xb8\x8f" // warning sign
	case watcher.LevelInfo:
		return "\xe2\x9c\x93" // check mark
	default:
		return " "
	}
}

// checkMark returns a terminal check mark indicator.
func checkMark() string {
	return "\xe2\x9c\x93"
}
