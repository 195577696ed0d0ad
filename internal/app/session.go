package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/gymdesk/internal/config"
	"github.com/blackwell-systems/gymdesk/internal/dataset"
	"github.com/blackwell-systems/gymdesk/internal/facet"
	"github.com/blackwell-systems/gymdesk/internal/logging"
	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/output"
	"github.com/blackwell-systems/gymdesk/internal/scoring"
	"github.com/blackwell-systems/gymdesk/internal/store"
)

// session is the per-invocation state every command starts from.
type session struct {
	cfg   *config.Config
	log   *zap.Logger
	role  model.Role
	parts facet.DayParts
	now   model.Date
	out   io.Writer
}

// clock returns the current time; tests replace it.
var clock = time.Now

// newSession loads configuration, applies global flag overrides and
// builds the logger.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagData != "" {
		cfg.DataDir = flagData
	}
	if flagRole != "" {
		cfg.Role = flagRole
	}

	role, err := model.ParseRole(cfg.Role)
	if err != nil {
		return nil, fmt.Errorf("resolving role: %w", err)
	}
	parts, err := cfg.DayParts()
	if err != nil {
		return nil, err
	}

	now := model.DateOf(clock())
	if flagToday != "" {
		now, err = model.ParseDate(flagToday)
		if err != nil {
			return nil, fmt.Errorf("parsing --today: %w", err)
		}
	}

	level := cfg.Log.Level
	if flagVerbose {
		level = "debug"
	}
	log, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	if flagNoColor || !cfg.Output.Color || !output.AutoColor(os.Stdout) {
		output.SetNoColor(true)
	}

	log.Debug("session ready",
		zap.String("command", cmd.Name()),
		zap.String("data_dir", cfg.DataDir),
		zap.String("role", string(role)),
		zap.Stringer("today", now),
	)

	return &session{
		cfg:   cfg,
		log:   log,
		role:  role,
		parts: parts,
		now:   now,
		out:   cmd.OutOrStdout(),
	}, nil
}

// close flushes the logger.
func (s *session) close() {
	_ = s.log.Sync()
}

// loadData reads the dataset from the configured data directory.
func (s *session) loadData(ctx context.Context) (*dataset.Dataset, error) {
	ds, err := dataset.Load(ctx, s.cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("loading data from %s: %w", s.cfg.DataDir, err)
	}
	s.log.Debug("dataset loaded",
		zap.Int("members", len(ds.Members)),
		zap.Int("classes", len(ds.Classes)),
		zap.Int("guests", len(ds.Guests)),
		zap.Int("trainers", len(ds.Trainers)),
		zap.Int("expenses", len(ds.Expenses)),
		zap.Any("sources", ds.Sources),
	)
	return ds, nil
}

// openStore opens the snapshot database.
func (s *session) openStore() (*store.DB, error) {
	db, err := store.Open(s.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// rankTrainers ranks trainers for period, filling absent previous ranks
// from the latest saved ranking before period.
func (s *session) rankTrainers(db *store.DB, trainers []model.Trainer, period string) (scoring.Ranking, error) {
	previous, err := db.PreviousRanks(period)
	if err != nil {
		return scoring.Ranking{}, fmt.Errorf("loading previous ranks: %w", err)
	}
	if len(previous) > 0 {
		s.log.Debug("applying saved ranks", zap.String("before", period), zap.Int("trainers", len(previous)))
	}
	return scoring.Rank(scoring.ApplyPreviousRanks(trainers, previous)), nil
}

// requireFinancials returns an error when the role may not see financial reports.
func (s *session) requireFinancials() error {
	if !s.role.CanViewFinancials() {
		return fmt.Errorf("role %q cannot view financial reports", s.role)
	}
	return nil
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
