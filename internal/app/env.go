package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/blackwell-systems/flowtrack/internal/analytics"
	"github.com/blackwell-systems/flowtrack/internal/config"
	"github.com/blackwell-systems/flowtrack/internal/lifecycle"
	"github.com/blackwell-systems/flowtrack/internal/output"
	"github.com/blackwell-systems/flowtrack/internal/store"
)

// env bundles the wired-up application pieces every command needs.
type env struct {
	cfg    *config.Config
	db     *store.DB
	ctl    *lifecycle.Controller
	stats  *analytics.Engine
	userID int64
}

// openEnv loads config, applies output settings, opens the database, and
// wires the controller and analytics engine.
func openEnv() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor {
		output.SetNoColor(true)
	} else {
		output.DetectColor()
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	defaults := store.Preferences{
		WorkDuration:           cfg.Intervals.WorkDuration,
		ShortBreakDuration:     cfg.Intervals.ShortBreakDuration,
		LongBreakDuration:      cfg.Intervals.LongBreakDuration,
		SessionsUntilLongBreak: cfg.Intervals.SessionsUntilLongBreak,
	}

	userID := cfg.UserID
	if flagUser != 0 {
		userID = flagUser
	}

	return &env{
		cfg:    cfg,
		db:     db,
		ctl:    lifecycle.New(db, db, db, defaults),
		stats:  analytics.NewEngine(db, db, defaults),
		userID: userID,
	}, nil
}

func (e *env) Close() {
	_ = e.db.Close()
}

// activeUUID resolves the session a mutation targets: the explicit argument
// if given, otherwise the user's active session.
func (e *env) activeUUID(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	active, err := e.ctl.Active(e.userID)
	if err != nil {
		return "", err
	}
	if active == nil {
		return "", fmt.Errorf("no active session")
	}
	return active.UUID, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
