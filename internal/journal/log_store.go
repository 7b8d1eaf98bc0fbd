package journal

import (
	"context"
	"log/slog"

	"github.com/udisondev/chasedemo/internal/model"
)

// LogStore writes transitions to the structured log. Used when no database is configured.
type LogStore struct{}

// SaveTransition logs t at info level.
func (LogStore) SaveTransition(_ context.Context, t model.Transition) error {
	slog.Info("npc state changed",
		"npc", t.NpcName,
		"objectID", t.NpcID,
		"from", t.From,
		"to", t.To,
		"distance", t.Distance,
		"tick", t.Tick)
	return nil
}
