package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/chasedemo/internal/model"
)

// TransitionRepository stores NPC state changes.
type TransitionRepository struct {
	pool *pgxpool.Pool
}

// NewTransitionRepository creates a new transition repository
func NewTransitionRepository(pool *pgxpool.Pool) *TransitionRepository {
	return &TransitionRepository{pool: pool}
}

// SaveTransition inserts one state change.
func (r *TransitionRepository) SaveTransition(ctx context.Context, t model.Transition) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO npc_transitions (npc_id, npc_name, from_state, to_state, distance, tick, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		int64(t.NpcID), t.NpcName, t.From.String(), t.To.String(), t.Distance, int64(t.Tick), t.At,
	)
	if err != nil {
		return fmt.Errorf("saving transition for npc %d: %w", t.NpcID, err)
	}
	return nil
}

// Recent returns up to limit latest transitions of npcID, newest first.
func (r *TransitionRepository) Recent(ctx context.Context, npcID uint32, limit int) ([]model.Transition, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT npc_id, npc_name, from_state, to_state, distance, tick, occurred_at
		 FROM npc_transitions
		 WHERE npc_id = $1
		 ORDER BY id DESC
		 LIMIT $2`,
		int64(npcID), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying transitions for npc %d: %w", npcID, err)
	}
	defer rows.Close()

	transitions := make([]model.Transition, 0, limit)
	for rows.Next() {
		var (
			t        model.Transition
			id, tick int64
			from, to string
		)
		if err := rows.Scan(&id, &t.NpcName, &from, &to, &t.Distance, &tick, &t.At); err != nil {
			return nil, fmt.Errorf("scanning transition row: %w", err)
		}
		if t.From, err = model.ParseState(from); err != nil {
			return nil, fmt.Errorf("decoding from_state: %w", err)
		}
		if t.To, err = model.ParseState(to); err != nil {
			return nil, fmt.Errorf("decoding to_state: %w", err)
		}
		t.NpcID = uint32(id)
		t.Tick = uint64(tick)
		transitions = append(transitions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transition rows: %w", err)
	}

	return transitions, nil
}
