package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/safezone_tracking/internal/models"
)

// TrackingRepository хранит одну строку состояния отслеживания на группу
type TrackingRepository struct {
	db *pgxpool.Pool
}

func NewTrackingRepository(db *pgxpool.Pool) *TrackingRepository {
	return &TrackingRepository{db: db}
}

// SetEnabled включает/выключает отслеживание, создавая строку при её отсутствии
func (r *TrackingRepository) SetEnabled(ctx context.Context, groupID uuid.UUID, enabled bool) error {
	query := `
		INSERT INTO tracking_sessions (group_id, enabled)
		VALUES ($1, $2)
		ON CONFLICT (group_id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			updated_at = NOW();
	`
	if _, err := r.db.Exec(ctx, query, groupID, enabled); err != nil {
		return fmt.Errorf("failed to set tracking state: %w", err)
	}
	return nil
}

// AppendLocation одной операцией upsert обновляет текущую точку и дописывает её в историю,
// оставляя только последние historyLimit точек. Конкурентные записи - last-write-wins.
func (r *TrackingRepository) AppendLocation(ctx context.Context, groupID uuid.UUID, sample models.LocationSample, historyLimit int) error {
	payload, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal location sample: %w", err)
	}
	query := `
		INSERT INTO tracking_sessions (group_id, enabled, current_location, location_history)
		VALUES ($1, TRUE, $2, jsonb_build_array($2::jsonb))
		ON CONFLICT (group_id) DO UPDATE SET
			current_location = EXCLUDED.current_location,
			location_history = (
				SELECT COALESCE(jsonb_agg(h.elem ORDER BY h.idx), '[]'::jsonb)
				FROM (
					SELECT t.elem, t.idx
					FROM jsonb_array_elements(tracking_sessions.location_history || EXCLUDED.location_history)
						WITH ORDINALITY AS t(elem, idx)
					ORDER BY t.idx DESC
					LIMIT $3
				) h
			),
			updated_at = NOW();
	`
	if _, err := r.db.Exec(ctx, query, groupID, payload, historyLimit); err != nil {
		return fmt.Errorf("failed to save location: %w", err)
	}
	return nil
}

// GetSession возвращает состояние отслеживания группы
func (r *TrackingRepository) GetSession(ctx context.Context, groupID uuid.UUID) (*models.TrackingSession, error) {
	query := `
		SELECT group_id, enabled, current_location, location_history, updated_at
		FROM tracking_sessions
		WHERE group_id = $1;
	`
	session := &models.TrackingSession{}
	var current, history []byte
	err := r.db.QueryRow(ctx, query, groupID).Scan(
		&session.GroupID,
		&session.Enabled,
		&current,
		&history,
		&session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tracking session for group %s: %w", groupID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tracking session: %w", err)
	}

	if len(current) > 0 {
		session.CurrentLocation = &models.LocationSample{}
		if err := json.Unmarshal(current, session.CurrentLocation); err != nil {
			return nil, fmt.Errorf("failed to unmarshal current location: %w", err)
		}
	}
	if err := json.Unmarshal(history, &session.LocationHistory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal location history: %w", err)
	}
	return session, nil
}
