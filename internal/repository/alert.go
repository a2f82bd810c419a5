package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/safezone_tracking/internal/models"
)

type AlertRepository struct {
	db *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{db: db}
}

// CreateAlert сохраняет оповещение о пересечении границы
func (r *AlertRepository) CreateAlert(ctx context.Context, alert *models.GeofenceAlert) error {
	location, err := json.Marshal(alert.Location)
	if err != nil {
		return fmt.Errorf("failed to marshal alert location: %w", err)
	}
	query := `
		INSERT INTO geofence_alerts (group_id, geofence_id, location, alert_type, danger_zone_type, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;
	`
	err = r.db.QueryRow(ctx, query,
		alert.GroupID,
		alert.GeofenceID,
		location,
		alert.AlertType,
		alert.DangerZoneType,
		alert.Status,
	).Scan(&alert.ID, &alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create geofence alert: %w", err)
	}
	return nil
}

// CreateCheckIn сохраняет экстренную отметку
func (r *AlertRepository) CreateCheckIn(ctx context.Context, checkIn *models.EmergencyCheckIn) error {
	data, err := json.Marshal(checkIn.ResponseData)
	if err != nil {
		return fmt.Errorf("failed to marshal check-in response data: %w", err)
	}
	query := `
		INSERT INTO emergency_check_ins (group_id, check_in_type, status, response_data)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at;
	`
	err = r.db.QueryRow(ctx, query,
		checkIn.GroupID,
		checkIn.CheckInType,
		checkIn.Status,
		data,
	).Scan(&checkIn.ID, &checkIn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create emergency check-in: %w", err)
	}
	return nil
}
