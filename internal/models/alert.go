package models

import (
	"time"

	"github.com/google/uuid"
)

type AlertType string

const (
	AlertTypeExit   AlertType = "exit"
	AlertTypeEnter  AlertType = "enter"
	AlertTypeDanger AlertType = "danger"
)

const (
	AlertStatusUnresolved = "unresolved"
	AlertStatusResolved   = "resolved"
)

// GeofenceAlert - запись о пересечении границы или входе в опасную зону
type GeofenceAlert struct {
	ID             uuid.UUID      `json:"id"`
	GroupID        uuid.UUID      `json:"group_id"`
	GeofenceID     uuid.UUID      `json:"geofence_id"`
	Location       LocationSample `json:"location"`
	AlertType      AlertType      `json:"alert_type"`
	DangerZoneType *string        `json:"danger_zone_type,omitempty"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
}

const (
	CheckInTypeEmergency = "emergency"
	CheckInStatusUrgent  = "urgent"
)

// CheckInResponseData - данные, с которыми создается экстренная отметка
type CheckInResponseData struct {
	Type           AlertType      `json:"type"`
	Location       LocationSample `json:"location"`
	GeofenceID     uuid.UUID      `json:"geofence_id"`
	DangerZoneType *string        `json:"danger_zone_type,omitempty"`
	TriggeredAt    time.Time      `json:"triggered_at"`
}

// EmergencyCheckIn - эскалация при выходе из зоны или входе в опасную зону
type EmergencyCheckIn struct {
	ID           uuid.UUID           `json:"id"`
	GroupID      uuid.UUID           `json:"group_id"`
	CheckInType  string              `json:"check_in_type"`
	Status       string              `json:"status"`
	ResponseData CheckInResponseData `json:"response_data"`
	CreatedAt    time.Time           `json:"created_at"`
}

// ViolationCandidate - результат проверки одной геозоны, без учета настроек уведомлений
type ViolationCandidate struct {
	GeofenceID     uuid.UUID
	IsOutside      bool
	InDangerZone   bool
	DangerZoneType string
}
