package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType - вид активности, выводится из скорости, датчиком не сообщается
type ActivityType string

const (
	ActivityStill   ActivityType = "still"
	ActivityWalking ActivityType = "walking"
	ActivityRunning ActivityType = "running"
	ActivityDriving ActivityType = "driving"
)

// LocationSample - одно показание датчика местоположения
type LocationSample struct {
	Latitude     float64      `json:"latitude"`
	Longitude    float64      `json:"longitude"`
	Accuracy     *float64     `json:"accuracy,omitempty"` // метры
	Speed        *float64     `json:"speed,omitempty"`    // м/с, nil - скорость неизвестна
	Timestamp    time.Time    `json:"timestamp"`
	BatteryLevel *float64     `json:"battery_level,omitempty"` // 0-100
	ActivityType ActivityType `json:"activity_type,omitempty"`
}

// TrackingSession - состояние отслеживания группы ухода
type TrackingSession struct {
	GroupID         uuid.UUID        `json:"group_id"`
	Enabled         bool             `json:"enabled"`
	CurrentLocation *LocationSample  `json:"current_location,omitempty"`
	LocationHistory []LocationSample `json:"location_history"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
