package v1

import (
	"time"

	"github.com/google/uuid"
)

// LatLngDTO точка WGS84
// @Description Точка WGS84
type LatLngDTO struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

// DangerZoneDTO опасная подзона геозоны, координаты в порядке [lng, lat]
// @Description Опасная подзона геозоны
type DangerZoneDTO struct {
	TypeID      string       `json:"type_id,omitempty"`
	Type        string       `json:"type,omitempty" validate:"omitempty,max=64"`
	Name        string       `json:"name,omitempty" validate:"omitempty,max=255"`
	Coordinates [][2]float64 `json:"coordinates" validate:"min=3"`
}

// NotificationSettingsDTO какие переходы порождают оповещения
// @Description Настройки уведомлений геозоны
type NotificationSettingsDTO struct {
	ExitAlert  bool `json:"exit_alert"`
	EnterAlert bool `json:"enter_alert"`
	SMSAlert   bool `json:"sms_alert"`
}

// GeofenceRequest DTO для создания и обновления геозоны
// @Description DTO для создания и обновления геозоны
type GeofenceRequest struct {
	Name                 string                   `json:"name" validate:"required,min=2,max=255"`
	BoundaryType         string                   `json:"boundary_type" validate:"required,oneof=circle polygon"`
	Center               *LatLngDTO               `json:"center,omitempty"`
	RadiusMeters         float64                  `json:"radius_meters,omitempty" validate:"gte=0"`
	PolygonCoordinates   [][2]float64             `json:"polygon_coordinates,omitempty"`
	DangerZones          []DangerZoneDTO          `json:"danger_zones,omitempty" validate:"omitempty,dive"`
	NotificationSettings *NotificationSettingsDTO `json:"notification_settings,omitempty"`
}

// GeofenceResponse DTO для ответа с информацией о геозоне
// @Description DTO для ответа с информацией о геозоне
type GeofenceResponse struct {
	ID                   uuid.UUID               `json:"id"`
	GroupID              uuid.UUID               `json:"group_id"`
	Name                 string                  `json:"name"`
	BoundaryType         string                  `json:"boundary_type"`
	Center               *LatLngDTO              `json:"center,omitempty"`
	RadiusMeters         float64                 `json:"radius_meters,omitempty"`
	PolygonCoordinates   [][2]float64            `json:"polygon_coordinates,omitempty"`
	DangerZones          []DangerZoneDTO         `json:"danger_zones,omitempty"`
	NotificationSettings NotificationSettingsDTO `json:"notification_settings"`
	Active               bool                    `json:"active"`
	CreatedAt            time.Time               `json:"created_at"`
	UpdatedAt            time.Time               `json:"updated_at"`
}

// StartTrackingRequest DTO для запуска отслеживания, тело необязательно
// @Description DTO для запуска отслеживания
type StartTrackingRequest struct {
	UpdateIntervalMs int64 `json:"update_interval_ms,omitempty" validate:"omitempty,min=1000"`
}

// StartTrackingResponse результат запуска: started=false с причиной не является ошибкой
// @Description Результат запуска отслеживания
type StartTrackingResponse struct {
	Started    bool   `json:"started"`
	Reason     string `json:"reason,omitempty"`
	LowBattery bool   `json:"low_battery"`
}

// StopTrackingResponse DTO ответа на остановку отслеживания
// @Description DTO ответа на остановку отслеживания
type StopTrackingResponse struct {
	Stopped bool `json:"stopped"`
}

// LocationDTO одно показание местоположения
// @Description Показание местоположения
type LocationDTO struct {
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Accuracy     *float64  `json:"accuracy,omitempty"`
	Speed        *float64  `json:"speed,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	BatteryLevel *float64  `json:"battery_level,omitempty"`
	ActivityType string    `json:"activity_type,omitempty"`
}

// TrackingStatusResponse состояние отслеживания группы
// @Description Состояние отслеживания группы
type TrackingStatusResponse struct {
	Active          bool          `json:"active"`
	Enabled         bool          `json:"enabled"`
	CurrentLocation *LocationDTO  `json:"current_location,omitempty"`
	LocationHistory []LocationDTO `json:"location_history"`
}

// LocationReportRequest DTO для фикса, присланного устройством
// @Description DTO для фикса, присланного устройством
type LocationReportRequest struct {
	Latitude  *float64   `json:"latitude" validate:"required,latitude"`
	Longitude *float64   `json:"longitude" validate:"required,longitude"`
	Accuracy  *float64   `json:"accuracy,omitempty" validate:"omitempty,gte=0"`
	Speed     *float64   `json:"speed,omitempty" validate:"omitempty,gte=0"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// BatteryReportRequest DTO для состояния батареи устройства
// @Description DTO для состояния батареи устройства
type BatteryReportRequest struct {
	Level    *float64 `json:"level" validate:"required,gte=0,lte=100"`
	Charging bool     `json:"charging"`
}

// PermissionRequest DTO для разрешения на геолокацию
// @Description DTO для разрешения на геолокацию
type PermissionRequest struct {
	State string `json:"state" validate:"required,oneof=granted denied prompt"`
}
