package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BoundaryType string

const (
	BoundaryCircle  BoundaryType = "circle"
	BoundaryPolygon BoundaryType = "polygon"
)

var (
	ErrInvalidGeometry = errors.New("invalid geofence geometry")
	ErrNotFound        = errors.New("not found")
)

// LatLng - точка WGS84
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DangerZone - опасная подзона внутри геозоны. Координаты в порядке [lng, lat].
type DangerZone struct {
	TypeID      string       `json:"type_id,omitempty"`
	Type        string       `json:"type,omitempty"`
	Name        string       `json:"name,omitempty"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// Label возвращает метку типа опасной зоны для оповещений
func (d DangerZone) Label() string {
	if d.Type != "" {
		return d.Type
	}
	if d.TypeID != "" {
		return d.TypeID
	}
	return d.Name
}

// NotificationSettings - какие переходы порождают оповещения
type NotificationSettings struct {
	ExitAlert  bool `json:"exit_alert"`
	EnterAlert bool `json:"enter_alert"`
	SMSAlert   bool `json:"sms_alert"`
}

// DefaultNotificationSettings применяются, когда настройки отсутствуют или повреждены
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{ExitAlert: true}
}

// DecodeNotificationSettings разбирает JSON настроек; nil при пустом или некорректном значении
func DecodeNotificationSettings(raw []byte) *NotificationSettings {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var settings NotificationSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil
	}
	return &settings
}

type Geofence struct {
	ID                   uuid.UUID             `json:"id"`
	GroupID              uuid.UUID             `json:"group_id"`
	Name                 string                `json:"name"`
	BoundaryType         BoundaryType          `json:"boundary_type"`
	Center               *LatLng               `json:"center,omitempty"`
	RadiusMeters         float64               `json:"radius_meters,omitempty"`
	PolygonCoordinates   [][2]float64          `json:"polygon_coordinates,omitempty"` // [lng, lat]
	DangerZones          []DangerZone          `json:"danger_zones,omitempty"`
	NotificationSettings *NotificationSettings `json:"notification_settings,omitempty"`
	Active               bool                  `json:"active"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

// Settings возвращает настройки уведомлений геозоны либо значения по умолчанию
func (g *Geofence) Settings() NotificationSettings {
	if g.NotificationSettings == nil {
		return DefaultNotificationSettings()
	}
	return *g.NotificationSettings
}

// Validate проверяет, что геометрия пригодна для вычислений.
// Простота полигона (отсутствие самопересечений) не проверяется.
func (g *Geofence) Validate() error {
	switch g.BoundaryType {
	case BoundaryCircle:
		if g.Center == nil {
			return fmt.Errorf("%w: circle without center", ErrInvalidGeometry)
		}
		if g.RadiusMeters <= 0 {
			return fmt.Errorf("%w: circle radius must be positive", ErrInvalidGeometry)
		}
	case BoundaryPolygon:
		if len(g.PolygonCoordinates) < 3 {
			return fmt.Errorf("%w: polygon needs at least 3 vertices", ErrInvalidGeometry)
		}
	default:
		return fmt.Errorf("%w: unknown boundary type %q", ErrInvalidGeometry, g.BoundaryType)
	}
	return nil
}
