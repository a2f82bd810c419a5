// Package sensor скрывает источник координат устройства за интерфейсом возможностей,
// чтобы движок отслеживания можно было проверять синтетическими потоками координат.
package sensor

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/safezone_tracking/internal/models"
)

type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
	PermissionPrompt  PermissionState = "prompt"
)

var (
	ErrTimeout               = errors.New("position request timed out")
	ErrPositionUnavailable   = errors.New("position unavailable")
	ErrCapabilityUnavailable = errors.New("geolocation capability unavailable")
	ErrBatteryUnavailable    = errors.New("battery status unavailable")
)

type BatteryStatus struct {
	Level    float64 `json:"level"`
	Charging bool    `json:"charging"`
}

// Subscription - подписка на поток координат. Cancel идемпотентен.
type Subscription interface {
	Cancel()
}

// Sensors - возможности одного устройства
type Sensors interface {
	RequestPermission(ctx context.Context) (PermissionState, error)
	CurrentPosition(ctx context.Context, highAccuracy bool, timeout time.Duration) (models.LocationSample, error)
	WatchPosition(cb func(models.LocationSample), highAccuracy bool) (Subscription, error)
	BatteryStatus(ctx context.Context) (BatteryStatus, error)
}

// Provider возвращает устройство группы или ErrCapabilityUnavailable
type Provider interface {
	Sensors(groupID uuid.UUID) (Sensors, error)
}
