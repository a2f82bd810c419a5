package sensor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/safezone_tracking/internal/models"
)

// HighAccuracyMeters - предельная погрешность фикса в режиме высокой точности
const HighAccuracyMeters = 50.0

// Hub принимает координаты, заряд батареи и разрешения, присылаемые устройствами
// (по HTTP или MQTT), и раздает их движку через интерфейс Sensors.
type Hub struct {
	mu      sync.Mutex
	devices map[uuid.UUID]*Device
	maxAge  time.Duration
	now     func() time.Time
}

// NewHub создает Hub. maxAge - сколько последний фикс считается свежим для разового запроса.
func NewHub(maxAge time.Duration) *Hub {
	return &Hub{
		devices: make(map[uuid.UUID]*Device),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

func (h *Hub) Sensors(groupID uuid.UUID) (Sensors, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	d, ok := h.devices[groupID]
	if !ok {
		return nil, fmt.Errorf("%w: no device registered for group %s", ErrCapabilityUnavailable, groupID)
	}
	return d, nil
}

func (h *Hub) device(groupID uuid.UUID) *Device {
	h.mu.Lock()
	defer h.mu.Unlock()
	d, ok := h.devices[groupID]
	if !ok {
		d = &Device{
			maxAge:     h.maxAge,
			now:        h.now,
			permission: PermissionPrompt,
			updated:    make(chan struct{}),
			watchers:   make(map[uint64]watcher),
		}
		h.devices[groupID] = d
	}
	return d
}

// ReportLocation регистрирует фикс устройства группы. Пустая метка времени заменяется временем приема.
func (h *Hub) ReportLocation(groupID uuid.UUID, sample models.LocationSample) {
	if sample.Timestamp.IsZero() {
		sample.Timestamp = h.now()
	}
	// заряд и активность датчиком не сообщаются
	sample.BatteryLevel = nil
	sample.ActivityType = ""
	h.device(groupID).report(sample)
}

func (h *Hub) ReportBattery(groupID uuid.UUID, status BatteryStatus) {
	d := h.device(groupID)
	d.mu.Lock()
	d.battery = &status
	d.mu.Unlock()
}

func (h *Hub) SetPermission(groupID uuid.UUID, state PermissionState) error {
	switch state {
	case PermissionGranted, PermissionDenied, PermissionPrompt:
	default:
		return fmt.Errorf("unknown permission state %q", state)
	}
	d := h.device(groupID)
	d.mu.Lock()
	d.permission = state
	d.mu.Unlock()
	return nil
}

type watcher struct {
	cb           func(models.LocationSample)
	highAccuracy bool
}

// Device - состояние одного устройства, реализует Sensors
type Device struct {
	mu         sync.Mutex
	maxAge     time.Duration
	now        func() time.Time
	permission PermissionState
	battery    *BatteryStatus
	last       *models.LocationSample
	lastAt     time.Time
	seq        uint64
	updated    chan struct{} // закрывается и пересоздается при каждом фиксе
	watchers   map[uint64]watcher
	nextID     uint64
}

func (d *Device) report(sample models.LocationSample) {
	d.mu.Lock()
	d.last = &sample
	d.lastAt = d.now()
	d.seq++
	close(d.updated)
	d.updated = make(chan struct{})
	watchers := make([]watcher, 0, len(d.watchers))
	for _, w := range d.watchers {
		watchers = append(watchers, w)
	}
	d.mu.Unlock()

	for _, w := range watchers {
		if acceptable(sample, w.highAccuracy) {
			w.cb(sample)
		}
	}
}

func (d *Device) RequestPermission(_ context.Context) (PermissionState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.permission, nil
}

// CurrentPosition возвращает последний свежий фикс или ждет следующего не дольше timeout
func (d *Device) CurrentPosition(ctx context.Context, highAccuracy bool, timeout time.Duration) (models.LocationSample, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	d.mu.Lock()
	startSeq := d.seq
	d.mu.Unlock()

	for {
		d.mu.Lock()
		if d.permission == PermissionDenied {
			d.mu.Unlock()
			return models.LocationSample{}, fmt.Errorf("%w: location permission denied", ErrPositionUnavailable)
		}
		if d.last != nil && acceptable(*d.last, highAccuracy) &&
			(d.seq > startSeq || d.fresh()) {
			sample := *d.last
			d.mu.Unlock()
			return sample, nil
		}
		updated := d.updated
		d.mu.Unlock()

		select {
		case <-updated:
		case <-timer.C:
			return models.LocationSample{}, ErrTimeout
		case <-ctx.Done():
			return models.LocationSample{}, ctx.Err()
		}
	}
}

// fresh - вызывается под d.mu; нулевой maxAge означает "только новый фикс"
func (d *Device) fresh() bool {
	return d.maxAge > 0 && d.now().Sub(d.lastAt) <= d.maxAge
}

func (d *Device) WatchPosition(cb func(models.LocationSample), highAccuracy bool) (Subscription, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextID
	d.nextID++
	d.watchers[id] = watcher{cb: cb, highAccuracy: highAccuracy}
	return &subscription{device: d, id: id}, nil
}

func (d *Device) BatteryStatus(_ context.Context) (BatteryStatus, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.battery == nil {
		return BatteryStatus{}, ErrBatteryUnavailable
	}
	return *d.battery, nil
}

type subscription struct {
	once   sync.Once
	device *Device
	id     uint64
}

func (s *subscription) Cancel() {
	s.once.Do(func() {
		s.device.mu.Lock()
		delete(s.device.watchers, s.id)
		s.device.mu.Unlock()
	})
}

func acceptable(sample models.LocationSample, highAccuracy bool) bool {
	if !highAccuracy {
		return true
	}
	// фикс без оценки погрешности не отбрасывается
	return sample.Accuracy == nil || *sample.Accuracy <= HighAccuracyMeters
}
