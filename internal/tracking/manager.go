// Package tracking управляет сессиями отслеживания групп ухода: источники координат,
// обогащение показаний, запись истории и передача в проверку геозон.
package tracking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/safezone_tracking/internal/geofence"
	"github.com/shenikar/safezone_tracking/internal/models"
	"github.com/shenikar/safezone_tracking/internal/realtime"
	"github.com/shenikar/safezone_tracking/internal/sensor"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=manager.go -destination=mocks/manager_mock.go -package=mocks

type SessionRepository interface {
	SetEnabled(ctx context.Context, groupID uuid.UUID, enabled bool) error
	AppendLocation(ctx context.Context, groupID uuid.UUID, sample models.LocationSample, historyLimit int) error
}

// GeofenceSource отдает активные геозоны группы
type GeofenceSource interface {
	ActiveGeofences(ctx context.Context, groupID uuid.UUID) ([]*models.Geofence, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, groupID uuid.UUID, sample models.LocationSample, candidates []models.ViolationCandidate, geofences []*models.Geofence)
}

// AlertHandler получает события о новых оповещениях группы без изменений
type AlertHandler func(event realtime.Event)

type Options struct {
	DefaultInterval     time.Duration
	HistoryLimit        int
	PositionTimeout     time.Duration
	LowBatteryThreshold float64
}

type StartReason string

const (
	ReasonAlreadyActive         StartReason = "already_active"
	ReasonPermissionDenied      StartReason = "permission_denied"
	ReasonCapabilityUnavailable StartReason = "capability_unavailable"
	ReasonShuttingDown          StartReason = "shutting_down"
)

type StartResult struct {
	Started    bool        `json:"started"`
	Reason     StartReason `json:"reason,omitempty"`
	LowBattery bool        `json:"low_battery"`
}

// Manager держит не более одной сессии на группу
type Manager struct {
	sensors    sensor.Provider
	sessions   SessionRepository
	geofences  GeofenceSource
	dispatcher Dispatcher
	channel    realtime.Channel
	onAlert    AlertHandler
	opts       Options
	logger     *logrus.Logger

	// обработка показаний живет дольше сессии и отменяется только при закрытии менеджера
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	active map[uuid.UUID]*session
	closed bool
}

type session struct {
	groupID uuid.UUID

	mu            sync.Mutex
	stopped       bool
	lastTimestamp time.Time
	watch         sensor.Subscription
	alerts        realtime.Subscription
	stopPoll      context.CancelFunc
}

func NewManager(
	sensors sensor.Provider,
	sessions SessionRepository,
	geofences GeofenceSource,
	dispatcher Dispatcher,
	channel realtime.Channel,
	onAlert AlertHandler,
	opts Options,
	logger *logrus.Logger,
) *Manager {
	if opts.DefaultInterval <= 0 {
		opts.DefaultInterval = 30 * time.Second
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 500
	}
	if opts.PositionTimeout <= 0 {
		opts.PositionTimeout = 5 * time.Second
	}
	if opts.LowBatteryThreshold <= 0 {
		opts.LowBatteryThreshold = 20
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		sensors:    sensors,
		sessions:   sessions,
		geofences:  geofences,
		dispatcher: dispatcher,
		channel:    channel,
		onAlert:    onAlert,
		opts:       opts,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		active:     make(map[uuid.UUID]*session),
	}
}

// DeriveActivity - эвристика по скорости в м/с; без скорости считаем, что человек стоит
func DeriveActivity(speed *float64) models.ActivityType {
	if speed == nil {
		return models.ActivityStill
	}
	switch s := *speed; {
	case s < 0.2:
		return models.ActivityStill
	case s < 2:
		return models.ActivityWalking
	case s < 4:
		return models.ActivityRunning
	default:
		return models.ActivityDriving
	}
}

// StartTracking запускает подписку на координаты, периодический опрос и ретрансляцию оповещений.
// interval <= 0 означает интервал по умолчанию.
func (m *Manager) StartTracking(ctx context.Context, groupID uuid.UUID, interval time.Duration) StartResult {
	if interval <= 0 {
		interval = m.opts.DefaultInterval
	}
	log := m.logger.WithFields(logrus.Fields{
		"component": "tracking",
		"method":    "StartTracking",
		"group_id":  groupID,
		"interval":  interval.String(),
	})

	s := &session{groupID: groupID}
	s.mu.Lock()
	defer s.mu.Unlock()

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return StartResult{Reason: ReasonShuttingDown}
	}
	if _, exists := m.active[groupID]; exists {
		m.mu.Unlock()
		log.Info("Tracking already active")
		return StartResult{Reason: ReasonAlreadyActive}
	}
	m.active[groupID] = s
	m.mu.Unlock()

	result, err := m.start(ctx, s, interval, log)
	if err != nil {
		s.stopped = true
		m.mu.Lock()
		if m.active[groupID] == s {
			delete(m.active, groupID)
		}
		m.mu.Unlock()
		log.WithError(err).WithField("reason", result.Reason).Warn("Tracking not started")
		return result
	}

	log.WithField("low_battery", result.LowBattery).Info("Tracking started")
	return result
}

// start вызывается под s.mu
func (m *Manager) start(ctx context.Context, s *session, interval time.Duration, log *logrus.Entry) (StartResult, error) {
	device, err := m.sensors.Sensors(s.groupID)
	if err != nil {
		return StartResult{Reason: ReasonCapabilityUnavailable}, err
	}

	permission, err := device.RequestPermission(ctx)
	if err != nil {
		return StartResult{Reason: ReasonPermissionDenied}, err
	}
	if permission != sensor.PermissionGranted {
		return StartResult{Reason: ReasonPermissionDenied}, fmt.Errorf("location permission is %s", permission)
	}

	result := StartResult{Started: true}
	if battery, err := device.BatteryStatus(ctx); err == nil {
		if battery.Level < m.opts.LowBatteryThreshold && !battery.Charging {
			result.LowBattery = true
			log.WithField("battery_level", battery.Level).Warn("Low battery, tracking may be interrupted")
		}
	}

	watch, err := device.WatchPosition(func(sample models.LocationSample) {
		m.deliver(s, sample)
	}, true)
	if err != nil {
		return StartResult{Reason: ReasonCapabilityUnavailable}, err
	}
	s.watch = watch

	if err := m.sessions.SetEnabled(ctx, s.groupID, true); err != nil {
		log.WithError(err).Error("Failed to enable tracking session")
	}

	alerts, err := m.channel.Subscribe(ctx, realtime.TableGeofenceAlerts, s.groupID, m.relayAlert)
	if err != nil {
		log.WithError(err).Warn("Failed to subscribe to alert events")
	} else {
		s.alerts = alerts
	}

	pollCtx, stopPoll := context.WithCancel(m.ctx)
	s.stopPoll = stopPoll
	m.wg.Add(1)
	go m.poll(pollCtx, s, device, interval)

	return result, nil
}

func (m *Manager) relayAlert(event realtime.Event) {
	if m.onAlert != nil {
		m.onAlert(event)
	}
}

func (m *Manager) poll(ctx context.Context, s *session, device sensor.Sensors, interval time.Duration) {
	defer m.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sample, err := device.CurrentPosition(ctx, true, m.opts.PositionTimeout)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				// цикл пропускается, следующий опрос через interval
				m.logger.WithError(err).WithField("group_id", s.groupID).Debug("Position poll failed")
				continue
			}
			m.deliver(s, sample)
		}
	}
}

// deliver - общая точка входа для подписки и опроса
func (m *Manager) deliver(s *session, sample models.LocationSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if !s.lastTimestamp.IsZero() && sample.Timestamp.Equal(s.lastTimestamp) {
		return
	}
	s.lastTimestamp = sample.Timestamp

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.HandleLocationUpdate(m.ctx, s.groupID, sample)
	}()
}

// HandleLocationUpdate обогащает показание, записывает его в сессию и проверяет геозоны.
// Ошибки записи только логируются.
func (m *Manager) HandleLocationUpdate(ctx context.Context, groupID uuid.UUID, raw models.LocationSample) {
	log := m.logger.WithFields(logrus.Fields{
		"component": "tracking",
		"method":    "HandleLocationUpdate",
		"group_id":  groupID,
	})

	sample := raw
	sample.BatteryLevel = nil
	if device, err := m.sensors.Sensors(groupID); err == nil {
		if battery, err := device.BatteryStatus(ctx); err == nil {
			level := battery.Level
			sample.BatteryLevel = &level
		}
	}
	sample.ActivityType = DeriveActivity(sample.Speed)

	if err := m.sessions.AppendLocation(ctx, groupID, sample, m.opts.HistoryLimit); err != nil {
		log.WithError(err).Error("Failed to persist location")
	} else if err := m.channel.Publish(ctx, realtime.TableTrackingSessions, groupID, realtime.EventUpdate, sample); err != nil {
		log.WithError(err).Warn("Failed to publish session update")
	}

	geofences, err := m.geofences.ActiveGeofences(ctx, groupID)
	if err != nil {
		log.WithError(err).Error("Failed to load active geofences")
		return
	}
	candidates := geofence.Evaluate(sample, geofences)
	m.dispatcher.Dispatch(ctx, groupID, sample, candidates, geofences)
}

// StopTracking всегда успешен; после возврата новые показания группы не обрабатываются
func (m *Manager) StopTracking(ctx context.Context, groupID uuid.UUID) bool {
	m.mu.Lock()
	s, ok := m.active[groupID]
	delete(m.active, groupID)
	m.mu.Unlock()
	if !ok {
		return true
	}

	// ждет завершения StartTracking, если тот еще идет
	s.mu.Lock()
	wasActive := s.stop()
	s.mu.Unlock()

	if wasActive {
		if err := m.sessions.SetEnabled(ctx, groupID, false); err != nil {
			m.logger.WithError(err).WithField("group_id", groupID).Error("Failed to disable tracking session")
		}
		m.logger.WithField("group_id", groupID).Info("Tracking stopped")
	}
	return true
}

// stop вызывается под s.mu
func (s *session) stop() bool {
	if s.stopped {
		return false
	}
	s.stopped = true
	if s.watch != nil {
		s.watch.Cancel()
	}
	if s.stopPoll != nil {
		s.stopPoll()
	}
	if s.alerts != nil {
		_ = s.alerts.Unsubscribe()
	}
	return true
}

func (m *Manager) IsActive(groupID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.active[groupID]
	return ok
}

// Close останавливает все сессии и ждет завершения уже начатой обработки показаний
func (m *Manager) Close(ctx context.Context) {
	m.mu.Lock()
	m.closed = true
	groups := make([]uuid.UUID, 0, len(m.active))
	for groupID := range m.active {
		groups = append(groups, groupID)
	}
	m.mu.Unlock()

	for _, groupID := range groups {
		m.StopTracking(ctx, groupID)
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		m.logger.Warn("Tracking manager closed before in-flight updates finished")
	}
	m.cancel()
}
