package tracking

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/safezone_tracking/internal/models"
	"github.com/shenikar/safezone_tracking/internal/realtime"
	"github.com/shenikar/safezone_tracking/internal/sensor"
	"github.com/shenikar/safezone_tracking/internal/tracking/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeSessions struct {
	mu         sync.Mutex
	enabled    []bool
	appended   []models.LocationSample
	historyArg int
}

func (f *fakeSessions) SetEnabled(_ context.Context, _ uuid.UUID, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = append(f.enabled, enabled)
	return nil
}

func (f *fakeSessions) AppendLocation(_ context.Context, _ uuid.UUID, sample models.LocationSample, historyLimit int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, sample)
	f.historyArg = historyLimit
	return nil
}

func (f *fakeSessions) appendedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appended)
}

type fakeGeofences struct {
	geofences []*models.Geofence
}

func (f *fakeGeofences) ActiveGeofences(_ context.Context, _ uuid.UUID) ([]*models.Geofence, error) {
	return f.geofences, nil
}

type dispatchCall struct {
	sample     models.LocationSample
	candidates []models.ViolationCandidate
}

type fakeDispatcher struct {
	mu    sync.Mutex
	calls []dispatchCall
}

func (f *fakeDispatcher) Dispatch(_ context.Context, _ uuid.UUID, sample models.LocationSample, candidates []models.ViolationCandidate, _ []*models.Geofence) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, dispatchCall{sample: sample, candidates: candidates})
}

func (f *fakeDispatcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeSubscription struct {
	channel *fakeChannel
}

func (s *fakeSubscription) Unsubscribe() error {
	s.channel.mu.Lock()
	defer s.channel.mu.Unlock()
	s.channel.unsubscribed++
	s.channel.handler = nil
	return nil
}

type fakeChannel struct {
	mu           sync.Mutex
	handler      func(realtime.Event)
	subscribed   int
	unsubscribed int
	published    []string
	subscribeErr error
}

func (c *fakeChannel) Publish(_ context.Context, table string, _ uuid.UUID, eventType string, _ any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, table+":"+eventType)
	return nil
}

func (c *fakeChannel) Subscribe(_ context.Context, _ string, _ uuid.UUID, onEvent func(realtime.Event)) (realtime.Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subscribeErr != nil {
		return nil, c.subscribeErr
	}
	c.subscribed++
	c.handler = onEvent
	return &fakeSubscription{channel: c}, nil
}

func (c *fakeChannel) emit(event realtime.Event) {
	c.mu.Lock()
	handler := c.handler
	c.mu.Unlock()
	if handler != nil {
		handler(event)
	}
}

type testEnv struct {
	hub        *sensor.Hub
	sessions   *fakeSessions
	geofences  *fakeGeofences
	dispatcher *fakeDispatcher
	channel    *fakeChannel
	alerts     chan realtime.Event
	manager    *Manager
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{
		hub:        sensor.NewHub(time.Minute),
		sessions:   &fakeSessions{},
		geofences:  &fakeGeofences{},
		dispatcher: &fakeDispatcher{},
		channel:    &fakeChannel{},
		alerts:     make(chan realtime.Event, 1),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	env.manager = NewManager(env.hub, env.sessions, env.geofences, env.dispatcher, env.channel,
		func(e realtime.Event) { env.alerts <- e },
		Options{HistoryLimit: 10, PositionTimeout: 50 * time.Millisecond},
		logger,
	)
	t.Cleanup(func() { env.manager.Close(context.Background()) })
	return env
}

func ptr(v float64) *float64 { return &v }

func TestDeriveActivity(t *testing.T) {
	testCases := []struct {
		name  string
		speed *float64
		want  models.ActivityType
	}{
		{"absent", nil, models.ActivityStill},
		{"still", ptr(0.1), models.ActivityStill},
		{"walking lower bound", ptr(0.2), models.ActivityWalking},
		{"walking", ptr(1.0), models.ActivityWalking},
		{"running", ptr(3.0), models.ActivityRunning},
		{"driving lower bound", ptr(4.0), models.ActivityDriving},
		{"driving", ptr(5.0), models.ActivityDriving},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveActivity(tc.speed))
		})
	}
}

func TestStartTracking_CapabilityUnavailable(t *testing.T) {
	env := newTestEnv(t)
	groupID := uuid.New()

	result := env.manager.StartTracking(context.Background(), groupID, 0)

	assert.False(t, result.Started)
	assert.Equal(t, ReasonCapabilityUnavailable, result.Reason)
	assert.False(t, env.manager.IsActive(groupID))
}

func TestStartTracking_PermissionNotGranted(t *testing.T) {
	for _, state := range []sensor.PermissionState{sensor.PermissionDenied, sensor.PermissionPrompt} {
		t.Run(string(state), func(t *testing.T) {
			env := newTestEnv(t)
			groupID := uuid.New()
			require.NoError(t, env.hub.SetPermission(groupID, state))

			result := env.manager.StartTracking(context.Background(), groupID, 0)

			assert.False(t, result.Started)
			assert.Equal(t, ReasonPermissionDenied, result.Reason)
			assert.False(t, env.manager.IsActive(groupID))
			assert.Zero(t, env.channel.subscribed)
		})
	}
}

func TestStartTracking_SecondStartIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	groupID := uuid.New()
	require.NoError(t, env.hub.SetPermission(groupID, sensor.PermissionGranted))

	first := env.manager.StartTracking(ctx, groupID, time.Hour)
	second := env.manager.StartTracking(ctx, groupID, time.Hour)

	assert.True(t, first.Started)
	assert.False(t, second.Started)
	assert.Equal(t, ReasonAlreadyActive, second.Reason)
	assert.True(t, env.manager.IsActive(groupID))
	assert.Equal(t, 1, env.channel.subscribed)
	assert.Equal(t, []bool{true}, env.sessions.enabled)
}

func TestStartTracking_LowBatteryAdvisory(t *testing.T) {
	testCases := []struct {
		name    string
		battery sensor.BatteryStatus
		want    bool
	}{
		{"low and discharging", sensor.BatteryStatus{Level: 10}, true},
		{"low but charging", sensor.BatteryStatus{Level: 10, Charging: true}, false},
		{"healthy", sensor.BatteryStatus{Level: 80}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			groupID := uuid.New()
			require.NoError(t, env.hub.SetPermission(groupID, sensor.PermissionGranted))
			env.hub.ReportBattery(groupID, tc.battery)

			result := env.manager.StartTracking(context.Background(), groupID, time.Hour)

			assert.True(t, result.Started)
			assert.Equal(t, tc.want, result.LowBattery)
		})
	}
}

func TestStartTracking_AlertSubscriptionFailureDoesNotBlock(t *testing.T) {
	env := newTestEnv(t)
	env.channel.subscribeErr = errors.New("redis down")
	groupID := uuid.New()
	require.NoError(t, env.hub.SetPermission(groupID, sensor.PermissionGranted))

	result := env.manager.StartTracking(context.Background(), groupID, time.Hour)

	assert.True(t, result.Started)
	assert.True(t, env.manager.StopTracking(context.Background(), groupID))
}

func TestStopTracking_IdempotentAndStopsDelivery(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	groupID := uuid.New()
	require.NoError(t, env.hub.SetPermission(groupID, sensor.PermissionGranted))
	require.True(t, env.manager.StartTracking(ctx, groupID, time.Hour).Started)

	assert.True(t, env.manager.StopTracking(ctx, groupID))
	assert.True(t, env.manager.StopTracking(ctx, groupID))

	env.hub.ReportLocation(groupID, models.LocationSample{Latitude: 1, Longitude: 1})
	env.manager.Close(ctx)

	assert.False(t, env.manager.IsActive(groupID))
	assert.Zero(t, env.sessions.appendedCount())
	assert.Equal(t, []bool{true, false}, env.sessions.enabled)
	assert.Equal(t, 1, env.channel.unsubscribed)
}

func TestStopTracking_UnknownGroup(t *testing.T) {
	env := newTestEnv(t)

	assert.True(t, env.manager.StopTracking(context.Background(), uuid.New()))
	assert.Empty(t, env.sessions.enabled)
}

func TestWatch_EnrichesPersistsAndEvaluates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	groupID := uuid.New()
	env.geofences.geofences = []*models.Geofence{{
		ID:           uuid.New(),
		GroupID:      groupID,
		BoundaryType: models.BoundaryCircle,
		Center:       &models.LatLng{Lat: 55.75, Lng: 37.61},
		RadiusMeters: 100,
		Active:       true,
	}}
	require.NoError(t, env.hub.SetPermission(groupID, sensor.PermissionGranted))
	env.hub.ReportBattery(groupID, sensor.BatteryStatus{Level: 64})
	require.True(t, env.manager.StartTracking(ctx, groupID, time.Hour).Started)

	env.hub.ReportLocation(groupID, models.LocationSample{
		Latitude:  55.80,
		Longitude: 37.61,
		Speed:     ptr(1.5),
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})
	env.manager.Close(ctx)

	require.Equal(t, 1, env.sessions.appendedCount())
	stored := env.sessions.appended[0]
	require.NotNil(t, stored.BatteryLevel)
	assert.Equal(t, 64.0, *stored.BatteryLevel)
	assert.Equal(t, models.ActivityWalking, stored.ActivityType)
	assert.Equal(t, 10, env.sessions.historyArg)
	assert.Contains(t, env.channel.published, realtime.TableTrackingSessions+":"+realtime.EventUpdate)

	require.Equal(t, 1, env.dispatcher.callCount())
	call := env.dispatcher.calls[0]
	require.Len(t, call.candidates, 1)
	assert.True(t, call.candidates[0].IsOutside)
	assert.Equal(t, stored, call.sample)
}

func TestWatch_DuplicateTimestampIsDropped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	groupID := uuid.New()
	require.NoError(t, env.hub.SetPermission(groupID, sensor.PermissionGranted))
	require.True(t, env.manager.StartTracking(ctx, groupID, time.Hour).Started)

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	env.hub.ReportLocation(groupID, models.LocationSample{Latitude: 1, Longitude: 1, Timestamp: ts})
	env.hub.ReportLocation(groupID, models.LocationSample{Latitude: 1, Longitude: 1, Timestamp: ts})
	env.hub.ReportLocation(groupID, models.LocationSample{Latitude: 2, Longitude: 2, Timestamp: ts.Add(time.Second)})
	env.manager.Close(ctx)

	assert.Equal(t, 2, env.sessions.appendedCount())
}

func TestPoll_DeliversLatestFixOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	groupID := uuid.New()
	require.NoError(t, env.hub.SetPermission(groupID, sensor.PermissionGranted))
	// фикс пришел до старта, подписка его не увидит, только опрос
	env.hub.ReportLocation(groupID, models.LocationSample{Latitude: 1, Longitude: 1})

	require.True(t, env.manager.StartTracking(ctx, groupID, 10*time.Millisecond).Started)

	require.Eventually(t, func() bool {
		return env.sessions.appendedCount() == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	env.manager.Close(ctx)
	assert.Equal(t, 1, env.sessions.appendedCount())
}

type managerMocks struct {
	hub        *sensor.Hub
	sessions   *mocks.MockSessionRepository
	geofences  *mocks.MockGeofenceSource
	dispatcher *mocks.MockDispatcher
	channel    *fakeChannel
}

// newMockedManager - менеджер на моках для синхронных проверок HandleLocationUpdate
func newMockedManager(t *testing.T) (*Manager, managerMocks) {
	ctrl := gomock.NewController(t)
	m := managerMocks{
		hub:        sensor.NewHub(time.Minute),
		sessions:   mocks.NewMockSessionRepository(ctrl),
		geofences:  mocks.NewMockGeofenceSource(ctrl),
		dispatcher: mocks.NewMockDispatcher(ctrl),
		channel:    &fakeChannel{},
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	manager := NewManager(m.hub, m.sessions, m.geofences, m.dispatcher, m.channel, nil,
		Options{HistoryLimit: 10, PositionTimeout: 50 * time.Millisecond}, logger)
	t.Cleanup(func() { manager.Close(context.Background()) })
	return manager, m
}

func TestHandleLocationUpdate_EnrichesAndDispatches(t *testing.T) {
	manager, m := newMockedManager(t)
	ctx := context.Background()
	groupID := uuid.New()
	m.hub.ReportBattery(groupID, sensor.BatteryStatus{Level: 30})
	geofences := []*models.Geofence{{
		ID:           uuid.New(),
		GroupID:      groupID,
		BoundaryType: models.BoundaryCircle,
		Center:       &models.LatLng{Lat: 1, Lng: 1},
		RadiusMeters: 100,
		Active:       true,
	}}

	gomock.InOrder(
		m.sessions.EXPECT().AppendLocation(ctx, groupID, gomock.Any(), 10).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, sample models.LocationSample, _ int) error {
				require.NotNil(t, sample.BatteryLevel)
				assert.Equal(t, 30.0, *sample.BatteryLevel)
				assert.Equal(t, models.ActivityRunning, sample.ActivityType)
				return nil
			}),
		m.geofences.EXPECT().ActiveGeofences(ctx, groupID).Return(geofences, nil),
		m.dispatcher.EXPECT().Dispatch(ctx, groupID, gomock.Any(), gomock.Any(), geofences).
			Do(func(_ context.Context, _ uuid.UUID, _ models.LocationSample, candidates []models.ViolationCandidate, _ []*models.Geofence) {
				require.Len(t, candidates, 1)
				assert.False(t, candidates[0].IsOutside)
			}),
	)

	manager.HandleLocationUpdate(ctx, groupID, models.LocationSample{Latitude: 1, Longitude: 1, Speed: ptr(3)})

	assert.Equal(t, []string{realtime.TableTrackingSessions + ":" + realtime.EventUpdate}, m.channel.published)
}

func TestHandleLocationUpdate_PersistenceFailureStillEvaluates(t *testing.T) {
	manager, m := newMockedManager(t)
	ctx := context.Background()
	groupID := uuid.New()

	m.sessions.EXPECT().AppendLocation(ctx, groupID, gomock.Any(), 10).Return(errors.New("db down")).Times(1)
	m.geofences.EXPECT().ActiveGeofences(ctx, groupID).Return(nil, nil).Times(1)
	m.dispatcher.EXPECT().Dispatch(ctx, groupID, gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, _ uuid.UUID, sample models.LocationSample, _ []models.ViolationCandidate, _ []*models.Geofence) {
			// без устройства заряд батареи просто отсутствует
			assert.Nil(t, sample.BatteryLevel)
		}).Times(1)

	manager.HandleLocationUpdate(ctx, groupID, models.LocationSample{Latitude: 1, Longitude: 1})

	assert.Empty(t, m.channel.published)
}

func TestHandleLocationUpdate_GeofenceLoadFailureSkipsDispatch(t *testing.T) {
	manager, m := newMockedManager(t)
	ctx := context.Background()
	groupID := uuid.New()

	m.sessions.EXPECT().AppendLocation(ctx, groupID, gomock.Any(), 10).Return(nil).Times(1)
	m.geofences.EXPECT().ActiveGeofences(ctx, groupID).Return(nil, errors.New("db down")).Times(1)
	m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	manager.HandleLocationUpdate(ctx, groupID, models.LocationSample{})
}

func TestAlertRelay_ForwardsEventsUnchanged(t *testing.T) {
	env := newTestEnv(t)
	groupID := uuid.New()
	require.NoError(t, env.hub.SetPermission(groupID, sensor.PermissionGranted))
	require.True(t, env.manager.StartTracking(context.Background(), groupID, time.Hour).Started)

	event := realtime.Event{
		Table:   realtime.TableGeofenceAlerts,
		Type:    realtime.EventInsert,
		GroupID: groupID,
		Record:  []byte(`{"alert_type":"exit"}`),
	}
	env.channel.emit(event)

	select {
	case got := <-env.alerts:
		assert.Equal(t, event, got)
	case <-time.After(time.Second):
		t.Fatal("alert event was not relayed")
	}
}

func TestClose_RejectsNewSessions(t *testing.T) {
	env := newTestEnv(t)
	groupID := uuid.New()
	require.NoError(t, env.hub.SetPermission(groupID, sensor.PermissionGranted))

	env.manager.Close(context.Background())
	result := env.manager.StartTracking(context.Background(), groupID, time.Hour)

	assert.False(t, result.Started)
	assert.Equal(t, ReasonShuttingDown, result.Reason)
}
