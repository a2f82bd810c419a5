package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/safezone_tracking/internal/config"
	v1mocks "github.com/shenikar/safezone_tracking/internal/handler/http/v1/mocks"
	"github.com/shenikar/safezone_tracking/internal/models"
	"github.com/shenikar/safezone_tracking/internal/sensor"
	"github.com/shenikar/safezone_tracking/internal/service/mocks"
	"github.com/shenikar/safezone_tracking/internal/tracking"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var authHeader = map[string]string{"X-API-Key": "test-api-key"}

type handlerMocks struct {
	geofences *mocks.MockGeofenceService
	tracker   *v1mocks.MockTracker
	sessions  *v1mocks.MockSessionReader
	devices   *v1mocks.MockDeviceReporter
}

// newTestHandler создает роутер с мокированными зависимостями Handler
func newTestHandler(t *testing.T) (handlerMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := handlerMocks{
		geofences: mocks.NewMockGeofenceService(ctrl),
		tracker:   v1mocks.NewMockTracker(ctrl),
		sessions:  v1mocks.NewMockSessionReader(ctrl),
		devices:   v1mocks.NewMockDeviceReporter(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{APIKeys: []string{"test-api-key"}}
	handler := NewHandler(m.geofences, m.tracker, m.sessions, m.devices, logger, cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))

	return m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func f(v float64) *float64 { return &v }

func TestHealthCheck_NoAuthRequired(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAuth(t *testing.T) {
	groupID := uuid.New()
	url := fmt.Sprintf("/api/v1/groups/%s/tracking/stop", groupID)

	t.Run("missing key", func(t *testing.T) {
		_, router := newTestHandler(t)
		w := makeRequest(router, http.MethodPost, url, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "API key required")
	})

	t.Run("invalid key", func(t *testing.T) {
		_, router := newTestHandler(t)
		w := makeRequest(router, http.MethodPost, url, nil, map[string]string{"X-API-Key": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bearer token", func(t *testing.T) {
		m, router := newTestHandler(t)
		m.tracker.EXPECT().StopTracking(gomock.Any(), groupID).Return(true).Times(1)

		w := makeRequest(router, http.MethodPost, url, nil, map[string]string{"Authorization": "Bearer test-api-key"})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestStartTracking_DefaultInterval(t *testing.T) {
	m, router := newTestHandler(t)
	groupID := uuid.New()

	m.tracker.EXPECT().
		StartTracking(gomock.Any(), groupID, time.Duration(0)).
		Return(tracking.StartResult{Started: true, LowBattery: true}).
		Times(1)

	w := makeRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/tracking/start", groupID), nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"started":true,"low_battery":true}`, w.Body.String())
}

func TestStartTracking_CustomIntervalAndRefusal(t *testing.T) {
	m, router := newTestHandler(t)
	groupID := uuid.New()

	m.tracker.EXPECT().
		StartTracking(gomock.Any(), groupID, 5*time.Second).
		Return(tracking.StartResult{Reason: tracking.ReasonPermissionDenied}).
		Times(1)

	w := makeRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/tracking/start", groupID),
		jsonBody(t, StartTrackingRequest{UpdateIntervalMs: 5000}), authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"started":false,"reason":"permission_denied","low_battery":false}`, w.Body.String())
}

func TestStartTracking_IntervalTooShort(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/tracking/start", uuid.New()),
		jsonBody(t, StartTrackingRequest{UpdateIntervalMs: 10}), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartTracking_InvalidGroupID(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, http.MethodPost, "/api/v1/groups/not-a-uuid/tracking/start", nil, authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid group ID")
}

func TestTrackingStatus(t *testing.T) {
	m, router := newTestHandler(t)
	groupID := uuid.New()
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	current := models.LocationSample{Latitude: 1, Longitude: 2, Timestamp: ts, ActivityType: models.ActivityWalking}

	m.tracker.EXPECT().IsActive(groupID).Return(true).Times(1)
	m.sessions.EXPECT().GetSession(gomock.Any(), groupID).Return(&models.TrackingSession{
		GroupID:         groupID,
		Enabled:         true,
		CurrentLocation: &current,
		LocationHistory: []models.LocationSample{current},
	}, nil).Times(1)

	w := makeRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/groups/%s/tracking", groupID), nil, authHeader)

	require.Equal(t, http.StatusOK, w.Code)
	var resp TrackingStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Active)
	assert.True(t, resp.Enabled)
	require.NotNil(t, resp.CurrentLocation)
	assert.Equal(t, "walking", resp.CurrentLocation.ActivityType)
	assert.Len(t, resp.LocationHistory, 1)
}

func TestTrackingStatus_NoSessionYet(t *testing.T) {
	m, router := newTestHandler(t)
	groupID := uuid.New()

	m.tracker.EXPECT().IsActive(groupID).Return(false).Times(1)
	m.sessions.EXPECT().GetSession(gomock.Any(), groupID).Return(nil, fmt.Errorf("wrap: %w", models.ErrNotFound)).Times(1)

	w := makeRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/groups/%s/tracking", groupID), nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"active":false,"enabled":false,"location_history":[]}`, w.Body.String())
}

func TestTrackingStatus_StoreError(t *testing.T) {
	m, router := newTestHandler(t)
	groupID := uuid.New()

	m.sessions.EXPECT().GetSession(gomock.Any(), groupID).Return(nil, errors.New("db down")).Times(1)

	w := makeRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/groups/%s/tracking", groupID), nil, authHeader)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReportLocation_Success(t *testing.T) {
	m, router := newTestHandler(t)
	groupID := uuid.New()
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	m.devices.EXPECT().ReportLocation(groupID, models.LocationSample{
		Latitude:  55.75,
		Longitude: 37.61,
		Accuracy:  f(12),
		Timestamp: ts,
	}).Times(1)

	body := jsonBody(t, LocationReportRequest{Latitude: f(55.75), Longitude: f(37.61), Accuracy: f(12), Timestamp: &ts})
	w := makeRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/device/location", groupID), body, authHeader)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestReportLocation_ValidationError(t *testing.T) {
	_, router := newTestHandler(t)

	// Широта вне диапазона, долгота отсутствует
	body := bytes.NewBufferString(`{"latitude": 95}`)
	w := makeRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/device/location", uuid.New()), body, authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportLocation_ZeroCoordinatesAreValid(t *testing.T) {
	m, router := newTestHandler(t)
	groupID := uuid.New()

	m.devices.EXPECT().ReportLocation(groupID, gomock.Any()).Times(1)

	body := bytes.NewBufferString(`{"latitude": 0, "longitude": 0}`)
	w := makeRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/device/location", groupID), body, authHeader)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestReportBattery(t *testing.T) {
	m, router := newTestHandler(t)
	groupID := uuid.New()

	m.devices.EXPECT().ReportBattery(groupID, sensor.BatteryStatus{Level: 15, Charging: true}).Times(1)

	body := jsonBody(t, BatteryReportRequest{Level: f(15), Charging: true})
	w := makeRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/device/battery", groupID), body, authHeader)

	assert.Equal(t, http.StatusAccepted, w.Code)

	body = bytes.NewBufferString(`{"level": 150}`)
	w = makeRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/device/battery", groupID), body, authHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetPermission(t *testing.T) {
	m, router := newTestHandler(t)
	groupID := uuid.New()

	m.devices.EXPECT().SetPermission(groupID, sensor.PermissionGranted).Return(nil).Times(1)

	w := makeRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/groups/%s/device/permission", groupID),
		jsonBody(t, PermissionRequest{State: "granted"}), authHeader)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = makeRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/groups/%s/device/permission", groupID),
		jsonBody(t, PermissionRequest{State: "maybe"}), authHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGeofence_Success(t *testing.T) {
	m, router := newTestHandler(t)
	groupID := uuid.New()
	geofenceID := uuid.New()
	reqBody := GeofenceRequest{
		Name:         "Дом",
		BoundaryType: "circle",
		Center:       &LatLngDTO{Lat: f(55.75), Lng: f(37.61)},
		RadiusMeters: 200,
	}

	m.geofences.EXPECT().
		CreateGeofence(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, g *models.Geofence) error {
			assert.Equal(t, groupID, g.GroupID)
			assert.Equal(t, models.BoundaryCircle, g.BoundaryType)
			require.NotNil(t, g.Center)
			assert.Equal(t, 55.75, g.Center.Lat)
			assert.Nil(t, g.NotificationSettings)
			g.ID = geofenceID
			return nil
		}).Times(1)

	w := makeRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/geofences", groupID), jsonBody(t, reqBody), authHeader)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp GeofenceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, geofenceID, resp.ID)
	// настройки по умолчанию видны в ответе
	assert.Equal(t, NotificationSettingsDTO{ExitAlert: true}, resp.NotificationSettings)
}

func TestCreateGeofence_InvalidJSON(t *testing.T) {
	m, router := newTestHandler(t)

	m.geofences.EXPECT().CreateGeofence(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/geofences", uuid.New()),
		bytes.NewBufferString(`{"name": "test"`), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateGeofence_ValidationError(t *testing.T) {
	_, router := newTestHandler(t)
	reqBody := GeofenceRequest{Name: "Дом", BoundaryType: "hexagon"}

	w := makeRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/geofences", uuid.New()), jsonBody(t, reqBody), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGeofence_DangerZoneTooSmall(t *testing.T) {
	_, router := newTestHandler(t)
	reqBody := GeofenceRequest{
		Name:               "Парк",
		BoundaryType:       "polygon",
		PolygonCoordinates: [][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}},
		DangerZones:        []DangerZoneDTO{{Type: "water", Coordinates: [][2]float64{{1, 1}, {2, 2}}}},
	}

	w := makeRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/geofences", uuid.New()), jsonBody(t, reqBody), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGeofence_InvalidGeometry(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := GeofenceRequest{Name: "Дом", BoundaryType: "circle"}

	m.geofences.EXPECT().
		CreateGeofence(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("service: %w", models.ErrInvalidGeometry)).
		Times(1)

	w := makeRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/groups/%s/geofences", uuid.New()), jsonBody(t, reqBody), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid geofence geometry")
}

func TestListGeofences(t *testing.T) {
	m, router := newTestHandler(t)
	groupID := uuid.New()
	list := []*models.Geofence{
		{ID: uuid.New(), GroupID: groupID, Name: "Дом", BoundaryType: models.BoundaryCircle, Center: &models.LatLng{Lat: 1, Lng: 2}, RadiusMeters: 100, Active: true},
	}

	m.geofences.EXPECT().ListGeofences(gomock.Any(), groupID, 2, 5).Return(list, nil).Times(1)

	w := makeRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/groups/%s/geofences?page=2&pageSize=5", groupID), nil, authHeader)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []GeofenceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, list[0].ID, resp[0].ID)
	require.NotNil(t, resp[0].Center)
	assert.Equal(t, 1.0, *resp[0].Center.Lat)
}

func TestGetGeofence(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()

	m.geofences.EXPECT().GetGeofence(gomock.Any(), id).Return(&models.Geofence{ID: id, Name: "Дом"}, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/geofences/"+id.String(), nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetGeofence_NotFound(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()

	m.geofences.EXPECT().GetGeofence(gomock.Any(), id).Return(nil, fmt.Errorf("service: %w", models.ErrNotFound)).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/geofences/"+id.String(), nil, authHeader)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetGeofence_InvalidID(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/v1/geofences/invalid-uuid", nil, authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateGeofence(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()
	reqBody := GeofenceRequest{
		Name:                 "Парк",
		BoundaryType:         "polygon",
		PolygonCoordinates:   [][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}},
		NotificationSettings: &NotificationSettingsDTO{EnterAlert: true, SMSAlert: true},
	}

	m.geofences.EXPECT().
		UpdateGeofence(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, g *models.Geofence) error {
			assert.Equal(t, id, g.ID)
			require.NotNil(t, g.NotificationSettings)
			assert.Equal(t, models.NotificationSettings{EnterAlert: true, SMSAlert: true}, *g.NotificationSettings)
			return nil
		}).Times(1)

	w := makeRequest(router, http.MethodPut, "/api/v1/geofences/"+id.String(), jsonBody(t, reqBody), authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateGeofence_ServiceError(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()
	reqBody := GeofenceRequest{Name: "Дом", BoundaryType: "circle", Center: &LatLngDTO{Lat: f(1), Lng: f(1)}, RadiusMeters: 10}

	m.geofences.EXPECT().UpdateGeofence(gomock.Any(), gomock.Any()).Return(errors.New("db down")).Times(1)

	w := makeRequest(router, http.MethodPut, "/api/v1/geofences/"+id.String(), jsonBody(t, reqBody), authHeader)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDeleteGeofence(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()

	m.geofences.EXPECT().DeactivateGeofence(gomock.Any(), id).Return(nil).Times(1)

	w := makeRequest(router, http.MethodDelete, "/api/v1/geofences/"+id.String(), nil, authHeader)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteGeofence_NotFound(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()

	m.geofences.EXPECT().DeactivateGeofence(gomock.Any(), id).Return(fmt.Errorf("wrap: %w", models.ErrNotFound)).Times(1)

	w := makeRequest(router, http.MethodDelete, "/api/v1/geofences/"+id.String(), nil, authHeader)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
