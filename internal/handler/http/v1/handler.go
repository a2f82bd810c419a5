package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/safezone_tracking/internal/config"
	"github.com/shenikar/safezone_tracking/internal/models"
	"github.com/shenikar/safezone_tracking/internal/sensor"
	"github.com/shenikar/safezone_tracking/internal/service"
	"github.com/shenikar/safezone_tracking/internal/tracking"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks

// Tracker управляет сессиями отслеживания групп
type Tracker interface {
	StartTracking(ctx context.Context, groupID uuid.UUID, interval time.Duration) tracking.StartResult
	StopTracking(ctx context.Context, groupID uuid.UUID) bool
	IsActive(groupID uuid.UUID) bool
}

type SessionReader interface {
	GetSession(ctx context.Context, groupID uuid.UUID) (*models.TrackingSession, error)
}

// DeviceReporter принимает данные, которые устройство присылает по HTTP
type DeviceReporter interface {
	ReportLocation(groupID uuid.UUID, sample models.LocationSample)
	ReportBattery(groupID uuid.UUID, status sensor.BatteryStatus)
	SetPermission(groupID uuid.UUID, state sensor.PermissionState) error
}

type Handler struct {
	geofenceService service.GeofenceService
	tracker         Tracker
	sessions        SessionReader
	devices         DeviceReporter
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(
	geofenceService service.GeofenceService,
	tracker Tracker,
	sessions SessionReader,
	devices DeviceReporter,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		geofenceService: geofenceService,
		tracker:         tracker,
		sessions:        sessions,
		devices:         devices,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

func (h *Handler) groupID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group ID"})
		return uuid.Nil, false
	}
	return id, true
}

// bind разбирает и валидирует тело запроса, при ошибке отвечает 400
func (h *Handler) bind(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary Start location tracking
// @Description Start tracking a care group. A refusal (already active, permission denied, no device) is reported in the body, not as an error. Requires API key.
// @Tags Tracking
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param group_id path string true "Group ID"
// @Param request body StartTrackingRequest false "Tracking options"
// @Success 200 {object} StartTrackingResponse
// @Failure 400 {object} map[string]string "Invalid group ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /groups/{group_id}/tracking/start [post]
func (h *Handler) startTracking(c *gin.Context) {
	groupID, ok := h.groupID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "startTracking").WithField("group_id", groupID)

	var input StartTrackingRequest
	if c.Request.ContentLength > 0 && !h.bind(c, log, &input) {
		return
	}

	interval := time.Duration(input.UpdateIntervalMs) * time.Millisecond
	result := h.tracker.StartTracking(c.Request.Context(), groupID, interval)
	c.JSON(http.StatusOK, StartResultToResponse(result))
}

// @Summary Stop location tracking
// @Description Stop tracking a care group. Always succeeds. Requires API key.
// @Tags Tracking
// @Produce json
// @Security ApiKeyAuth
// @Param group_id path string true "Group ID"
// @Success 200 {object} StopTrackingResponse
// @Failure 400 {object} map[string]string "Invalid group ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /groups/{group_id}/tracking/stop [post]
func (h *Handler) stopTracking(c *gin.Context) {
	groupID, ok := h.groupID(c)
	if !ok {
		return
	}
	stopped := h.tracker.StopTracking(c.Request.Context(), groupID)
	c.JSON(http.StatusOK, StopTrackingResponse{Stopped: stopped})
}

// @Summary Get tracking status
// @Description Get whether tracking is active, the current location and the retained history. Requires API key.
// @Tags Tracking
// @Produce json
// @Security ApiKeyAuth
// @Param group_id path string true "Group ID"
// @Success 200 {object} TrackingStatusResponse
// @Failure 400 {object} map[string]string "Invalid group ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /groups/{group_id}/tracking [get]
func (h *Handler) trackingStatus(c *gin.Context) {
	groupID, ok := h.groupID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "trackingStatus").WithField("group_id", groupID)

	session, err := h.sessions.GetSession(c.Request.Context(), groupID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		log.WithError(err).Error("Failed to get tracking session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, SessionToStatusResponse(h.tracker.IsActive(groupID), session))
}

// @Summary Report device location
// @Description Push a location fix from the group's device. Requires API key.
// @Tags Device
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param group_id path string true "Group ID"
// @Param location body LocationReportRequest true "Location fix"
// @Success 202 "Accepted"
// @Failure 400 {object} map[string]string "Invalid group ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /groups/{group_id}/device/location [post]
func (h *Handler) reportLocation(c *gin.Context) {
	groupID, ok := h.groupID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "reportLocation").WithField("group_id", groupID)

	var input LocationReportRequest
	if !h.bind(c, log, &input) {
		return
	}
	h.devices.ReportLocation(groupID, LocationReportToSample(input))
	c.Status(http.StatusAccepted)
}

// @Summary Report device battery
// @Description Push the battery state of the group's device. Requires API key.
// @Tags Device
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param group_id path string true "Group ID"
// @Param battery body BatteryReportRequest true "Battery state"
// @Success 202 "Accepted"
// @Failure 400 {object} map[string]string "Invalid group ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /groups/{group_id}/device/battery [post]
func (h *Handler) reportBattery(c *gin.Context) {
	groupID, ok := h.groupID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "reportBattery").WithField("group_id", groupID)

	var input BatteryReportRequest
	if !h.bind(c, log, &input) {
		return
	}
	h.devices.ReportBattery(groupID, BatteryReportToStatus(input))
	c.Status(http.StatusAccepted)
}

// @Summary Set location permission
// @Description Set the location permission state reported by the group's device. Requires API key.
// @Tags Device
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param group_id path string true "Group ID"
// @Param permission body PermissionRequest true "Permission state"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid group ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /groups/{group_id}/device/permission [put]
func (h *Handler) setPermission(c *gin.Context) {
	groupID, ok := h.groupID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "setPermission").WithField("group_id", groupID)

	var input PermissionRequest
	if !h.bind(c, log, &input) {
		return
	}
	if err := h.devices.SetPermission(groupID, sensor.PermissionState(input.State)); err != nil {
		log.WithError(err).Warn("Failed to set permission")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Create a new geofence
// @Description Create a circle or polygon geofence for a care group. Requires API key.
// @Tags Geofences
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param group_id path string true "Group ID"
// @Param geofence body GeofenceRequest true "Geofence creation request"
// @Success 201 {object} GeofenceResponse
// @Failure 400 {object} map[string]string "Invalid request body, validation error or invalid geometry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /groups/{group_id}/geofences [post]
func (h *Handler) createGeofence(c *gin.Context) {
	groupID, ok := h.groupID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "createGeofence").WithField("group_id", groupID)

	var input GeofenceRequest
	if !h.bind(c, log, &input) {
		return
	}

	model := DTOToGeofenceModel(input, groupID)
	if err := h.geofenceService.CreateGeofence(c.Request.Context(), model); err != nil {
		if errors.Is(err, models.ErrInvalidGeometry) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.WithError(err).Error("Failed to create geofence in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToGeofenceResponse(model))
}

// @Summary Get a list of geofences
// @Description Get a paginated list of a group's geofences. Requires API key.
// @Tags Geofences
// @Produce json
// @Security ApiKeyAuth
// @Param group_id path string true "Group ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} GeofenceResponse
// @Failure 400 {object} map[string]string "Invalid group ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /groups/{group_id}/geofences [get]
func (h *Handler) listGeofences(c *gin.Context) {
	groupID, ok := h.groupID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "listGeofences").WithField("group_id", groupID)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	geofences, err := h.geofenceService.ListGeofences(c.Request.Context(), groupID, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list geofences from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToGeofenceResponses(geofences))
}

// @Summary Get geofence by ID
// @Description Get a single geofence by its ID. Requires API key.
// @Tags Geofences
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Geofence ID"
// @Success 200 {object} GeofenceResponse
// @Failure 400 {object} map[string]string "Invalid geofence ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Geofence not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /geofences/{id} [get]
func (h *Handler) getGeofence(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid geofence ID"})
		return
	}
	log := h.logger.WithField("method", "getGeofence").WithField("id", id)

	geofence, err := h.geofenceService.GetGeofence(c.Request.Context(), id)
	if err != nil {
		h.writeLookupError(c, log, err, "Failed to get geofence from service")
		return
	}
	c.JSON(http.StatusOK, ModelToGeofenceResponse(geofence))
}

// @Summary Update an existing geofence
// @Description Replace a geofence definition by ID. The owning group cannot be changed. Requires API key.
// @Tags Geofences
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Geofence ID"
// @Param geofence body GeofenceRequest true "Geofence update request"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid geofence ID, request body or geometry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Geofence not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /geofences/{id} [put]
func (h *Handler) updateGeofence(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid geofence ID"})
		return
	}
	log := h.logger.WithField("method", "updateGeofence").WithField("id", id)

	var input GeofenceRequest
	if !h.bind(c, log, &input) {
		return
	}

	// группу подставит сервис из существующей записи
	model := DTOToGeofenceModel(input, uuid.Nil)
	model.ID = id

	if err := h.geofenceService.UpdateGeofence(c.Request.Context(), model); err != nil {
		if errors.Is(err, models.ErrInvalidGeometry) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.writeLookupError(c, log, err, "Failed to update geofence in service")
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Deactivate a geofence
// @Description Deactivate a geofence by its ID. Its alert history is kept. Requires API key.
// @Tags Geofences
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Geofence ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid geofence ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Geofence not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /geofences/{id} [delete]
func (h *Handler) deleteGeofence(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid geofence ID"})
		return
	}
	log := h.logger.WithField("method", "deleteGeofence").WithField("id", id)

	if err := h.geofenceService.DeactivateGeofence(c.Request.Context(), id); err != nil {
		h.writeLookupError(c, log, err, "Failed to deactivate geofence in service")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeLookupError(c *gin.Context, log *logrus.Entry, err error, msg string) {
	if errors.Is(err, models.ErrNotFound) {
		log.WithError(err).Warn(msg)
		c.JSON(http.StatusNotFound, gin.H{"error": "geofence not found"})
		return
	}
	log.WithError(err).Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
