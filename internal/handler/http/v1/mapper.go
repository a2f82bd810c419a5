package v1

import (
	"github.com/google/uuid"
	"github.com/shenikar/safezone_tracking/internal/models"
	"github.com/shenikar/safezone_tracking/internal/sensor"
	"github.com/shenikar/safezone_tracking/internal/tracking"
)

// DTOToGeofenceModel преобразует DTO запроса в доменную модель группы groupID
func DTOToGeofenceModel(dto GeofenceRequest, groupID uuid.UUID) *models.Geofence {
	g := &models.Geofence{
		GroupID:            groupID,
		Name:               dto.Name,
		BoundaryType:       models.BoundaryType(dto.BoundaryType),
		RadiusMeters:       dto.RadiusMeters,
		PolygonCoordinates: dto.PolygonCoordinates,
		Active:             true,
	}
	if dto.Center != nil && dto.Center.Lat != nil && dto.Center.Lng != nil {
		g.Center = &models.LatLng{Lat: *dto.Center.Lat, Lng: *dto.Center.Lng}
	}
	for _, z := range dto.DangerZones {
		g.DangerZones = append(g.DangerZones, models.DangerZone{
			TypeID:      z.TypeID,
			Type:        z.Type,
			Name:        z.Name,
			Coordinates: z.Coordinates,
		})
	}
	if s := dto.NotificationSettings; s != nil {
		g.NotificationSettings = &models.NotificationSettings{
			ExitAlert:  s.ExitAlert,
			EnterAlert: s.EnterAlert,
			SMSAlert:   s.SMSAlert,
		}
	}
	return g
}

// ModelToGeofenceResponse преобразует доменную модель в DTO для ответа.
// Отсутствующие настройки уведомлений показываются значениями по умолчанию.
func ModelToGeofenceResponse(model *models.Geofence) *GeofenceResponse {
	settings := model.Settings()
	resp := &GeofenceResponse{
		ID:                 model.ID,
		GroupID:            model.GroupID,
		Name:               model.Name,
		BoundaryType:       string(model.BoundaryType),
		RadiusMeters:       model.RadiusMeters,
		PolygonCoordinates: model.PolygonCoordinates,
		NotificationSettings: NotificationSettingsDTO{
			ExitAlert:  settings.ExitAlert,
			EnterAlert: settings.EnterAlert,
			SMSAlert:   settings.SMSAlert,
		},
		Active:    model.Active,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.Center != nil {
		lat, lng := model.Center.Lat, model.Center.Lng
		resp.Center = &LatLngDTO{Lat: &lat, Lng: &lng}
	}
	for _, z := range model.DangerZones {
		resp.DangerZones = append(resp.DangerZones, DangerZoneDTO{
			TypeID:      z.TypeID,
			Type:        z.Type,
			Name:        z.Name,
			Coordinates: z.Coordinates,
		})
	}
	return resp
}

// ModelsToGeofenceResponses преобразует слайс моделей в слайс DTO
func ModelsToGeofenceResponses(models []*models.Geofence) []*GeofenceResponse {
	responses := make([]*GeofenceResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToGeofenceResponse(model)
	}
	return responses
}

func StartResultToResponse(result tracking.StartResult) StartTrackingResponse {
	return StartTrackingResponse{
		Started:    result.Started,
		Reason:     string(result.Reason),
		LowBattery: result.LowBattery,
	}
}

func sampleToLocationDTO(s models.LocationSample) LocationDTO {
	return LocationDTO{
		Latitude:     s.Latitude,
		Longitude:    s.Longitude,
		Accuracy:     s.Accuracy,
		Speed:        s.Speed,
		Timestamp:    s.Timestamp,
		BatteryLevel: s.BatteryLevel,
		ActivityType: string(s.ActivityType),
	}
}

// SessionToStatusResponse собирает ответ о состоянии; session может отсутствовать
func SessionToStatusResponse(active bool, session *models.TrackingSession) TrackingStatusResponse {
	resp := TrackingStatusResponse{
		Active:          active,
		LocationHistory: []LocationDTO{},
	}
	if session == nil {
		return resp
	}
	resp.Enabled = session.Enabled
	if session.CurrentLocation != nil {
		current := sampleToLocationDTO(*session.CurrentLocation)
		resp.CurrentLocation = &current
	}
	for _, s := range session.LocationHistory {
		resp.LocationHistory = append(resp.LocationHistory, sampleToLocationDTO(s))
	}
	return resp
}

// LocationReportToSample - время приема подставит Hub, если устройство его не прислало
func LocationReportToSample(dto LocationReportRequest) models.LocationSample {
	sample := models.LocationSample{
		Latitude:  *dto.Latitude,
		Longitude: *dto.Longitude,
		Accuracy:  dto.Accuracy,
		Speed:     dto.Speed,
	}
	if dto.Timestamp != nil {
		sample.Timestamp = dto.Timestamp.UTC()
	}
	return sample
}

func BatteryReportToStatus(dto BatteryReportRequest) sensor.BatteryStatus {
	return sensor.BatteryStatus{Level: *dto.Level, Charging: dto.Charging}
}
