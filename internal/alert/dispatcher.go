// Package alert превращает результаты проверки геозон в оповещения, экстренные отметки и SMS.
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/safezone_tracking/internal/models"
	"github.com/shenikar/safezone_tracking/internal/realtime"
	"github.com/shenikar/safezone_tracking/internal/webhook"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=dispatcher.go -destination=mocks/dispatcher_mock.go -package=mocks

type Repository interface {
	CreateAlert(ctx context.Context, alert *models.GeofenceAlert) error
	CreateCheckIn(ctx context.Context, checkIn *models.EmergencyCheckIn) error
}

type EventPublisher interface {
	Publish(ctx context.Context, table string, groupID uuid.UUID, eventType string, record any) error
}

// Notifier - внешний шлюз SMS
type Notifier interface {
	Notify(ctx context.Context, n webhook.Notification) error
}

type Dispatcher struct {
	repo     Repository
	events   EventPublisher
	notifier Notifier
	logger   *logrus.Logger
	now      func() time.Time
}

func NewDispatcher(repo Repository, events EventPublisher, notifier Notifier, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		events:   events,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Notifiable сообщает, порождает ли кандидат оповещение при данных настройках
func Notifiable(c models.ViolationCandidate, settings models.NotificationSettings) bool {
	return (c.IsOutside && settings.ExitAlert) || (!c.IsOutside && settings.EnterAlert) || c.InDangerZone
}

// AlertTypeFor выбирает тип оповещения: опасная зона важнее выхода
func AlertTypeFor(c models.ViolationCandidate) models.AlertType {
	switch {
	case c.InDangerZone:
		return models.AlertTypeDanger
	case c.IsOutside:
		return models.AlertTypeExit
	default:
		return models.AlertTypeEnter
	}
}

// Dispatch обрабатывает кандидатов последовательно, в порядке вычислителя.
// Ошибка записи одного кандидата логируется и не мешает остальным.
func (d *Dispatcher) Dispatch(ctx context.Context, groupID uuid.UUID, sample models.LocationSample, candidates []models.ViolationCandidate, geofences []*models.Geofence) {
	byID := make(map[uuid.UUID]*models.Geofence, len(geofences))
	for _, g := range geofences {
		if g != nil {
			byID[g.ID] = g
		}
	}

	for _, c := range candidates {
		g, ok := byID[c.GeofenceID]
		if !ok {
			d.logger.WithFields(logrus.Fields{
				"group_id":    groupID,
				"geofence_id": c.GeofenceID,
			}).Warn("Candidate references unknown geofence, skipping")
			continue
		}
		d.dispatchOne(ctx, groupID, sample, c, g)
	}
}

func (d *Dispatcher) dispatchOne(ctx context.Context, groupID uuid.UUID, sample models.LocationSample, c models.ViolationCandidate, g *models.Geofence) {
	settings := g.Settings()
	if !Notifiable(c, settings) {
		return
	}

	log := d.logger.WithFields(logrus.Fields{
		"component":   "alert",
		"group_id":    groupID,
		"geofence_id": g.ID,
	})

	var dangerZoneType *string
	if c.InDangerZone && c.DangerZoneType != "" {
		zoneType := c.DangerZoneType
		dangerZoneType = &zoneType
	}

	alert := &models.GeofenceAlert{
		GroupID:        groupID,
		GeofenceID:     g.ID,
		Location:       sample,
		AlertType:      AlertTypeFor(c),
		DangerZoneType: dangerZoneType,
		Status:         models.AlertStatusUnresolved,
	}
	if err := d.repo.CreateAlert(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to persist geofence alert")
		return
	}
	log = log.WithFields(logrus.Fields{"alert_id": alert.ID, "alert_type": alert.AlertType})
	log.Info("Geofence alert created")

	if err := d.events.Publish(ctx, realtime.TableGeofenceAlerts, groupID, realtime.EventInsert, alert); err != nil {
		log.WithError(err).Warn("Failed to publish alert event")
	}

	if c.IsOutside || c.InDangerZone {
		checkIn := &models.EmergencyCheckIn{
			GroupID:     groupID,
			CheckInType: models.CheckInTypeEmergency,
			Status:      models.CheckInStatusUrgent,
			ResponseData: models.CheckInResponseData{
				Type:           alert.AlertType,
				Location:       sample,
				GeofenceID:     g.ID,
				DangerZoneType: dangerZoneType,
				TriggeredAt:    d.now().UTC(),
			},
		}
		if err := d.repo.CreateCheckIn(ctx, checkIn); err != nil {
			log.WithError(err).Error("Failed to persist emergency check-in")
		}
	}

	if settings.SMSAlert {
		n := webhook.Notification{
			GroupID:        groupID,
			GeofenceID:     g.ID,
			GeofenceName:   g.Name,
			AlertType:      string(alert.AlertType),
			DangerZoneType: c.DangerZoneType,
			Latitude:       sample.Latitude,
			Longitude:      sample.Longitude,
			Message:        notificationMessage(g, alert.AlertType, c.DangerZoneType),
			Timestamp:      sample.Timestamp,
		}
		if err := d.notifier.Notify(ctx, n); err != nil {
			log.WithError(err).Warn("Failed to enqueue SMS notification")
		}
	}
}

func notificationMessage(g *models.Geofence, alertType models.AlertType, zoneType string) string {
	switch alertType {
	case models.AlertTypeDanger:
		if zoneType == "" {
			return fmt.Sprintf("Entered a danger zone inside %q", g.Name)
		}
		return fmt.Sprintf("Entered a %s danger zone inside %q", zoneType, g.Name)
	case models.AlertTypeExit:
		return fmt.Sprintf("Left safe zone %q", g.Name)
	default:
		return fmt.Sprintf("Entered safe zone %q", g.Name)
	}
}
