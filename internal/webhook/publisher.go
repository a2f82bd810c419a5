package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	notificationQueueKey = "notification_events"
)

// Notification - сообщение для внешнего шлюза SMS
type Notification struct {
	GroupID        uuid.UUID `json:"group_id"`
	GeofenceID     uuid.UUID `json:"geofence_id"`
	GeofenceName   string    `json:"geofence_name"`
	AlertType      string    `json:"alert_type"`
	DangerZoneType string    `json:"danger_zone_type,omitempty"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Message        string    `json:"message"`
	Timestamp      time.Time `json:"timestamp"`
}

// RedisNotifier - ставит уведомления в очередь Redis, доставку выполняет NotificationWorker
type RedisNotifier struct {
	redisClient *redis.Client
}

// NewRedisNotifier создает новый RedisNotifier
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{
		redisClient: client,
	}
}

// Notify публикует уведомление в очередь Redis
func (p *RedisNotifier) Notify(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	// LPUSH в левую часть, воркер забирает справа через BRPOP
	if err := p.redisClient.LPush(ctx, notificationQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification to Redis: %w", err)
	}
	return nil
}
