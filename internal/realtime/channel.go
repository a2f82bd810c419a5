// Package realtime - события об изменении строк хранилища, разосланные через Redis Pub/Sub
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	TableTrackingSessions = "tracking_sessions"
	TableGeofenceAlerts   = "geofence_alerts"

	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
)

// Event - событие изменения строки таблицы для группы
type Event struct {
	Table   string          `json:"table"`
	Type    string          `json:"type"`
	GroupID uuid.UUID       `json:"group_id"`
	Record  json.RawMessage `json:"record"`
}

type Subscription interface {
	Unsubscribe() error
}

// Channel - подписка на изменения строк таблицы с фильтром по группе
type Channel interface {
	Publish(ctx context.Context, table string, groupID uuid.UUID, eventType string, record any) error
	Subscribe(ctx context.Context, table string, groupID uuid.UUID, onEvent func(Event)) (Subscription, error)
}

type RedisChannel struct {
	redisClient *redis.Client
	logger      *logrus.Logger
}

func NewRedisChannel(client *redis.Client, logger *logrus.Logger) *RedisChannel {
	return &RedisChannel{
		redisClient: client,
		logger:      logger,
	}
}

func channelName(table string, groupID uuid.UUID) string {
	return fmt.Sprintf("realtime:%s:%s", table, groupID)
}

// Publish рассылает событие подписчикам группы
func (c *RedisChannel) Publish(ctx context.Context, table string, groupID uuid.UUID, eventType string, record any) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal realtime record: %w", err)
	}
	payload, err := json.Marshal(Event{Table: table, Type: eventType, GroupID: groupID, Record: raw})
	if err != nil {
		return fmt.Errorf("failed to marshal realtime event: %w", err)
	}
	if err := c.redisClient.Publish(ctx, channelName(table, groupID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish realtime event: %w", err)
	}
	return nil
}

// Subscribe вызывает onEvent для каждого события группы, пока подписка не отменена
func (c *RedisChannel) Subscribe(ctx context.Context, table string, groupID uuid.UUID, onEvent func(Event)) (Subscription, error) {
	name := channelName(table, groupID)
	pubsub := c.redisClient.Subscribe(ctx, name)
	// ждем подтверждения подписки, иначе ранние события теряются
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", name, err)
	}

	messages := pubsub.Channel()
	go func() {
		for msg := range messages {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				c.logger.WithError(err).WithField("channel", name).Warn("Failed to unmarshal realtime event")
				continue
			}
			onEvent(event)
		}
	}()

	return &redisSubscription{pubsub: pubsub}, nil
}

type redisSubscription struct {
	once   sync.Once
	pubsub *redis.PubSub
	err    error
}

func (s *redisSubscription) Unsubscribe() error {
	s.once.Do(func() {
		s.err = s.pubsub.Close()
	})
	return s.err
}
