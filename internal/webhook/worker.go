package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safezone_tracking/internal/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// NotificationWorker - забирает уведомления из очереди и отправляет их на шлюз SMS
type NotificationWorker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
	limiter     *rate.Limiter
	done        chan struct{}
}

// NewNotificationWorker создает новый NotificationWorker
func NewNotificationWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *NotificationWorker {
	limit := rate.Inf
	if cfg.NotifyRatePerSecond > 0 {
		limit = rate.Limit(cfg.NotifyRatePerSecond)
	}
	return &NotificationWorker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.NotifyWebhookTimeout,
		},
		limiter: rate.NewLimiter(limit, 1),
		done:    make(chan struct{}),
	}
}

// Start запускает горутину для обработки очереди уведомлений
func (w *NotificationWorker) Start(ctx context.Context) {
	w.logger.Info("Starting notification worker...")
	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping notification worker.")
				return
			default:
				// 0 - бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, notificationQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop notification from Redis")
					sleep(ctx, w.cfg.NotifyWebhookTimeout)
					continue
				}

				// result[0] - ключ, result[1] - значение
				payload := result[1]
				var n Notification
				if err := json.Unmarshal([]byte(payload), &n); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal notification from Redis")
					continue
				}

				w.processNotification(ctx, n, payload)
			}
		}
	}()
}

// Done закрывается после остановки воркера
func (w *NotificationWorker) Done() <-chan struct{} {
	return w.done
}

func (w *NotificationWorker) processNotification(ctx context.Context, n Notification, rawPayload string) bool {
	log := w.logger.WithField("group_id", n.GroupID).WithField("alert_type", n.AlertType)
	log.Debug("Processing notification...")

	if w.cfg.NotifyWebhookURL == "" {
		log.Warn("Notification webhook URL is not configured. Skipping delivery.")
		return false
	}

	maxRetries := w.cfg.NotifyMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	delay := w.cfg.NotifyBaseDelay

	for i := 0; i < maxRetries; i++ {
		if err := w.limiter.Wait(ctx); err != nil {
			log.WithError(err).Warn("Notification delivery cancelled")
			return false
		}

		err := w.deliver(ctx, rawPayload)
		if err == nil {
			log.Info("Notification delivered successfully.")
			return true
		}
		log.WithError(err).Warnf("Notification delivery failed. Retrying in %v. Retries left: %d", delay, maxRetries-1-i)
		if i < maxRetries-1 {
			if !sleep(ctx, delay) {
				return false
			}
			delay *= 2 // экспоненциальная задержка
		}
	}

	log.Errorf("Failed to deliver notification after %d retries.", maxRetries)
	return false
}

func (w *NotificationWorker) deliver(ctx context.Context, rawPayload string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.NotifyWebhookURL, bytes.NewBufferString(rawPayload))
	if err != nil {
		return fmt.Errorf("failed to create notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// HMAC подпись, если секрет задан
	if w.cfg.NotifyWebhookSecret != "" {
		req.Header.Set("X-Webhook-Signature", generateHMACSHA256(rawPayload, w.cfg.NotifyWebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification gateway responded with status %d", resp.StatusCode)
	}
	return nil
}

// sleep ждет d или отмены контекста; false если контекст отменен
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
