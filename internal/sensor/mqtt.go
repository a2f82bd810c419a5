package sensor

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/safezone_tracking/internal/config"
	"github.com/shenikar/safezone_tracking/internal/models"
	"github.com/sirupsen/logrus"
)

const mqttQoS = 1

var validate = validator.New()

// deviceLocation - фикс в сообщении устройства; координаты обязательны
type deviceLocation struct {
	Latitude  *float64   `json:"latitude" validate:"required,latitude"`
	Longitude *float64   `json:"longitude" validate:"required,longitude"`
	Accuracy  *float64   `json:"accuracy,omitempty" validate:"omitempty,gte=0"`
	Speed     *float64   `json:"speed,omitempty" validate:"omitempty,gte=0"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type deviceBattery struct {
	Level    *float64 `json:"level" validate:"required,gte=0,lte=100"`
	Charging bool     `json:"charging"`
}

// MQTTBridge принимает сообщения устройств вида <prefix>/<group_id>/<kind> и передает их в Hub
type MQTTBridge struct {
	client mqtt.Client
	hub    *Hub
	prefix string
	logger *logrus.Logger
}

// NewMQTTBridge подключается к брокеру из конфигурации
func NewMQTTBridge(cfg *config.Config, hub *Hub, logger *logrus.Logger) (*MQTTBridge, error) {
	b := &MQTTBridge{
		hub:    hub,
		prefix: cfg.MQTTTopicPrefix,
		logger: logger,
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTTBroker)
	opts.SetClientID(cfg.MQTTClientID)
	if cfg.MQTTUsername != "" {
		opts.SetUsername(cfg.MQTTUsername)
	}
	if cfg.MQTTPassword != "" {
		opts.SetPassword(cfg.MQTTPassword)
	}
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	// после переподключения подписки восстанавливаются заново
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		if err := b.subscribe(c); err != nil {
			logger.WithError(err).Error("Failed to subscribe to device topics")
		}
	})

	b.client = mqtt.NewClient(opts)
	if token := b.client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return b, nil
}

func (b *MQTTBridge) subscribe(c mqtt.Client) error {
	for _, kind := range []string{"location", "battery", "permission"} {
		topic := fmt.Sprintf("%s/+/%s", b.prefix, kind)
		token := c.Subscribe(topic, mqttQoS, func(_ mqtt.Client, msg mqtt.Message) {
			if err := b.handleMessage(msg.Topic(), msg.Payload()); err != nil {
				b.logger.WithError(err).WithField("topic", msg.Topic()).Warn("Dropping device message")
			}
		})
		if token.Wait() && token.Error() != nil {
			return fmt.Errorf("failed to subscribe to topic %s: %w", topic, token.Error())
		}
	}
	b.logger.WithField("prefix", b.prefix).Info("Subscribed to device topics")
	return nil
}

func (b *MQTTBridge) handleMessage(topic string, payload []byte) error {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != b.prefix {
		return fmt.Errorf("unexpected topic %q", topic)
	}
	groupID, err := uuid.Parse(parts[1])
	if err != nil {
		return fmt.Errorf("invalid group id in topic: %w", err)
	}

	switch parts[2] {
	case "location":
		var loc deviceLocation
		if err := json.Unmarshal(payload, &loc); err != nil {
			return fmt.Errorf("failed to unmarshal location: %w", err)
		}
		if err := validate.Struct(loc); err != nil {
			return fmt.Errorf("invalid location: %w", err)
		}
		sample := models.LocationSample{
			Latitude:  *loc.Latitude,
			Longitude: *loc.Longitude,
			Accuracy:  loc.Accuracy,
			Speed:     loc.Speed,
		}
		if loc.Timestamp != nil {
			sample.Timestamp = loc.Timestamp.UTC()
		}
		b.hub.ReportLocation(groupID, sample)
	case "battery":
		var battery deviceBattery
		if err := json.Unmarshal(payload, &battery); err != nil {
			return fmt.Errorf("failed to unmarshal battery status: %w", err)
		}
		if err := validate.Struct(battery); err != nil {
			return fmt.Errorf("invalid battery status: %w", err)
		}
		b.hub.ReportBattery(groupID, BatteryStatus{Level: *battery.Level, Charging: battery.Charging})
	case "permission":
		var body struct {
			State PermissionState `json:"state"`
		}
		if err := json.Unmarshal(payload, &body); err != nil {
			return fmt.Errorf("failed to unmarshal permission: %w", err)
		}
		return b.hub.SetPermission(groupID, body.State)
	default:
		return fmt.Errorf("unknown message kind %q", parts[2])
	}
	return nil
}

// Stop отключается от брокера
func (b *MQTTBridge) Stop() {
	b.client.Disconnect(250)
}
