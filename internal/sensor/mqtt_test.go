package sensor

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBridge() (*MQTTBridge, *Hub) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	hub := NewHub(time.Minute)
	return &MQTTBridge{hub: hub, prefix: "care", logger: logger}, hub
}

func TestMQTTBridge_HandleLocation(t *testing.T) {
	bridge, hub := newTestBridge()
	groupID := uuid.New()

	err := bridge.handleMessage("care/"+groupID.String()+"/location",
		[]byte(`{"latitude":55.75,"longitude":37.61,"speed":1.5,"timestamp":"2026-01-02T10:00:00Z"}`))
	require.NoError(t, err)

	s, err := hub.Sensors(groupID)
	require.NoError(t, err)
	sample, err := s.CurrentPosition(context.Background(), false, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 55.75, sample.Latitude)
	require.NotNil(t, sample.Speed)
	assert.Equal(t, 1.5, *sample.Speed)
	assert.Equal(t, 2026, sample.Timestamp.Year())
}

func TestMQTTBridge_HandleBatteryAndPermission(t *testing.T) {
	bridge, hub := newTestBridge()
	groupID := uuid.New()

	require.NoError(t, bridge.handleMessage("care/"+groupID.String()+"/permission", []byte(`{"state":"granted"}`)))
	require.NoError(t, bridge.handleMessage("care/"+groupID.String()+"/battery", []byte(`{"level":42,"charging":true}`)))

	s, err := hub.Sensors(groupID)
	require.NoError(t, err)
	state, _ := s.RequestPermission(context.Background())
	assert.Equal(t, PermissionGranted, state)
	status, err := s.BatteryStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, BatteryStatus{Level: 42, Charging: true}, status)
}

func TestMQTTBridge_RejectsBadMessages(t *testing.T) {
	bridge, _ := newTestBridge()
	groupID := uuid.New().String()

	assert.Error(t, bridge.handleMessage("other/"+groupID+"/location", []byte(`{}`)))
	assert.Error(t, bridge.handleMessage("care/not-a-uuid/location", []byte(`{}`)))
	assert.Error(t, bridge.handleMessage("care/"+groupID+"/location", []byte(`{`)))
	assert.Error(t, bridge.handleMessage("care/"+groupID+"/speed", []byte(`{}`)))
	assert.Error(t, bridge.handleMessage("care/"+groupID+"/permission", []byte(`{"state":"perhaps"}`)))
}

func TestMQTTBridge_RejectsMissingCoordinates(t *testing.T) {
	bridge, hub := newTestBridge()
	groupID := uuid.New()
	topic := "care/" + groupID.String() + "/location"

	assert.Error(t, bridge.handleMessage(topic, []byte(`{"speed":1}`)))
	assert.Error(t, bridge.handleMessage(topic, []byte(`{"latitude":55.75}`)))
	assert.Error(t, bridge.handleMessage(topic, []byte(`{"latitude":91,"longitude":37.61}`)))
	assert.Error(t, bridge.handleMessage(topic, []byte(`{"latitude":55.75,"longitude":-181}`)))
	assert.Error(t, bridge.handleMessage(topic, []byte(`{"latitude":55.75,"longitude":37.61,"accuracy":-1}`)))

	// ни одно сообщение не стало фиксом, устройство не зарегистрировано
	_, err := hub.Sensors(groupID)
	assert.ErrorIs(t, err, ErrCapabilityUnavailable)
}

func TestMQTTBridge_AcceptsZeroCoordinatesWhenPresent(t *testing.T) {
	bridge, hub := newTestBridge()
	groupID := uuid.New()

	require.NoError(t, bridge.handleMessage("care/"+groupID.String()+"/location", []byte(`{"latitude":0,"longitude":0}`)))

	s, err := hub.Sensors(groupID)
	require.NoError(t, err)
	sample, err := s.CurrentPosition(context.Background(), false, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sample.Latitude)
	assert.False(t, sample.Timestamp.IsZero())
}

func TestMQTTBridge_RejectsBadBattery(t *testing.T) {
	bridge, _ := newTestBridge()
	topic := "care/" + uuid.New().String() + "/battery"

	assert.Error(t, bridge.handleMessage(topic, []byte(`{"charging":true}`)))
	assert.Error(t, bridge.handleMessage(topic, []byte(`{"level":120}`)))
}
