package alarm

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// Stopper lets the dispatcher tear down the in-process delivery session when
// a hard stop is requested.
type Stopper interface {
	Stop() bool
}

// MQTT connection handler
var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

// MQTT connection lost handler
var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// NewMQTTClient connects a client to the broker with the engine's handlers.
func NewMQTTClient(brokerURL, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return client, nil
}

// MQTTDispatcher publishes alarm instructions to the device's alarm daemon
// over its command topic.
type MQTTDispatcher struct {
	client   mqtt.Client
	deviceID string

	// ExactAlarmsAllowed mirrors the daemon's reported exact-alarm
	// permission; scheduling proceeds regardless of its value.
	ExactAlarmsAllowed bool

	stopper Stopper
}

var _ Dispatcher = (*MQTTDispatcher)(nil)

func NewMQTTDispatcher(client mqtt.Client, deviceID string) *MQTTDispatcher {
	return &MQTTDispatcher{client: client, deviceID: deviceID, ExactAlarmsAllowed: true}
}

// SetStopper registers the local delivery session used for hard stops.
func (d *MQTTDispatcher) SetStopper(s Stopper) {
	d.stopper = s
}

func (d *MQTTDispatcher) commandTopic() string {
	return fmt.Sprintf("alarm/%s/commands", d.deviceID)
}

func (d *MQTTDispatcher) publish(cmd Command) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	token := d.client.Publish(d.commandTopic(), 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish %s command for %q: %w", cmd.Action, cmd.ID, token.Error())
	}
	return nil
}

func (d *MQTTDispatcher) ScheduleExact(id string, triggerAt time.Time, label, soundID string) error {
	return d.publish(Command{
		Action:      "schedule",
		ID:          id,
		TriggerAtMs: triggerAt.UnixMilli(),
		Label:       label,
		SoundID:     soundID,
	})
}

func (d *MQTTDispatcher) ScheduleExactRepeating(id string, firstAt time.Time, label, soundID string, intervalMinutes int, openUI bool) error {
	return d.publish(Command{
		Action:          "schedule_repeating",
		ID:              id,
		TriggerAtMs:     firstAt.UnixMilli(),
		Label:           label,
		SoundID:         soundID,
		IntervalMinutes: intervalMinutes,
		OpenUI:          openUI,
	})
}

func (d *MQTTDispatcher) Cancel(id string) error {
	return d.publish(Command{Action: "cancel", ID: id})
}

func (d *MQTTDispatcher) StopActiveDelivery() bool {
	if err := d.publish(Command{Action: "stop"}); err != nil {
		log.Error().Err(err).Msg("failed to publish stop command")
	}
	if d.stopper == nil {
		return false
	}
	return d.stopper.Stop()
}

func (d *MQTTDispatcher) HasExactAlarmPermission() bool {
	return d.ExactAlarmsAllowed
}
