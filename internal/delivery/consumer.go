package delivery

import (
	"context"
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/captian10/adhan-engine/internal/alarm"
)

// Consumer reacts to alarm-daemon events: fired tickets start a delivery
// session, stop commands tear it down. It runs in whatever process hosts the
// engine, independent of the planner that armed the alarms.
type Consumer struct {
	client   mqtt.Client
	deviceID string
	session  *Session
}

func NewConsumer(client mqtt.Client, deviceID string, session *Session) *Consumer {
	return &Consumer{client: client, deviceID: deviceID, session: session}
}

func (c *Consumer) firedTopic() string {
	return fmt.Sprintf("alarm/%s/fired", c.deviceID)
}

func (c *Consumer) stopTopic() string {
	return fmt.Sprintf("alarm/%s/stop", c.deviceID)
}

// Subscribe attaches the consumer to its topics.
func (c *Consumer) Subscribe() error {
	if token := c.client.Subscribe(c.firedTopic(), 1, c.onFired); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", c.firedTopic(), token.Error())
	}
	if token := c.client.Subscribe(c.stopTopic(), 1, c.onStop); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", c.stopTopic(), token.Error())
	}
	log.Info().Str("device", c.deviceID).Msg("delivery consumer subscribed")
	return nil
}

func (c *Consumer) onFired(client mqtt.Client, msg mqtt.Message) {
	var ev alarm.FiredEvent
	if err := json.Unmarshal(msg.Payload(), &ev); err != nil {
		log.Error().Err(err).Str("topic", msg.Topic()).Msg("bad fired event payload")
		return
	}
	if err := c.session.Start(context.Background(), ev.ID, ev.SoundID, ev.Label); err != nil {
		log.Error().Err(err).Str("ticket_id", ev.ID).Msg("delivery failed")
	}
}

func (c *Consumer) onStop(client mqtt.Client, msg mqtt.Message) {
	stopped := c.session.Stop()
	log.Info().Bool("stopped", stopped).Msg("stop command received")
}
