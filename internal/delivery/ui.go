package delivery

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// MQTTUILauncher pushes the full-screen deep link to the host UI topic.
type MQTTUILauncher struct {
	client   mqtt.Client
	deviceID string
}

var _ UILauncher = (*MQTTUILauncher)(nil)

func NewMQTTUILauncher(client mqtt.Client, deviceID string) *MQTTUILauncher {
	return &MQTTUILauncher{client: client, deviceID: deviceID}
}

func (l *MQTTUILauncher) OpenAdhanScreen(prayer string) error {
	topic := fmt.Sprintf("alarm/%s/ui", l.deviceID)
	link := DeepLink(prayer)
	token := l.client.Publish(topic, 1, false, link)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish deep link: %w", token.Error())
	}
	log.Info().Str("deep_link", link).Msg("opened adhan screen")
	return nil
}
