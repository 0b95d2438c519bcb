// Package events publishes listing lifecycle notifications over MQTT so
// downstream consumers (inventory dashboards, cache invalidation) can
// react to changes. Publishing is fire-and-forget: a broker outage never
// fails the triggering operation.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/imperialtrucks/truck-market/internal/models"
)

// ListingEvent is the payload published on every listing change.
type ListingEvent struct {
	Action    string       `json:"action"`
	Truck     models.Truck `json:"truck"`
	Timestamp time.Time    `json:"timestamp"`
}

// MQTTPublisher publishes listing events to <prefix>/trucks/<action>.
type MQTTPublisher struct {
	client      mqtt.Client
	topicPrefix string
}

// NewMQTT connects to the broker and returns a publisher.
func NewMQTT(brokerURL, topicPrefix, clientID string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}
	return &MQTTPublisher{client: client, topicPrefix: topicPrefix}, nil
}

// Publish sends the event. Failures are logged, never returned.
func (p *MQTTPublisher) Publish(action string, t models.Truck) {
	payload, err := json.Marshal(ListingEvent{
		Action:    action,
		Truck:     t,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		log.WithError(err).Warn("could not encode listing event")
		return
	}

	topic := fmt.Sprintf("%s/trucks/%s", p.topicPrefix, action)
	token := p.client.Publish(topic, 0, false, payload)
	go func() {
		if token.Wait() && token.Error() != nil {
			log.WithError(token.Error()).WithField("topic", topic).Warn("could not publish listing event")
		}
	}()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
