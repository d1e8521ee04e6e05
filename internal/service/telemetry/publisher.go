package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/domain/intrusion"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/logger"
)

// connectTimeout bounds the initial broker handshake.
const connectTimeout = 5 * time.Second

// triggerMessage is the JSON payload published per accepted trigger.
type triggerMessage struct {
	Channel string    `json:"channel"`
	At      time.Time `json:"at"`
}

// Client is the subset of the MQTT client the publisher uses.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload any) mqtt.Token
	Disconnect(quiesce uint)
}

// Publisher sends trigger events to one topic.
type Publisher struct {
	client Client
	topic  string
}

// Connect dials the broker and returns a ready publisher.
func Connect(broker, clientID, topic string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(clientID)

	client := mqtt.NewClient(opts)
	token := client.Connect()

	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect to broker %s: timeout", broker)
	}

	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker %s: %w", broker, err)
	}

	return NewPublisher(client, topic), nil
}

// NewPublisher wraps an already connected client.
func NewPublisher(client Client, topic string) *Publisher {
	return &Publisher{client: client, topic: topic}
}

// Publish sends the trigger event fire-and-forget: the token is not waited
// on and a marshal failure is only logged. The alert pipeline never blocks
// or fails on telemetry.
func (p *Publisher) Publish(ctx context.Context, event intrusion.Event) {
	payload, err := json.Marshal(triggerMessage{Channel: event.Channel, At: event.At})
	if err != nil {
		logger.ErrorKV(ctx, "Trigger telemetry marshal failed", "error", err)
		return
	}

	p.client.Publish(p.topic, 0, false, payload)
}

// Close disconnects from the broker, allowing a short quiesce for
// in-flight publishes.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
