package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/biosecret/go-todo/config"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const mqttConnectTimeout = 3 * time.Second

// MQTTPublisher publish mọi sự kiện dạng JSON lên một topic
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
}

func createClientOptions(clientID string, cfg config.MQTTConfig) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	return opts
}

// ConnectMQTT kết nối tới MQTT broker và chờ bắt tay xong
func ConnectMQTT(clientID string, cfg config.MQTTConfig) (*MQTTPublisher, error) {
	client := mqtt.NewClient(createClientOptions(clientID, cfg))
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("connect to mqtt broker %s: timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", cfg.Broker, err)
	}
	return &MQTTPublisher{client: client, topic: cfg.Topic}, nil
}

func (p *MQTTPublisher) Notify(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.topic, 0, false, payload)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return fmt.Errorf("mqtt publish to %s: %w", p.topic, ctx.Err())
	}
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
