// Package notify publishes a message to an MQTT broker for every change
// applied to a PRTG server.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	jsoniter "github.com/json-iterator/go"
)

// Change describes one applied request. Only parameter names are carried;
// values may hold credentials.
type Change struct {
	RequestID string    `json:"request_id"`
	Endpoint  string    `json:"endpoint"`
	ObjectIDs []int     `json:"object_ids"`
	Channel   *int      `json:"channel,omitempty"`
	Params    []string  `json:"params"`
	Applied   time.Time `json:"applied"`
}

type Options struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
	QoS      byte
	// ConnectTimeout bounds Connect. Defaults to 30s.
	ConnectTimeout time.Duration
}

// tokenPublisher is the part of mqtt.Client the publisher needs.
type tokenPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

type Publisher struct {
	client mqtt.Client
	pub    tokenPublisher
	topic  string
	qos    byte
	opts   Options
	logger *slog.Logger
}

func NewPublisher(o Options, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	if o.ConnectTimeout == 0 {
		o.ConnectTimeout = 30 * time.Second
	}
	p := &Publisher{topic: o.Topic, qos: o.QoS, opts: o, logger: logger}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(o.Broker)
	opts.SetClientID(o.ClientID)
	if o.Username != "" {
		opts.SetUsername(o.Username)
		opts.SetPassword(o.Password)
	}
	opts.SetCleanSession(true)
	opts.SetKeepAlive(2 * time.Minute)
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(p.onConnect)
	opts.SetConnectionLostHandler(p.onDisconnect)
	opts.SetProtocolVersion(4)

	p.client = mqtt.NewClient(opts)
	p.pub = p.client

	mqtt.ERROR = slog.NewLogLogger(logger.Handler(), slog.LevelError)
	mqtt.CRITICAL = slog.NewLogLogger(logger.Handler(), slog.LevelError)
	return p
}

func (p *Publisher) Connect(ctx context.Context) error {
	if p.client.IsConnected() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, p.opts.ConnectTimeout)
	defer cancel()
	if err := wait(ctx, p.client.Connect()); err != nil {
		return fmt.Errorf("connect to %s: %w", p.opts.Broker, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

// Notify publishes c to the configured topic.
func (p *Publisher) Notify(ctx context.Context, c Change) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}
	return wait(ctx, p.pub.Publish(p.topic, p.qos, false, data))
}

func (p *Publisher) onConnect(mqtt.Client) {
	p.logger.Info("connected to mqtt broker", "broker", p.opts.Broker)
}

func (p *Publisher) onDisconnect(_ mqtt.Client, err error) {
	p.logger.Warn("mqtt connection lost", "broker", p.opts.Broker, "error", err)
}

var encoder = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// Encode renders c as JSON. HTML characters such as & are kept as is.
func Encode(c Change) ([]byte, error) {
	if c.Params == nil {
		c.Params = []string{}
	}
	data, err := encoder.Marshal(c)
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace(data), nil
}

func wait(ctx context.Context, t mqtt.Token) error {
	select {
	case <-t.Done():
		return t.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}
