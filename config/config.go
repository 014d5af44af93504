// Package config loads prtgctl settings from a YAML file and credential
// profiles from an INI file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"prtgctl/auth"
)

type Config struct {
	Server   string        `yaml:"server"`
	Username string        `yaml:"username"`
	PassHash string        `yaml:"passhash"`
	Locale   string        `yaml:"locale"`
	Timeout  time.Duration `yaml:"timeout"`
	// Version pins the PRTG version, e.g. "18.1", instead of probing it.
	Version string        `yaml:"version"`
	Log     LogConfig     `yaml:"log"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MQTTConfig enables change notifications when Broker is set.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Topic    string `yaml:"topic"`
	QoS      byte   `yaml:"qos"`
}

func (m MQTTConfig) Enabled() bool { return m.Broker != "" }

// MetricsConfig serves Prometheus metrics when Listen is set.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// Default is the configuration used when no file is given.
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Locale == "" {
		c.Locale = "en-US"
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.MQTT.Enabled() {
		if c.MQTT.ClientID == "" {
			c.MQTT.ClientID = "prtgctl"
		}
		if c.MQTT.Topic == "" {
			c.MQTT.Topic = "prtgctl/changes"
		}
	}
}

func (c *Config) validate() error {
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt qos must be 0, 1 or 2, got %d", c.MQTT.QoS)
	}
	if c.Server != "" {
		if _, err := auth.Server(c.Server); err != nil {
			return err
		}
	}
	return nil
}

// Credentials returns the username and passhash from the file.
func (c *Config) Credentials() auth.Credentials {
	return auth.Credentials{Username: c.Username, PassHash: c.PassHash}
}

// Profile is a named set of connection settings.
type Profile struct {
	Server   string
	Username string
	PassHash string
}

func (p Profile) Credentials() auth.Credentials {
	return auth.Credentials{Username: p.Username, PassHash: p.PassHash}
}

// LoadProfile reads section name from an INI file of the form
//
//	[production]
//	server   = prtg.example.com
//	username = prtgadmin
//	passhash = 1234567890
func LoadProfile(path, name string) (*Profile, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	if !f.HasSection(name) {
		return nil, fmt.Errorf("profile %q not found in %s", name, path)
	}
	sec := f.Section(name)

	p := &Profile{
		Server:   sec.Key("server").String(),
		Username: sec.Key("username").String(),
		PassHash: sec.Key("passhash").String(),
	}
	if p.Server == "" {
		return nil, fmt.Errorf("profile %q: server is required", name)
	}
	if err := p.Credentials().Validate(); err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	return p, nil
}

// Apply overrides the connection settings of c with p.
func (c *Config) Apply(p *Profile) {
	c.Server = p.Server
	c.Username = p.Username
	c.PassHash = p.PassHash
}
