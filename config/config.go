// Package config defines the client configuration surface: server address,
// websocket path, pool sizing, keep-alive interval and transport options.
// Configuration is read once at startup and passed into workers; there is no
// ambient global.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coingaming/gremlex/errors"
)

// Defaults applied by DefaultConfig
const (
	DefaultPort        = 8182
	DefaultPath        = "/gremlin"
	DefaultPoolSize    = 4
	DefaultMaxOverflow = 0
	DefaultPingDelay   = 60 * time.Second
)

// TLSOpts configures TLS for wss:// connections. The system CA bundle is
// always trusted; CAFiles add further roots, and a certificate/key pair
// enables mutual TLS.
type TLSOpts struct {
	CAFiles    []string `json:"ca_files,omitempty"    yaml:"ca_files,omitempty"`
	CertFile   string   `json:"cert_file,omitempty"   yaml:"cert_file,omitempty"`
	KeyFile    string   `json:"key_file,omitempty"    yaml:"key_file,omitempty"`
	MinVersion string   `json:"min_version,omitempty" yaml:"min_version,omitempty"`
	// InsecureSkipVerify disables TLS certificate verification (testing only).
	InsecureSkipVerify bool `json:"insecure_skip_verify,omitempty" yaml:"insecure_skip_verify,omitempty"`
}

// Opts carries transport-level options passed to the websocket stack.
type Opts struct {
	// HandshakeTimeout bounds the HTTP upgrade; zero uses the dialer default.
	HandshakeTimeout Duration `json:"handshake_timeout,omitempty" yaml:"handshake_timeout,omitempty"`
	// ReadBufferSize and WriteBufferSize size the websocket I/O buffers.
	ReadBufferSize  int     `json:"read_buffer_size,omitempty"  yaml:"read_buffer_size,omitempty"`
	WriteBufferSize int     `json:"write_buffer_size,omitempty" yaml:"write_buffer_size,omitempty"`
	TLS             TLSOpts `json:"tls,omitempty"               yaml:"tls,omitempty"`
}

// Config represents the complete client configuration
type Config struct {
	Host        string   `json:"host"                   yaml:"host"`
	Port        int      `json:"port,omitempty"         yaml:"port,omitempty"`
	Path        string   `json:"path,omitempty"         yaml:"path,omitempty"`
	Secure      bool     `json:"secure,omitempty"       yaml:"secure,omitempty"`
	PoolSize    int      `json:"pool_size,omitempty"    yaml:"pool_size,omitempty"`
	MaxOverflow int      `json:"max_overflow,omitempty" yaml:"max_overflow,omitempty"`
	PingDelay   Duration `json:"ping_delay,omitempty"   yaml:"ping_delay,omitempty"`
	Opts        Opts     `json:"opts,omitempty"         yaml:"opts,omitempty"`
}

// DefaultConfig returns the default client configuration for the given host
func DefaultConfig(host string) Config {
	return Config{
		Host:        host,
		Port:        DefaultPort,
		Path:        DefaultPath,
		PoolSize:    DefaultPoolSize,
		MaxOverflow: DefaultMaxOverflow,
		PingDelay:   Duration(DefaultPingDelay),
	}
}

// Validate checks the config and fills defaulted fields
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate", "host is required")
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Port < 1 || c.Port > 65535 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("port %d out of range 1-65535", c.Port))
	}
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.Path[0] != '/' {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("path %q must start with /", c.Path))
	}
	if c.PoolSize <= 0 {
		c.PoolSize = DefaultPoolSize
	}
	if c.MaxOverflow < 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("max_overflow %d cannot be negative", c.MaxOverflow))
	}
	if c.PingDelay < 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"ping_delay cannot be negative")
	}
	return nil
}

// URL returns the websocket URL for the configured server
func (c Config) URL() string {
	scheme := "ws"
	if c.Secure {
		scheme = "wss"
	}
	u := url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   c.Path,
	}
	return u.String()
}

// FromAddr builds a config from a host:port address string. A port that does
// not parse as an integer is a programmer error.
func FromAddr(addr string) (Config, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return Config{}, errors.WrapInvalid(err, "config", "FromAddr", "split host and port")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return Config{}, errors.WrapInvalid(errors.ErrInvalidConfig, "config", "FromAddr",
			fmt.Sprintf("parse port %q", portStr))
	}
	cfg := DefaultConfig(host)
	cfg.Port = port
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and validates a YAML config file
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config", "Load", "read config file")
	}

	cfg := Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.WrapInvalid(err, "config", "Load", "parse YAML")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
