// Package config defines the monitor's command-line flags and turns them,
// together with INTERNET_MONITOR_* environment variables, into a validated
// Config.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "INTERNET_MONITOR"

const (
	FlagInterval       = "interval"
	FlagInfluxURL      = "influxdb-url"
	FlagInfluxDB       = "influxdb-db"
	FlagInfluxUsername = "influxdb-username"
	FlagInfluxPassword = "influxdb-password"
	FlagInfluxTimeout  = "influxdb-timeout"
	FlagLatencyURL     = "latency-url"
	FlagProbe          = "probe"
	FlagListen         = "listen"
	FlagLogLevel       = "log-level"
	FlagLogFormat      = "log-format"
)

const (
	DefaultInterval      = 5
	DefaultInfluxURL     = "http://influxdb:8086"
	DefaultInfluxDB      = "internet_metrics"
	DefaultInfluxTimeout = 10 * time.Second
	DefaultLatencyURL    = "google.com"
	DefaultProbe         = "ping"
	DefaultListen        = ":9273"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// Probes lists the accepted --probe values.
var Probes = []string{"icmp", "ping"}

var (
	ErrInterval    = errors.New("interval must be a positive number of seconds")
	ErrCredentials = errors.New("influxdb username and password must be set together")
)

type Config struct {
	Interval time.Duration
	Host     string
	Probe    string

	InfluxURL      string
	InfluxDB       string
	InfluxUsername string
	InfluxPassword string
	InfluxTimeout  time.Duration

	Listen    string
	LogLevel  string
	LogFormat string
}

// AddFlags registers every option on fs with its default.
func AddFlags(fs *pflag.FlagSet) {
	fs.Int(FlagInterval, DefaultInterval, "Seconds to sleep between measurements")
	fs.String(FlagInfluxURL, DefaultInfluxURL, "InfluxDB URL")
	fs.String(FlagInfluxDB, DefaultInfluxDB, "InfluxDB database (bucket)")
	fs.String(FlagInfluxUsername, "", "InfluxDB username")
	fs.String(FlagInfluxPassword, "", "InfluxDB password")
	fs.Duration(FlagInfluxTimeout, DefaultInfluxTimeout, "InfluxDB HTTP request timeout")
	fs.String(FlagLatencyURL, DefaultLatencyURL, "Host to measure latency against")
	fs.String(FlagProbe, DefaultProbe, "Probe implementation: "+strings.Join(Probes, " or "))
	fs.String(FlagListen, DefaultListen, "Status server address, empty to disable")
	fs.String(FlagLogLevel, DefaultLogLevel, "Log level (trace, debug, info, warn, error)")
	fs.String(FlagLogFormat, DefaultLogFormat, "Log format (text or json)")
}

// Load reads fs and the environment. Flags set explicitly win over the
// environment, which wins over flag defaults.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Interval:       time.Duration(v.GetInt(FlagInterval)) * time.Second,
		Host:           v.GetString(FlagLatencyURL),
		Probe:          v.GetString(FlagProbe),
		InfluxURL:      v.GetString(FlagInfluxURL),
		InfluxDB:       v.GetString(FlagInfluxDB),
		InfluxUsername: v.GetString(FlagInfluxUsername),
		InfluxPassword: v.GetString(FlagInfluxPassword),
		InfluxTimeout:  v.GetDuration(FlagInfluxTimeout),
		Listen:         v.GetString(FlagListen),
		LogLevel:       v.GetString(FlagLogLevel),
		LogFormat:      v.GetString(FlagLogFormat),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return ErrInterval
	}
	if c.Host == "" {
		return errors.New("latency url must not be empty")
	}
	if c.InfluxURL == "" {
		return errors.New("influxdb url must not be empty")
	}
	if (c.InfluxUsername == "") != (c.InfluxPassword == "") {
		return ErrCredentials
	}
	if c.InfluxTimeout <= 0 {
		return errors.New("influxdb timeout must be positive")
	}
	if !slices.Contains(Probes, c.Probe) {
		return fmt.Errorf("unknown probe %q, expected one of: %s", c.Probe, strings.Join(Probes, ", "))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
