package sink

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/sirupsen/logrus"

	"github.com/RehakOndrej/internet-monitor/pkg/sample"
)

const (
	// DefaultMeasurement is the series every sample is written to.
	DefaultMeasurement = "internet_metrics"

	tagMeasurementType = "measurement_type"
	fieldLatencyMs     = "latency_ms"
	fieldSuccess       = "success"
)

// InfluxConfig describes how to reach the store.
// Username and Password are optional but must be given together; they are
// sent as an InfluxDB 1.x compatibility token.
type InfluxConfig struct {
	URL         string
	Database    string
	Username    string
	Password    string
	Measurement string
	Timeout     time.Duration
}

func (c *InfluxConfig) Validate() error {
	if c.URL == "" {
		return errors.New("influxdb url is required")
	}
	if c.Database == "" {
		return errors.New("influxdb database is required")
	}
	if (c.Username == "") != (c.Password == "") {
		return errors.New("influxdb username and password must be set together")
	}
	if c.Timeout < 0 {
		return errors.New("influxdb timeout must not be negative")
	}
	return nil
}

// Influx writes samples to InfluxDB through the blocking write API.
type Influx struct {
	cfg         InfluxConfig
	client      influxdb2.Client
	writeAPI    api.WriteAPIBlocking
	measurement string
	logger      *logrus.Logger
}

// NewInflux builds the client. It does not contact the server.
func NewInflux(cfg InfluxConfig, logger *logrus.Logger) (*Influx, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := influxdb2.DefaultOptions()
	if cfg.Timeout > 0 {
		opts.SetHTTPRequestTimeout(uint(math.Ceil(cfg.Timeout.Seconds())))
	}

	token := ""
	if cfg.Username != "" {
		token = fmt.Sprintf("%s:%s", cfg.Username, cfg.Password)
	}

	measurement := cfg.Measurement
	if measurement == "" {
		measurement = DefaultMeasurement
	}

	client := influxdb2.NewClientWithOptions(cfg.URL, token, opts)
	logger.Debugf("InfluxDB client created for %s, database %s", cfg.URL, cfg.Database)

	return &Influx{
		cfg:         cfg,
		client:      client,
		writeAPI:    client.WriteAPIBlocking("", cfg.Database),
		measurement: measurement,
		logger:      logger,
	}, nil
}

// Ping checks that the server answers on /ping.
func (i *Influx) Ping(ctx context.Context) error {
	ok, err := i.client.Ping(ctx)
	if err != nil {
		return &ConnectError{URL: i.cfg.URL, Err: err}
	}
	if !ok {
		return &ConnectError{URL: i.cfg.URL, Err: errors.New("server did not answer ping")}
	}
	return nil
}

// Write stores s as one point.
func (i *Influx) Write(ctx context.Context, s sample.Sample) error {
	if err := i.writeAPI.WritePoint(ctx, i.point(s)); err != nil {
		return &WriteError{Measurement: i.measurement, Err: err}
	}
	return nil
}

// point converts a sample into a line-protocol point. latency_ms is left out
// when absent; success is always present so the point has at least one field.
func (i *Influx) point(s sample.Sample) *write.Point {
	fields := map[string]interface{}{}
	latency, ok := s.Latency()
	if ok {
		fields[fieldLatencyMs] = latency
	}
	fields[fieldSuccess] = ok

	return influxdb2.NewPoint(
		i.measurement,
		map[string]string{tagMeasurementType: s.MeasurementType},
		fields,
		s.Time,
	)
}

// Close flushes and closes the client.
func (i *Influx) Close() {
	i.client.Close()
}
