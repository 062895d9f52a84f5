package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricNameBuildInfo           = "internet_monitor_build_info"
	MetricNameTicks               = "internet_monitor_ticks_total"
	MetricNameMeasurementFailures = "internet_monitor_measurement_failures_total"
	MetricNameSinkWriteFailures   = "internet_monitor_sink_write_failures_total"
	MetricNameLatency             = "internet_monitor_latency_ms"

	MetricLabelVersion = "version"
	MetricLabelCommit  = "commit"
	MetricLabelDate    = "date"
)

// Metrics holds the scheduler's Prometheus collectors.
type Metrics struct {
	BuildInfo           *prometheus.GaugeVec
	Ticks               prometheus.Counter
	MeasurementFailures prometheus.Counter
	SinkWriteFailures   prometheus.Counter
	Latency             prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		BuildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: MetricNameBuildInfo,
				Help: "Build information of the internet monitor",
			},
			[]string{MetricLabelVersion, MetricLabelCommit, MetricLabelDate},
		),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricNameTicks,
			Help: "Number of measurement iterations run",
		}),
		MeasurementFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricNameMeasurementFailures,
			Help: "Number of iterations that produced no latency",
		}),
		SinkWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricNameSinkWriteFailures,
			Help: "Number of samples the time-series store did not accept",
		}),
		Latency: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricNameLatency,
			Help: "Last measured average round-trip time in milliseconds",
		}),
	}
}

func (m *Metrics) Register(r prometheus.Registerer) {
	r.MustRegister(
		m.BuildInfo,
		m.Ticks,
		m.MeasurementFailures,
		m.SinkWriteFailures,
		m.Latency,
	)
}
