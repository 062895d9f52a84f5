package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/RehakOndrej/internet-monitor/pkg/check"
	"github.com/RehakOndrej/internet-monitor/pkg/check/icmp"
	"github.com/RehakOndrej/internet-monitor/pkg/check/ping"
	"github.com/RehakOndrej/internet-monitor/pkg/config"
	"github.com/RehakOndrej/internet-monitor/pkg/measure"
	"github.com/RehakOndrej/internet-monitor/pkg/scheduler"
	"github.com/RehakOndrej/internet-monitor/pkg/server"
	"github.com/RehakOndrej/internet-monitor/pkg/sink"
)

// newRegistry returns the probe implementations selectable with --probe.
func newRegistry() (*check.Registry, error) {
	reg := check.NewRegistry()
	if err := reg.Register(ping.TypeName, ping.Factory); err != nil {
		return nil, err
	}
	if err := reg.Register(icmp.TypeName, icmp.Factory); err != nil {
		return nil, err
	}
	return reg, nil
}

func newCheck(cfg *config.Config) (check.Check, error) {
	reg, err := newRegistry()
	if err != nil {
		return nil, err
	}
	return reg.Create(cfg.Probe, map[string]any{
		"target": cfg.Host,
		"count":  ping.DefaultCount,
	})
}

// run wires every component and blocks until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	chk, err := newCheck(cfg)
	if err != nil {
		return fmt.Errorf("creating %s probe: %w", cfg.Probe, err)
	}
	if c, ok := chk.(io.Closer); ok {
		defer c.Close()
	}

	influx, err := sink.NewInflux(sink.InfluxConfig{
		URL:      cfg.InfluxURL,
		Database: cfg.InfluxDB,
		Username: cfg.InfluxUsername,
		Password: cfg.InfluxPassword,
		Timeout:  cfg.InfluxTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("creating influxdb client: %w", err)
	}
	defer influx.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := scheduler.NewMetrics()
	metrics.Register(reg)
	metrics.BuildInfo.WithLabelValues(version, commit, date).Set(1)

	clock := clockwork.NewRealClock()
	status := server.NewStatus(clock)

	sched, err := scheduler.New(&scheduler.Config{
		Logger:   logger,
		Clock:    clock,
		Measurer: measure.NewCycle(chk, clock, logger),
		Sink:     influx,
		Interval: cfg.Interval,
		Metrics:  metrics,
		Observer: status,
	})
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"host":     cfg.Host,
		"probe":    cfg.Probe,
		"interval": cfg.Interval,
		"influxdb": cfg.InfluxURL,
		"database": cfg.InfluxDB,
	}).Info("Starting internet monitor")

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Listen != "" {
		srv := server.NewServer(cfg.Listen, status, reg, logger)
		g.Go(func() error {
			// The status server is optional; losing it must not stop measurements.
			if err := srv.Run(gctx); err != nil {
				logger.Errorf("Status server failed: %v", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		return sched.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
