// Package health keeps the gRPC health status in line with store reachability.
package health

import (
	"context"
	"time"

	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/studentinfo-server/internal/logger"
	"github.com/dtroode/studentinfo-server/internal/metrics"
)

// Service is the health service name reported alongside the overall status.
const Service = "studentinfo.StudentInfo"

const (
	defaultInterval = 15 * time.Second
	maxPingTimeout  = 5 * time.Second
)

// Pinger checks whether the backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor pings the store on an interval and updates the health server.
type Monitor struct {
	pinger   Pinger
	server   *grpchealth.Server
	metrics  *metrics.Metrics
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger
}

// NewMonitor creates a Monitor. metrics may be nil.
func NewMonitor(
	pinger Pinger,
	server *grpchealth.Server,
	metrics *metrics.Metrics,
	interval time.Duration,
	logger *logger.Logger,
) *Monitor {
	if interval <= 0 {
		interval = defaultInterval
	}
	timeout := min(interval/2, maxPingTimeout)

	return &Monitor{
		pinger:   pinger,
		server:   server,
		metrics:  metrics,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Check pings the store once and publishes the result.
func (m *Monitor) Check(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	up := true
	if err := m.pinger.Ping(pingCtx); err != nil {
		m.logger.Warn("Health monitor: store ping failed", "error", err.Error())
		up = false
	}

	st := healthpb.HealthCheckResponse_SERVING
	if !up {
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	m.server.SetServingStatus("", st)
	m.server.SetServingStatus(Service, st)
	m.metrics.SetStoreUp(up)

	return up
}

// Run checks immediately and then on every tick until ctx is done.
// On exit every service is marked NOT_SERVING.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			m.server.Shutdown()
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
