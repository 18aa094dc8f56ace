// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// =============================================================================
// 📊 指标收集器
// =============================================================================

// Collector 指标收集器。nil Collector 的所有方法都是空操作，
// 因此未配置指标的调用方无需做判空。
type Collector struct {
	// 调用指标
	invocationsTotal   *prometheus.CounterVec
	invocationDuration *prometheus.HistogramVec

	// 注册指标
	registrationsTotal *prometheus.CounterVec

	// Agent 指标
	agentsLive prometheus.Gauge

	// 调度指标
	scheduledTotal *prometheus.CounterVec

	logger *zap.Logger
}

// NewCollector 创建指标收集器，所有指标注册到传入的 Registerer。
func NewCollector(namespace string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	factory := promauto.With(reg)
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	// 调用指标
	c.invocationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invocations_total",
			Help:      "Total number of agent invocations",
		},
		[]string{"agent_type", "method", "status"},
	)

	c.invocationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invocation_duration_seconds",
			Help:      "Agent invocation duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"agent_type", "method"},
	)

	// 注册指标
	c.registrationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Total number of agent class registrations",
		},
		[]string{"status"},
	)

	// Agent 指标
	c.agentsLive = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "agents_live",
			Help:      "Number of live resolved agents",
		},
	)

	// 调度指标
	c.scheduledTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduled_invocations_total",
			Help:      "Total number of scheduled invocations",
		},
		[]string{"backend"},
	)

	logger.Info("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// =============================================================================
// 🎯 指标记录
// =============================================================================

// RecordInvocation 记录一次 Agent 调用
func (c *Collector) RecordInvocation(agentType, method, status string, duration time.Duration) {
	if c == nil {
		return
	}
	c.invocationsTotal.WithLabelValues(agentType, method, status).Inc()
	c.invocationDuration.WithLabelValues(agentType, method).Observe(duration.Seconds())
}

// RecordRegistration 记录一次 Agent 类注册
func (c *Collector) RecordRegistration(status string) {
	if c == nil {
		return
	}
	c.registrationsTotal.WithLabelValues(status).Inc()
}

// SetAgentsLive 设置存活 Agent 数量
func (c *Collector) SetAgentsLive(n int) {
	if c == nil {
		return
	}
	c.agentsLive.Set(float64(n))
}

// RecordScheduled 记录一次延迟调用的入队
func (c *Collector) RecordScheduled(backend string) {
	if c == nil {
		return
	}
	c.scheduledTotal.WithLabelValues(backend).Inc()
}
