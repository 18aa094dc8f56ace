package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// =============================================================================
// 🧪 Collector 测试
// =============================================================================

func TestNewCollector(t *testing.T) {
	logger := zap.NewNop()
	collector := NewCollector("test", prometheus.NewRegistry(), logger)

	assert.NotNil(t, collector)
	assert.NotNil(t, collector.invocationsTotal)
	assert.NotNil(t, collector.invocationDuration)
	assert.NotNil(t, collector.registrationsTotal)
	assert.NotNil(t, collector.agentsLive)
	assert.NotNil(t, collector.scheduledTotal)
}

func TestCollector_RecordInvocation(t *testing.T) {
	logger := zap.NewNop()
	collector := NewCollector("test", prometheus.NewRegistry(), logger)

	// 记录调用
	collector.RecordInvocation("assistant-agent", "ask", "ok", 100*time.Millisecond)

	// 验证指标
	count := testutil.CollectAndCount(collector.invocationsTotal)
	assert.Greater(t, count, 0)

	// 再记录一次失败调用
	collector.RecordInvocation("assistant-agent", "ask", "invalid-input", 50*time.Millisecond)

	newCount := testutil.CollectAndCount(collector.invocationsTotal)
	assert.GreaterOrEqual(t, newCount, count)
}

func TestCollector_RecordRegistration(t *testing.T) {
	logger := zap.NewNop()
	collector := NewCollector("test", prometheus.NewRegistry(), logger)

	collector.RecordRegistration("ok")
	collector.RecordRegistration("error")

	count := testutil.CollectAndCount(collector.registrationsTotal)
	assert.Greater(t, count, 0)
}

func TestCollector_SetAgentsLive(t *testing.T) {
	logger := zap.NewNop()
	collector := NewCollector("test", prometheus.NewRegistry(), logger)

	collector.SetAgentsLive(3)

	assert.Equal(t, float64(3), testutil.ToFloat64(collector.agentsLive))
}

func TestCollector_RecordScheduled(t *testing.T) {
	logger := zap.NewNop()
	collector := NewCollector("test", prometheus.NewRegistry(), logger)

	collector.RecordScheduled("memory")
	collector.RecordScheduled("redis")

	count := testutil.CollectAndCount(collector.scheduledTotal)
	assert.Greater(t, count, 0)
}

func TestCollector_NilSafe(t *testing.T) {
	var collector *Collector

	// nil Collector 上的所有方法都必须是空操作
	collector.RecordInvocation("assistant-agent", "ask", "ok", time.Millisecond)
	collector.RecordRegistration("ok")
	collector.SetAgentsLive(1)
	collector.RecordScheduled("memory")
}

func TestCollector_ConcurrentRecording(t *testing.T) {
	logger := zap.NewNop()
	collector := NewCollector("test", prometheus.NewRegistry(), logger)

	// 并发记录多个指标
	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			collector.RecordInvocation("assistant-agent", "ask", "ok", 100*time.Millisecond)
			collector.RecordRegistration("ok")
			collector.RecordScheduled("memory")
			done <- true
		}(i)
	}

	// 等待所有 goroutine 完成
	for i := 0; i < 10; i++ {
		<-done
	}

	// 验证指标被正确记录
	invCount := testutil.CollectAndCount(collector.invocationsTotal)
	assert.Greater(t, invCount, 0)

	regCount := testutil.CollectAndCount(collector.registrationsTotal)
	assert.Greater(t, regCount, 0)

	schedCount := testutil.CollectAndCount(collector.scheduledTotal)
	assert.Greater(t, schedCount, 0)
}
