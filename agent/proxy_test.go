package agent_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BaSui01/agentwire/agent"
	"github.com/BaSui01/agentwire/schedule"
	"github.com/BaSui01/agentwire/testutil"
	"github.com/BaSui01/agentwire/types"
)

func TestProxy_Call(t *testing.T) {
	t.Parallel()

	ctx := testutil.TestContext(t)
	c := newTestContainer(t)

	a, agentErr := c.Resolve(ctx, "counter-agent", counterArgs(5))
	require.Nil(t, agentErr)
	proxy := agent.NewProxy(a, nil)

	out, agentErr := proxy.Call(ctx, "add", int64(3))
	require.Nil(t, agentErr)
	assert.Equal(t, int64(8), out)

	// Unit methods yield nil.
	out, agentErr = proxy.Call(ctx, "reset")
	require.Nil(t, agentErr)
	assert.Nil(t, out)

	out, agentErr = proxy.Call(ctx, "current")
	require.Nil(t, agentErr)
	assert.Equal(t, int64(0), out)
}

func TestProxy_CallErrors(t *testing.T) {
	t.Parallel()

	ctx := testutil.TestContext(t)
	c := newTestContainer(t)

	a, agentErr := c.Resolve(ctx, "counter-agent", counterArgs(0))
	require.Nil(t, agentErr)
	proxy := agent.NewProxy(a, nil)

	_, agentErr = proxy.Call(ctx, "frobnicate")
	require.NotNil(t, agentErr)
	assert.Equal(t, types.ErrInvalidMethod, agentErr.Code)

	// Argument validation happens before the instance is touched.
	_, agentErr = proxy.Call(ctx, "add", "three")
	require.NotNil(t, agentErr)
	assert.Equal(t, types.ErrInvalidInput, agentErr.Code)
	assert.Contains(t, agentErr.Message, "class CounterAgent, method add")

	_, agentErr = proxy.Call(ctx, "add")
	require.NotNil(t, agentErr)
	assert.Equal(t, types.ErrInvalidInput, agentErr.Code)
}

func TestProxy_Trigger(t *testing.T) {
	t.Parallel()

	ctx := testutil.TestContext(t)
	c := newTestContainer(t)

	a, agentErr := c.Resolve(ctx, "counter-agent", counterArgs(0))
	require.Nil(t, agentErr)
	proxy := agent.NewProxy(a, nil)

	require.Nil(t, proxy.Trigger(ctx, "add", int64(5)))

	testutil.AssertEventuallyTrue(t, func() bool {
		out, agentErr := proxy.Call(ctx, "current")
		return agentErr == nil && out == int64(5)
	}, 5*time.Second)

	// Bad arguments fail synchronously even though execution is async.
	agentErr = proxy.Trigger(ctx, "add", "five")
	require.NotNil(t, agentErr)
	assert.Equal(t, types.ErrInvalidInput, agentErr.Code)
}

func TestProxy_Schedule(t *testing.T) {
	t.Parallel()

	ctx := testutil.TestContext(t)
	logger := zaptest.NewLogger(t)
	c := newTestContainer(t)

	scheduler := schedule.NewMemoryScheduler(c, logger)
	defer scheduler.Close()

	a, agentErr := c.Resolve(ctx, "counter-agent", counterArgs(0))
	require.Nil(t, agentErr)
	proxy := agent.NewProxy(a, scheduler)

	entryID, agentErr := proxy.Schedule(ctx, time.Now().Add(20*time.Millisecond), "add", int64(7))
	require.Nil(t, agentErr)
	assert.NotEmpty(t, entryID)

	testutil.AssertEventuallyTrue(t, func() bool {
		out, agentErr := proxy.Call(ctx, "current")
		return agentErr == nil && out == int64(7)
	}, 5*time.Second)
}

func TestProxy_CancelScheduled(t *testing.T) {
	t.Parallel()

	ctx := testutil.TestContext(t)
	logger := zaptest.NewLogger(t)
	c := newTestContainer(t)

	scheduler := schedule.NewMemoryScheduler(c, logger)
	defer scheduler.Close()

	a, agentErr := c.Resolve(ctx, "counter-agent", counterArgs(0))
	require.Nil(t, agentErr)
	proxy := agent.NewProxy(a, scheduler)

	entryID, agentErr := proxy.Schedule(ctx, time.Now().Add(time.Hour), "add", int64(7))
	require.Nil(t, agentErr)
	require.Nil(t, proxy.CancelScheduled(ctx, entryID))

	time.Sleep(50 * time.Millisecond)
	out, agentErr := proxy.Call(ctx, "current")
	require.Nil(t, agentErr)
	assert.Equal(t, int64(0), out)
}

func TestProxy_ScheduleWithoutScheduler(t *testing.T) {
	t.Parallel()

	ctx := testutil.TestContext(t)
	c := newTestContainer(t)

	a, agentErr := c.Resolve(ctx, "counter-agent", counterArgs(0))
	require.Nil(t, agentErr)
	proxy := agent.NewProxy(a, nil)

	_, agentErr = proxy.Schedule(ctx, time.Now(), "add", int64(1))
	require.NotNil(t, agentErr)
	assert.Equal(t, types.ErrCustom, agentErr.Code)

	// Scheduling a bad call fails at schedule time, not when the entry fires.
	scheduler := schedule.NewMemoryScheduler(c, zaptest.NewLogger(t))
	defer scheduler.Close()
	proxy = agent.NewProxy(a, scheduler)
	_, agentErr = proxy.Schedule(ctx, time.Now().Add(time.Hour), "add", "seven")
	require.NotNil(t, agentErr)
	assert.Equal(t, types.ErrInvalidInput, agentErr.Code)
}
