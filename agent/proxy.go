package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/BaSui01/agentwire/codec"
	"github.com/BaSui01/agentwire/schedule"
	"github.com/BaSui01/agentwire/types"
	"go.uber.org/zap"
)

// Proxy is the typed client surface of one resolved agent. It accepts native
// Go arguments, marshals them against the registered parameter types and
// unmarshals results back to native values, so callers never touch the wire
// encoding directly.
type Proxy struct {
	agent     *ResolvedAgent
	scheduler schedule.Scheduler
}

// NewProxy wraps a resolved agent. The scheduler may be nil; Schedule then
// reports a custom error.
func NewProxy(agent *ResolvedAgent, scheduler schedule.Scheduler) *Proxy {
	return &Proxy{agent: agent, scheduler: scheduler}
}

// Agent returns the resolved agent behind this proxy.
func (p *Proxy) Agent() *ResolvedAgent { return p.agent }

// Call invokes a method with native arguments and returns the native result.
// Methods declared without a return type yield nil.
func (p *Proxy) Call(ctx context.Context, method string, args ...any) (any, *types.AgentError) {
	input, agentErr := p.encodeArgs(method, args)
	if agentErr != nil {
		return nil, agentErr
	}

	out, agentErr := p.agent.Invoke(ctx, method, input)
	if agentErr != nil {
		return nil, agentErr
	}

	retSlots, ok := p.agent.registry.ReturnSlots(p.agent.className, method)
	if !ok || len(retSlots) == 0 {
		return nil, nil
	}
	results, err := codec.Deserialize(out, retSlots)
	if err != nil {
		return nil, types.CustomError(
			fmt.Sprintf("class %s, method %s: decoding result: %v", p.agent.className, method, err))
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// Trigger starts an invocation without waiting for its result. The invocation
// outlives the caller's context; failures are logged, not returned.
func (p *Proxy) Trigger(ctx context.Context, method string, args ...any) *types.AgentError {
	input, agentErr := p.encodeArgs(method, args)
	if agentErr != nil {
		return agentErr
	}

	ctx = context.WithoutCancel(ctx)
	go func() {
		if _, invokeErr := p.agent.Invoke(ctx, method, input); invokeErr != nil {
			p.agent.logger.Warn("triggered invocation failed",
				zap.String("agent_id", p.agent.id),
				zap.String("method", method),
				zap.String("code", string(invokeErr.Code)),
			)
		}
	}()
	return nil
}

// Schedule defers an invocation to the given time. Arguments are validated
// and encoded now, so a bad call fails at schedule time rather than when the
// entry fires.
func (p *Proxy) Schedule(ctx context.Context, at time.Time, method string, args ...any) (string, *types.AgentError) {
	if p.scheduler == nil {
		return "", types.CustomError("no scheduler configured")
	}
	input, agentErr := p.encodeArgs(method, args)
	if agentErr != nil {
		return "", agentErr
	}

	entryID, err := p.scheduler.Schedule(ctx, schedule.Invocation{
		AgentID: p.agent.id,
		Method:  method,
		Args:    input,
		At:      at,
	})
	if err != nil {
		return "", types.CustomError(fmt.Sprintf("scheduling %s on %s: %v", method, p.agent.id, err))
	}
	p.agent.collector.RecordScheduled(p.scheduler.Backend())
	return entryID, nil
}

// CancelScheduled cancels a pending entry returned by Schedule.
func (p *Proxy) CancelScheduled(ctx context.Context, entryID string) *types.AgentError {
	if p.scheduler == nil {
		return types.CustomError("no scheduler configured")
	}
	if err := p.scheduler.Cancel(ctx, entryID); err != nil {
		return types.CustomError(fmt.Sprintf("cancelling entry %s: %v", entryID, err))
	}
	return nil
}

func (p *Proxy) encodeArgs(method string, args []any) (types.DataValue, *types.AgentError) {
	params, ok := p.agent.registry.MethodParams(p.agent.className, method)
	if !ok {
		return types.DataValue{}, types.InvalidMethodError(method)
	}
	input, err := codec.Serialize(args, params)
	if err != nil {
		return types.DataValue{}, types.InvalidInputError(
			fmt.Sprintf("class %s, method %s: %v", p.agent.className, method, err))
	}
	return input, nil
}
