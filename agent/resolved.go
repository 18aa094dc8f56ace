package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BaSui01/agentwire/codec"
	"github.com/BaSui01/agentwire/internal/metrics"
	"github.com/BaSui01/agentwire/schema"
	"github.com/BaSui01/agentwire/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const tracerName = "github.com/BaSui01/agentwire/agent"

// ResolvedAgent is one live agent instance together with its identity and
// the constructor value it was built from. It dispatches wire-encoded
// invocations onto the native instance.
//
// The dispatcher does not serialize concurrent invocations on the same
// instance; instances that are not reentrant-safe must guard themselves.
type ResolvedAgent struct {
	registry  *Registry
	logger    *zap.Logger
	collector *metrics.Collector
	limiter   *rate.Limiter

	className       string
	typeName        string
	id              string
	instance        Instance
	constructorArgs types.DataValue
}

// ID returns the deterministic agent id.
func (a *ResolvedAgent) ID() string { return a.id }

// TypeName returns the normalized agent type name.
func (a *ResolvedAgent) TypeName() string { return a.typeName }

// ClassName returns the declared class name.
func (a *ResolvedAgent) ClassName() string { return a.className }

// ConstructorArgs returns the wire value this instance was constructed from.
func (a *ResolvedAgent) ConstructorArgs() types.DataValue { return a.constructorArgs }

// AgentType returns the exported descriptor of this agent's class.
func (a *ResolvedAgent) AgentType() (*types.AgentType, *types.AgentError) {
	t, ok := a.registry.AgentType(a.className)
	if !ok {
		return nil, types.InvalidTypeError(fmt.Sprintf("class %s has no registered descriptor", a.className))
	}
	return t, nil
}

// Invoke deserializes the incoming arguments against the method's registered
// parameter types, calls the native method and serializes the result against
// the registered return type. Every failure surfaces as an AgentError; no
// panic or exception crosses this boundary.
func (a *ResolvedAgent) Invoke(ctx context.Context, method string, input types.DataValue) (types.DataValue, *types.AgentError) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "agent.invoke")
	span.SetAttributes(
		attribute.String("agent.id", a.id),
		attribute.String("agent.type", a.typeName),
		attribute.String("agent.method", method),
	)
	defer span.End()

	out, agentErr := a.invoke(ctx, method, input)

	status := "ok"
	if agentErr != nil {
		status = string(agentErr.Code)
		span.SetStatus(codes.Error, agentErr.Error())
		a.logger.Warn("invocation failed",
			zap.String("agent_id", a.id),
			zap.String("method", method),
			zap.String("code", string(agentErr.Code)),
			zap.String("message", agentErr.Message),
		)
	}
	a.collector.RecordInvocation(a.typeName, method, status, time.Since(start))
	return out, agentErr
}

func (a *ResolvedAgent) invoke(ctx context.Context, method string, input types.DataValue) (types.DataValue, *types.AgentError) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return types.DataValue{}, types.CustomError(fmt.Sprintf("rate limit wait: %v", err))
		}
	}

	if method == schema.ConstructorOperation {
		return types.DataValue{}, types.InvalidMethodError(method)
	}
	params, ok := a.registry.MethodParams(a.className, method)
	if !ok {
		return types.DataValue{}, types.InvalidMethodError(method)
	}

	args, err := codec.Deserialize(input, params)
	if err != nil {
		return types.DataValue{}, types.InvalidInputError(
			fmt.Sprintf("class %s, method %s: %v", a.className, method, err))
	}

	result, err := a.instance.InvokeMethod(ctx, method, args)
	if err != nil {
		var agentErr *types.AgentError
		if errors.As(err, &agentErr) {
			return types.DataValue{}, agentErr
		}
		return types.DataValue{}, types.CustomError(err.Error())
	}

	retSlots, ok := a.registry.ReturnSlots(a.className, method)
	if !ok {
		return types.DataValue{}, types.InvalidTypeError(
			fmt.Sprintf("class %s, method %s has no registered return type", a.className, method))
	}
	if len(retSlots) == 0 {
		return types.TupleValue(), nil
	}

	out, err := codec.Serialize([]any{result}, retSlots)
	if err != nil {
		return types.DataValue{}, types.CustomError(
			fmt.Sprintf("class %s, method %s: serializing result: %v", a.className, method, err))
	}
	return out, nil
}

// SaveSnapshot serializes the entire native instance state into an opaque
// byte buffer. Instances that do not implement Snapshotter report a custom
// failure.
func (a *ResolvedAgent) SaveSnapshot(ctx context.Context) ([]byte, *types.AgentError) {
	s, ok := a.instance.(Snapshotter)
	if !ok {
		return nil, types.CustomError("save-snapshot not implemented")
	}
	data, err := s.SaveSnapshot(ctx)
	if err != nil {
		return nil, types.CustomError(err.Error())
	}
	return data, nil
}

// LoadSnapshot restores the native instance state from a buffer previously
// produced by SaveSnapshot.
func (a *ResolvedAgent) LoadSnapshot(ctx context.Context, snapshot []byte) *types.AgentError {
	s, ok := a.instance.(Snapshotter)
	if !ok {
		return types.CustomError("load-snapshot not implemented")
	}
	if err := s.LoadSnapshot(ctx, snapshot); err != nil {
		return types.CustomError(err.Error())
	}
	return nil
}
