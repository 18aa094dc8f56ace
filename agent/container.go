package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/BaSui01/agentwire/codec"
	"github.com/BaSui01/agentwire/internal/metrics"
	"github.com/BaSui01/agentwire/schema"
	"github.com/BaSui01/agentwire/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// SnapshotStore persists agent snapshots keyed by agent id.
type SnapshotStore interface {
	Save(ctx context.Context, agentID string, data []byte) error
	Load(ctx context.Context, agentID string) ([]byte, error)
}

// Container owns one registry and the live agents resolved from it. It is
// the bootstrap value the host hands invocations to: unknown agent types and
// ids surface as invalid-agent-id, never as a panic.
type Container struct {
	id        string
	registry  *Registry
	logger    *zap.Logger
	collector *metrics.Collector
	snapshots SnapshotStore
	rateLimit rate.Limit
	rateBurst int

	mu     sync.RWMutex
	agents map[string]*ResolvedAgent
}

// ContainerOption configures a Container.
type ContainerOption func(*Container)

// WithSnapshotStore attaches a snapshot persistence backend.
func WithSnapshotStore(store SnapshotStore) ContainerOption {
	return func(c *Container) { c.snapshots = store }
}

// WithMetrics attaches a metrics collector to the container and every agent
// it resolves.
func WithMetrics(collector *metrics.Collector) ContainerOption {
	return func(c *Container) { c.collector = collector }
}

// WithRateLimit applies a per-agent invocation rate limit.
func WithRateLimit(limit rate.Limit, burst int) ContainerOption {
	return func(c *Container) {
		c.rateLimit = limit
		c.rateBurst = burst
	}
}

// NewContainer creates a container around a populated registry.
func NewContainer(registry *Registry, logger *zap.Logger, opts ...ContainerOption) *Container {
	c := &Container{
		id:       uuid.NewString(),
		registry: registry,
		logger:   logger,
		agents:   make(map[string]*ResolvedAgent),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the container's unique id.
func (c *Container) ID() string { return c.id }

// Registry returns the registry this container was built around.
func (c *Container) Registry() *Registry { return c.registry }

// Resolve constructs (or returns the already-constructed) agent for a type
// name and wire constructor arguments. The agent id is derived
// deterministically from both, so resolving with identical arguments yields
// the same live instance.
func (c *Container) Resolve(ctx context.Context, typeName string, args types.DataValue) (*ResolvedAgent, *types.AgentError) {
	className, ok := c.registry.ClassByTypeName(typeName)
	if !ok {
		return nil, types.InvalidAgentIDError(typeName)
	}
	initiator, ok := c.registry.Initiator(typeName)
	if !ok {
		return nil, types.InvalidAgentIDError(typeName)
	}
	ctorSlots, ok := c.registry.MethodParams(className, schema.ConstructorOperation)
	if !ok {
		return nil, types.InvalidTypeError(fmt.Sprintf("class %s has no registered constructor", className))
	}

	nativeArgs, err := codec.Deserialize(args, ctorSlots)
	if err != nil {
		return nil, types.InvalidInputError(
			fmt.Sprintf("class %s, constructor: %v", className, err))
	}

	id := AgentID(typeName, codec.StringifyArgs(args))

	c.mu.RLock()
	existing := c.agents[id]
	c.mu.RUnlock()
	if existing != nil {
		return existing, nil
	}

	instance, err := initiator(ctx, nativeArgs)
	if err != nil {
		return nil, types.CustomError(fmt.Sprintf("constructing %s: %v", id, err))
	}

	resolved := &ResolvedAgent{
		registry:        c.registry,
		logger:          c.logger,
		collector:       c.collector,
		className:       className,
		typeName:        typeName,
		id:              id,
		instance:        instance,
		constructorArgs: args,
	}
	if c.rateLimit > 0 {
		resolved.limiter = rate.NewLimiter(c.rateLimit, c.rateBurst)
	}

	c.mu.Lock()
	// Another caller may have resolved the same id concurrently; the first
	// registered instance wins.
	if racing := c.agents[id]; racing != nil {
		c.mu.Unlock()
		return racing, nil
	}
	c.agents[id] = resolved
	live := len(c.agents)
	c.mu.Unlock()

	c.collector.SetAgentsLive(live)
	c.logger.Info("agent resolved",
		zap.String("container_id", c.id),
		zap.String("agent_id", id),
		zap.String("agent_type", typeName),
	)
	return resolved, nil
}

// Get returns a previously resolved agent by id.
func (c *Container) Get(agentID string) (*ResolvedAgent, *types.AgentError) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.agents[agentID]
	if !ok {
		return nil, types.InvalidAgentIDError(agentID)
	}
	return a, nil
}

// Invoke routes one wire invocation to a previously resolved agent.
func (c *Container) Invoke(ctx context.Context, agentID, method string, input types.DataValue) (types.DataValue, *types.AgentError) {
	a, agentErr := c.Get(agentID)
	if agentErr != nil {
		return types.DataValue{}, agentErr
	}
	return a.Invoke(ctx, method, input)
}

// PersistSnapshot saves an agent's snapshot into the configured store.
func (c *Container) PersistSnapshot(ctx context.Context, agentID string) *types.AgentError {
	if c.snapshots == nil {
		return types.CustomError("no snapshot store configured")
	}
	a, agentErr := c.Get(agentID)
	if agentErr != nil {
		return agentErr
	}
	data, agentErr := a.SaveSnapshot(ctx)
	if agentErr != nil {
		return agentErr
	}
	if err := c.snapshots.Save(ctx, agentID, data); err != nil {
		return types.CustomError(fmt.Sprintf("persisting snapshot of %s: %v", agentID, err))
	}
	return nil
}

// RestoreSnapshot loads an agent's snapshot from the configured store and
// applies it to the live instance.
func (c *Container) RestoreSnapshot(ctx context.Context, agentID string) *types.AgentError {
	if c.snapshots == nil {
		return types.CustomError("no snapshot store configured")
	}
	a, agentErr := c.Get(agentID)
	if agentErr != nil {
		return agentErr
	}
	data, err := c.snapshots.Load(ctx, agentID)
	if err != nil {
		return types.CustomError(fmt.Sprintf("loading snapshot of %s: %v", agentID, err))
	}
	return a.LoadSnapshot(ctx, data)
}
