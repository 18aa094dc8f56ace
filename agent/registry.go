package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/BaSui01/agentwire/internal/metrics"
	"github.com/BaSui01/agentwire/schema"
	"github.com/BaSui01/agentwire/types"
	"go.uber.org/zap"
)

// Instance is a live native agent object. The dispatcher hands it the method
// name and already-deserialized arguments; whatever it returns is serialized
// against the registered return type.
type Instance interface {
	InvokeMethod(ctx context.Context, method string, args []any) (any, error)
}

// Snapshotter is optionally implemented by instances that can serialize
// their entire state into an opaque byte buffer and restore it later.
type Snapshotter interface {
	SaveSnapshot(ctx context.Context) ([]byte, error)
	LoadSnapshot(ctx context.Context, snapshot []byte) error
}

// Initiator constructs a live instance from deserialized constructor
// arguments.
type Initiator func(ctx context.Context, args []any) (Instance, error)

// MethodMeta is the free-text metadata registered for one method.
type MethodMeta struct {
	Description string
	PromptHint  string
}

type methodKey struct {
	class  string
	method string
}

// Registry holds everything derived at registration time: exported type
// descriptors per class, per-slot type infos, method metadata and instance
// factories. It is populated once during startup and read-only afterward;
// a class that fails derivation registers nothing at all.
type Registry struct {
	mu        sync.RWMutex
	logger    *zap.Logger
	collector *metrics.Collector

	types      map[string]*types.AgentType         // class name → descriptor
	classes    map[string]string                   // agent type name → class name
	params     map[methodKey][]types.NamedTypeInfo // input slots, in declaration order
	returns    map[methodKey][]types.NamedTypeInfo // return slots (empty for unit)
	meta       map[methodKey]MethodMeta
	initiators map[string]Initiator // agent type name → factory
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryMetrics attaches a metrics collector to the registry.
func WithRegistryMetrics(c *metrics.Collector) RegistryOption {
	return func(r *Registry) { r.collector = c }
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		logger:     logger,
		types:      make(map[string]*types.AgentType),
		classes:    make(map[string]string),
		params:     make(map[methodKey][]types.NamedTypeInfo),
		returns:    make(map[methodKey][]types.NamedTypeInfo),
		meta:       make(map[methodKey]MethodMeta),
		initiators: make(map[string]Initiator),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register derives and validates the full descriptor of one declared class
// and commits it together with its slot infos, metadata and initiator. The
// commit is atomic: any derivation failure leaves the registry untouched and
// returns one aggregated error.
func (r *Registry) Register(def *Definition, initiator Initiator) (*types.AgentType, error) {
	className := def.className
	typeName := TypeNameOf(className)

	if typeName == "" {
		return nil, fmt.Errorf("class %q normalizes to an empty agent type name", className)
	}
	if initiator == nil {
		return nil, fmt.Errorf("class %s: missing initiator", className)
	}

	var errs []error

	ctorSchema, ctorSlots, err := schema.BuildInputSchema(className, schema.ConstructorOperation, def.constructorParams)
	if err != nil {
		errs = append(errs, err)
	}

	descriptor := &types.AgentType{
		TypeName:    typeName,
		Description: def.description,
		Constructor: types.AgentConstructor{
			Name:        def.constructorName,
			Description: def.constructorDescription,
			PromptHint:  def.constructorPromptHint,
			InputSchema: ctorSchema,
		},
	}

	inputs := make(map[methodKey][]types.NamedTypeInfo, len(def.methods)+1)
	outputs := make(map[methodKey][]types.NamedTypeInfo, len(def.methods))
	inputs[methodKey{className, schema.ConstructorOperation}] = ctorSlots

	seen := make(map[string]bool, len(def.methods))
	for _, m := range def.methods {
		if m.name == schema.ConstructorOperation {
			errs = append(errs, fmt.Errorf("class %s: %q is a reserved method name", className, m.name))
			continue
		}
		if seen[m.name] {
			errs = append(errs, fmt.Errorf("class %s: duplicate method %q", className, m.name))
			continue
		}
		seen[m.name] = true

		inputSchema, inputSlots, err := schema.BuildInputSchema(className, m.name, m.params)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		outputSchema, outputSlots, err := schema.BuildOutputSchema(className, m.name, m.returns)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		key := methodKey{className, m.name}
		inputs[key] = inputSlots
		outputs[key] = outputSlots
		descriptor.Methods = append(descriptor.Methods, types.AgentMethod{
			Name:         m.name,
			Description:  m.description,
			PromptHint:   m.promptHint,
			InputSchema:  inputSchema,
			OutputSchema: outputSchema,
		})
	}

	if len(errs) > 0 {
		r.collector.RecordRegistration("error")
		r.logger.Error("agent class registration failed",
			zap.String("class", className),
			zap.Int("errors", len(errs)),
		)
		return nil, fmt.Errorf("class %s registration failed: %w", className, errors.Join(errs...))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[className]; exists {
		r.collector.RecordRegistration("error")
		return nil, fmt.Errorf("class %s is already registered", className)
	}
	if other, exists := r.classes[typeName]; exists && other != className {
		// Two distinct classes normalizing to the same type name is a
		// registration error, not an alias.
		r.collector.RecordRegistration("error")
		return nil, fmt.Errorf("class %s: agent type name %q already registered by class %s", className, typeName, other)
	}

	r.types[className] = descriptor
	r.classes[typeName] = className
	for key, slots := range inputs {
		r.params[key] = slots
	}
	for key, slots := range outputs {
		r.returns[key] = slots
	}
	for _, m := range def.methods {
		r.meta[methodKey{className, m.name}] = MethodMeta{Description: m.description, PromptHint: m.promptHint}
	}
	r.initiators[typeName] = initiator

	r.collector.RecordRegistration("ok")
	r.logger.Info("agent class registered",
		zap.String("class", className),
		zap.String("agent_type", typeName),
		zap.Int("methods", len(descriptor.Methods)),
	)

	return descriptor, nil
}

// AgentType returns the descriptor registered for a class name.
func (r *Registry) AgentType(className string) (*types.AgentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[className]
	return t, ok
}

// ClassByTypeName returns the class name registered for an agent type name.
func (r *Registry) ClassByTypeName(typeName string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[typeName]
	return c, ok
}

// MethodParams returns the ordered input slots of a method, or of the
// constructor when method is schema.ConstructorOperation.
func (r *Registry) MethodParams(className, method string) ([]types.NamedTypeInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slots, ok := r.params[methodKey{className, method}]
	return slots, ok
}

// ParamType returns the TypeInfo registered for one named parameter.
func (r *Registry) ParamType(className, method, param string) (types.TypeInfo, bool) {
	slots, ok := r.MethodParams(className, method)
	if !ok {
		return types.TypeInfo{}, false
	}
	for _, s := range slots {
		if s.Name == param {
			return s.Info, true
		}
	}
	return types.TypeInfo{}, false
}

// ReturnSlots returns the return slots of a method; the slice is empty for
// methods without a return value.
func (r *Registry) ReturnSlots(className, method string) ([]types.NamedTypeInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slots, ok := r.returns[methodKey{className, method}]
	return slots, ok
}

// MethodMetaOf returns the free-text metadata registered for a method.
func (r *Registry) MethodMetaOf(className, method string) (MethodMeta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.meta[methodKey{className, method}]
	return m, ok
}

// Initiator returns the factory registered for an agent type name.
func (r *Registry) Initiator(typeName string) (Initiator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.initiators[typeName]
	return f, ok
}

// AgentTypes returns every registered descriptor, one per class.
func (r *Registry) AgentTypes() []*types.AgentType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*types.AgentType, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	return out
}
