package agent_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BaSui01/agentwire/agent"
	"github.com/BaSui01/agentwire/native"
	"github.com/BaSui01/agentwire/schema"
	"github.com/BaSui01/agentwire/testutil/fixtures"
	"github.com/BaSui01/agentwire/types"
)

func nopInitiator(ctx context.Context, args []any) (agent.Instance, error) {
	return fixtures.Echo{}, nil
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	r := agent.NewRegistry(zaptest.NewLogger(t))
	def, initiator := fixtures.CounterDefinition()

	descriptor, err := r.Register(def, initiator)
	require.NoError(t, err)
	assert.Equal(t, "counter-agent", descriptor.TypeName)
	assert.Equal(t, "Keeps a running total.", descriptor.Description)
	require.Len(t, descriptor.Methods, 4)
	assert.Equal(t, "add", descriptor.Methods[0].Name)

	// Constructor schema carries the declared start parameter.
	require.Len(t, descriptor.Constructor.InputSchema.Elements, 1)
	assert.Equal(t, "start", descriptor.Constructor.InputSchema.Elements[0].Name)

	// Lookups work by class name and by normalized type name.
	got, ok := r.AgentType("CounterAgent")
	require.True(t, ok)
	assert.Same(t, descriptor, got)

	class, ok := r.ClassByTypeName("counter-agent")
	require.True(t, ok)
	assert.Equal(t, "CounterAgent", class)

	slots, ok := r.MethodParams("CounterAgent", "add")
	require.True(t, ok)
	require.Len(t, slots, 1)
	assert.Equal(t, "amount", slots[0].Name)

	info, ok := r.ParamType("CounterAgent", "add", "amount")
	require.True(t, ok)
	assert.Equal(t, types.KindS64, info.Analysed.Kind)

	ctorSlots, ok := r.MethodParams("CounterAgent", schema.ConstructorOperation)
	require.True(t, ok)
	require.Len(t, ctorSlots, 1)

	retSlots, ok := r.ReturnSlots("CounterAgent", "add")
	require.True(t, ok)
	require.Len(t, retSlots, 1)
	assert.Equal(t, schema.ReturnParameter, retSlots[0].Name)

	resetSlots, ok := r.ReturnSlots("CounterAgent", "reset")
	require.True(t, ok)
	assert.Empty(t, resetSlots)

	meta, ok := r.MethodMetaOf("CounterAgent", "add")
	require.True(t, ok)
	assert.Equal(t, "Adds an amount and returns the new total.", meta.Description)

	_, ok = r.Initiator("counter-agent")
	assert.True(t, ok)

	assert.Len(t, r.AgentTypes(), 1)
}

func TestRegistry_AtomicFailure(t *testing.T) {
	t.Parallel()

	r := agent.NewRegistry(zaptest.NewLogger(t))

	def := agent.NewDefinition("BrokenAgent").Constructor()
	def.Method("good").Param("x", native.Str())
	def.Method("bad").Param("doc", native.ListOf(native.Text()))

	_, err := r.Register(def, nopInitiator)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class BrokenAgent registration failed")
	assert.Contains(t, err.Error(), "class BrokenAgent, method bad, parameter doc")

	// Nothing was committed, not even the valid method.
	_, ok := r.AgentType("BrokenAgent")
	assert.False(t, ok)
	_, ok = r.MethodParams("BrokenAgent", "good")
	assert.False(t, ok)
	_, ok = r.Initiator("broken-agent")
	assert.False(t, ok)
}

func TestRegistry_DuplicateClass(t *testing.T) {
	t.Parallel()

	r := agent.NewRegistry(zaptest.NewLogger(t))
	def, initiator := fixtures.EchoDefinition()

	_, err := r.Register(def, initiator)
	require.NoError(t, err)

	def2, initiator2 := fixtures.EchoDefinition()
	_, err = r.Register(def2, initiator2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_TypeNameCollision(t *testing.T) {
	t.Parallel()

	r := agent.NewRegistry(zaptest.NewLogger(t))

	_, err := r.Register(agent.NewDefinition("EchoAgent").Constructor(), nopInitiator)
	require.NoError(t, err)

	// A textually different class normalizing to the same type name is a
	// registration error, not an alias.
	_, err = r.Register(agent.NewDefinition("Echo_Agent$1").Constructor(), nopInitiator)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `agent type name "echo-agent" already registered by class EchoAgent`)
}

func TestRegistry_ReservedMethodName(t *testing.T) {
	t.Parallel()

	r := agent.NewRegistry(zaptest.NewLogger(t))

	def := agent.NewDefinition("WeirdAgent").Constructor()
	def.Method("constructor").Param("x", native.Str())

	_, err := r.Register(def, nopInitiator)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"constructor" is a reserved method name`)
}

func TestRegistry_EmptyTypeName(t *testing.T) {
	t.Parallel()

	r := agent.NewRegistry(zaptest.NewLogger(t))
	_, err := r.Register(agent.NewDefinition("_$123").Constructor(), nopInitiator)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "normalizes to an empty agent type name")
}

func TestRegistry_MissingInitiator(t *testing.T) {
	t.Parallel()

	r := agent.NewRegistry(zaptest.NewLogger(t))
	_, err := r.Register(agent.NewDefinition("EchoAgent").Constructor(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing initiator")
}
