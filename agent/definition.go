package agent

import (
	"github.com/BaSui01/agentwire/native"
	"github.com/BaSui01/agentwire/schema"
)

// Definition declares one agent class: its constructor parameters, methods
// and free-text metadata. Definitions are assembled at startup and handed to
// Registry.Register, which derives and validates all schemas.
type Definition struct {
	className   string
	description string

	constructorName        string
	constructorDescription string
	constructorPromptHint  string
	constructorParams      []schema.Slot

	methods []*MethodDef
}

// MethodDef declares one invocable method of an agent class.
type MethodDef struct {
	name        string
	description string
	promptHint  string
	params      []schema.Slot
	returns     *native.Type
}

// NewDefinition starts the declaration of an agent class.
func NewDefinition(className string) *Definition {
	return &Definition{className: className}
}

// Param builds one named parameter slot.
func Param(name string, t *native.Type) schema.Slot {
	return schema.Slot{Name: name, Type: t}
}

// Describe sets the class description advertised in the type descriptor.
func (d *Definition) Describe(description string) *Definition {
	d.description = description
	return d
}

// Constructor declares the constructor parameters, in order.
func (d *Definition) Constructor(params ...schema.Slot) *Definition {
	d.constructorParams = params
	return d
}

// ConstructorMeta sets the optional constructor name, description and prompt
// hint.
func (d *Definition) ConstructorMeta(name, description, promptHint string) *Definition {
	d.constructorName = name
	d.constructorDescription = description
	d.constructorPromptHint = promptHint
	return d
}

// Method starts the declaration of one method; the returned MethodDef is
// already attached to the definition.
func (d *Definition) Method(name string) *MethodDef {
	m := &MethodDef{name: name}
	d.methods = append(d.methods, m)
	return m
}

// ClassName returns the declared class name.
func (d *Definition) ClassName() string { return d.className }

// Describe sets the method description.
func (m *MethodDef) Describe(description string) *MethodDef {
	m.description = description
	return m
}

// Prompt sets the method prompt hint.
func (m *MethodDef) Prompt(hint string) *MethodDef {
	m.promptHint = hint
	return m
}

// Param appends one named parameter, preserving declaration order.
func (m *MethodDef) Param(name string, t *native.Type) *MethodDef {
	m.params = append(m.params, schema.Slot{Name: name, Type: t})
	return m
}

// Returns declares the method return type; nil means no return value.
func (m *MethodDef) Returns(t *native.Type) *MethodDef {
	m.returns = t
	return m
}
