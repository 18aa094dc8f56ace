// Package agentwire provides a top-level convenience entry point for
// declaring agent classes and running them in a container with minimal
// boilerplate.
//
// Usage:
//
//	import "github.com/BaSui01/agentwire"
//
//	def := agentwire.NewDefinition("AssistantAgent").
//	    Constructor(agentwire.Param("username", native.Str()))
//	def.Method("ask").Param("question", native.Str()).Returns(native.Str())
//
//	registry := agentwire.NewRegistry(logger)
//	registry.Register(def, initiator)
//	container := agentwire.NewContainer(registry, logger)
//
// This is a thin re-export of the agent package; both produce identical
// results. Use this package when you prefer the shorter import path.
package agentwire

import (
	"github.com/BaSui01/agentwire/agent"
)

// Definition declares one agent class. See [agent.Definition].
type Definition = agent.Definition

// Registry holds registered classes and derived schemas. See [agent.Registry].
type Registry = agent.Registry

// Container owns live agents resolved from a registry. See [agent.Container].
type Container = agent.Container

// Instance is a live native agent object. See [agent.Instance].
type Instance = agent.Instance

// Initiator constructs a live instance. See [agent.Initiator].
type Initiator = agent.Initiator

// Proxy is the typed client surface of a resolved agent. See [agent.Proxy].
type Proxy = agent.Proxy

// Re-export the declaration and bootstrap entry points so callers never need
// to import agent/.

// NewDefinition starts the declaration of an agent class.
var NewDefinition = agent.NewDefinition

// Param builds one named parameter slot.
var Param = agent.Param

// NewRegistry creates an empty registry.
var NewRegistry = agent.NewRegistry

// NewContainer creates a container around a populated registry.
var NewContainer = agent.NewContainer

// NewProxy wraps a resolved agent in a typed client.
var NewProxy = agent.NewProxy

// AgentID derives the deterministic agent id from an agent type name and
// stringified constructor arguments.
var AgentID = agent.AgentID

// TypeNameOf normalizes a class name to its kebab-case agent type name.
var TypeNameOf = agent.TypeNameOf
