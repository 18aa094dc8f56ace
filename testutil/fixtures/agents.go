// Copyright 2026 AgentWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

// Package fixtures 提供测试用的预置 Agent 类声明与 Instance 实现。
package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/BaSui01/agentwire/agent"
	"github.com/BaSui01/agentwire/native"
	"github.com/BaSui01/agentwire/types"
)

// =============================================================================
// 🔢 计数器 Agent
// =============================================================================

// Counter 持有一个累加值，支持快照保存与恢复
type Counter struct {
	mu    sync.Mutex
	count int64
}

// NewCounter 创建初始值为 start 的计数器
func NewCounter(start int64) *Counter {
	return &Counter{count: start}
}

// Count 返回当前值
func (c *Counter) Count() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// InvokeMethod 实现 agent.Instance
func (c *Counter) InvokeMethod(ctx context.Context, method string, args []any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch method {
	case "add":
		amount, ok := args[0].(int64)
		if !ok {
			return nil, fmt.Errorf("add: want int64 amount, got %T", args[0])
		}
		c.count += amount
		return c.count, nil
	case "current":
		return c.count, nil
	case "reset":
		c.count = 0
		return nil, nil
	case "fail":
		// 固定返回领域错误，用于验证 AgentError 透传
		return nil, types.InvalidInputError("counter cannot fail gracefully")
	default:
		return nil, types.InvalidMethodError(method)
	}
}

type counterSnapshot struct {
	Count int64 `json:"count"`
}

// SaveSnapshot 实现 agent.Snapshotter
func (c *Counter) SaveSnapshot(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return json.Marshal(counterSnapshot{Count: c.count})
}

// LoadSnapshot 实现 agent.Snapshotter
func (c *Counter) LoadSnapshot(ctx context.Context, snapshot []byte) error {
	var s counterSnapshot
	if err := json.Unmarshal(snapshot, &s); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count = s.Count
	return nil
}

// CounterDefinition 返回计数器类声明与对应的 Initiator
func CounterDefinition() (*agent.Definition, agent.Initiator) {
	def := agent.NewDefinition("CounterAgent").
		Describe("Keeps a running total.").
		Constructor(agent.Param("start", native.S64()))
	def.Method("add").
		Describe("Adds an amount and returns the new total.").
		Param("amount", native.S64()).
		Returns(native.S64())
	def.Method("current").
		Describe("Returns the current total.").
		Returns(native.S64())
	def.Method("reset").
		Describe("Resets the total to zero.")
	def.Method("fail").
		Describe("Always fails with a domain error.")

	initiator := func(ctx context.Context, args []any) (agent.Instance, error) {
		start, ok := args[0].(int64)
		if !ok {
			return nil, fmt.Errorf("constructor: want int64 start, got %T", args[0])
		}
		return NewCounter(start), nil
	}
	return def, initiator
}

// =============================================================================
// 📣 回显 Agent
// =============================================================================

// Echo 无状态回显实例
type Echo struct{}

// InvokeMethod 实现 agent.Instance
func (Echo) InvokeMethod(ctx context.Context, method string, args []any) (any, error) {
	switch method {
	case "say":
		message, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("say: want string message, got %T", args[0])
		}
		return message, nil
	default:
		return nil, types.InvalidMethodError(method)
	}
}

// EchoDefinition 返回回显类声明与对应的 Initiator。构造器无参数，
// 因此其 Agent ID 就是类型名本身
func EchoDefinition() (*agent.Definition, agent.Initiator) {
	def := agent.NewDefinition("EchoAgent").
		Describe("Returns whatever it is told.").
		Constructor()
	def.Method("say").
		Describe("Echoes the message back.").
		Param("message", native.Str()).
		Returns(native.Str())

	initiator := func(ctx context.Context, args []any) (agent.Instance, error) {
		return Echo{}, nil
	}
	return def, initiator
}
