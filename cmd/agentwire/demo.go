// =============================================================================
// 演示 Agent 类
// =============================================================================
// serve/describe 命令注册的内置示例类，用于展示类型声明、
// Schema 导出与调用编解码的完整链路
// =============================================================================
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/BaSui01/agentwire/agent"
	"github.com/BaSui01/agentwire/native"
	"github.com/BaSui01/agentwire/types"
)

// registerDemoAgents 注册全部内置演示类
func registerDemoAgents(registry *agent.Registry) error {
	def, initiator := assistantDefinition()
	if _, err := registry.Register(def, initiator); err != nil {
		return err
	}
	return nil
}

// assistant 按用户名打招呼并记录笔记
type assistant struct {
	mu       sync.Mutex
	username string
	notes    []string
}

func (a *assistant) InvokeMethod(ctx context.Context, method string, args []any) (any, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch method {
	case "ask":
		question, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("ask: want string question, got %T", args[0])
		}
		return fmt.Sprintf("%s, you asked: %s", a.username, question), nil
	case "remember":
		note, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("remember: want string note, got %T", args[0])
		}
		a.notes = append(a.notes, note)
		return nil, nil
	case "notes":
		notes := make([]string, len(a.notes))
		copy(notes, a.notes)
		return notes, nil
	default:
		return nil, types.InvalidMethodError(method)
	}
}

type assistantSnapshot struct {
	Username string   `json:"username"`
	Notes    []string `json:"notes"`
}

func (a *assistant) SaveSnapshot(ctx context.Context) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return json.Marshal(assistantSnapshot{Username: a.username, Notes: a.notes})
}

func (a *assistant) LoadSnapshot(ctx context.Context, snapshot []byte) error {
	var s assistantSnapshot
	if err := json.Unmarshal(snapshot, &s); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.username = s.Username
	a.notes = s.Notes
	return nil
}

func assistantDefinition() (*agent.Definition, agent.Initiator) {
	def := agent.NewDefinition("AssistantAgent").
		Describe("Answers questions and keeps per-user notes.").
		Constructor(agent.Param("username", native.Str()))
	def.Method("ask").
		Describe("Answers a question.").
		Prompt("Ask the assistant anything.").
		Param("question", native.Str()).
		Returns(native.Str())
	def.Method("remember").
		Describe("Stores a note for later.").
		Param("note", native.Str())
	def.Method("notes").
		Describe("Returns all stored notes.").
		Returns(native.ListOf(native.Str()))

	initiator := func(ctx context.Context, args []any) (agent.Instance, error) {
		username, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("constructor: want string username, got %T", args[0])
		}
		return &assistant{username: username}, nil
	}
	return def, initiator
}
