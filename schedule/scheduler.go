package schedule

import (
	"context"
	"time"

	"github.com/BaSui01/agentwire/types"
)

// Invocation is one deferred agent call.
type Invocation struct {
	AgentID string          `json:"agentId"`
	Method  string          `json:"method"`
	Args    types.DataValue `json:"args"`
	At      time.Time       `json:"at"`
}

// Dispatcher delivers a due invocation. Containers implement it.
type Dispatcher interface {
	Invoke(ctx context.Context, agentID, method string, input types.DataValue) (types.DataValue, *types.AgentError)
}

// Scheduler accepts deferred invocations. Schedule returns the entry id,
// usable for best-effort cancellation. Backend names the implementation
// for logs and metrics labels.
type Scheduler interface {
	Schedule(ctx context.Context, inv Invocation) (string, error)
	Cancel(ctx context.Context, entryID string) error
	Backend() string
}
