package types

import "fmt"

// AgentErrorCode is the closed set of call-time error codes crossing the
// boundary. External callers branch on these codes, never on messages.
type AgentErrorCode string

const (
	ErrInvalidMethod  AgentErrorCode = "invalid-method"
	ErrInvalidInput   AgentErrorCode = "invalid-input"
	ErrInvalidType    AgentErrorCode = "invalid-type"
	ErrInvalidAgentID AgentErrorCode = "invalid-agent-id"
	ErrCustom         AgentErrorCode = "custom"
)

// AgentError is the only error value crossing the invocation boundary. It is
// returned, never panicked.
type AgentError struct {
	Code    AgentErrorCode `json:"code"`
	Message string         `json:"message,omitempty"`
}

// Error implements the error interface.
func (e *AgentError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewAgentError creates an AgentError with the given code and message.
func NewAgentError(code AgentErrorCode, message string) *AgentError {
	return &AgentError{Code: code, Message: message}
}

// InvalidMethodError reports an unregistered method name.
func InvalidMethodError(method string) *AgentError {
	return NewAgentError(ErrInvalidMethod, fmt.Sprintf("method %q is not registered", method))
}

// InvalidInputError reports a shape or arity mismatch in the incoming
// arguments.
func InvalidInputError(message string) *AgentError {
	return NewAgentError(ErrInvalidInput, message)
}

// InvalidTypeError reports a missing registered type for a slot.
func InvalidTypeError(message string) *AgentError {
	return NewAgentError(ErrInvalidType, message)
}

// InvalidAgentIDError reports an agent id or type that does not resolve.
func InvalidAgentIDError(id string) *AgentError {
	return NewAgentError(ErrInvalidAgentID, fmt.Sprintf("agent %q does not resolve", id))
}

// CustomError wraps an agent-raised failure message.
func CustomError(message string) *AgentError {
	return NewAgentError(ErrCustom, message)
}

// AgentErrorCodeOf extracts the code from an error, or empty when the error
// is not an AgentError.
func AgentErrorCodeOf(err error) AgentErrorCode {
	if e, ok := err.(*AgentError); ok {
		return e.Code
	}
	return ""
}
