package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentError_Error(t *testing.T) {
	t.Parallel()

	err := InvalidMethodError("frobnicate")
	assert.Equal(t, ErrInvalidMethod, err.Code)
	assert.Equal(t, `[invalid-method] method "frobnicate" is not registered`, err.Error())

	bare := &AgentError{Code: ErrCustom}
	assert.Equal(t, "custom", bare.Error())
}

func TestAgentError_Constructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  *AgentError
		code AgentErrorCode
	}{
		{InvalidMethodError("m"), ErrInvalidMethod},
		{InvalidInputError("bad shape"), ErrInvalidInput},
		{InvalidTypeError("no descriptor"), ErrInvalidType},
		{InvalidAgentIDError("ghost"), ErrInvalidAgentID},
		{CustomError("boom"), ErrCustom},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.Code)
		assert.NotEmpty(t, tt.err.Message)
	}
}

func TestAgentErrorCodeOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ErrInvalidInput, AgentErrorCodeOf(InvalidInputError("x")))
	assert.Equal(t, AgentErrorCode(""), AgentErrorCodeOf(errors.New("plain")))
	assert.Equal(t, AgentErrorCode(""), AgentErrorCodeOf(nil))
}

func TestAgentError_ErrorsAs(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("while invoking: %w", CustomError("boom"))

	var agentErr *AgentError
	require.True(t, errors.As(wrapped, &agentErr))
	assert.Equal(t, ErrCustom, agentErr.Code)
	assert.Equal(t, "boom", agentErr.Message)
}
