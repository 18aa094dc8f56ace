package types

// AgentConstructor describes the constructor of an agent type: optional
// declared name, free-text metadata and the input schema derived from the
// constructor parameters.
type AgentConstructor struct {
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description"`
	PromptHint  string     `json:"promptHint,omitempty"`
	InputSchema DataSchema `json:"inputSchema"`
}

// AgentMethod describes one invocable method of an agent type.
type AgentMethod struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	PromptHint   string     `json:"promptHint,omitempty"`
	InputSchema  DataSchema `json:"inputSchema"`
	OutputSchema DataSchema `json:"outputSchema"`
}

// AgentType is the exported descriptor of one registered agent class: its
// normalized type name, free-text description, constructor schema and the
// ordered list of method descriptors. Hosts use it to advertise available
// agents.
type AgentType struct {
	TypeName    string           `json:"typeName"`
	Description string           `json:"description,omitempty"`
	Constructor AgentConstructor `json:"constructor"`
	Methods     []AgentMethod    `json:"methods"`
}

// Method returns the descriptor of the named method, if declared.
func (t *AgentType) Method(name string) (*AgentMethod, bool) {
	for i := range t.Methods {
		if t.Methods[i].Name == name {
			return &t.Methods[i], true
		}
	}
	return nil, false
}
