package agent

import (
	"fmt"
	"strings"

	"github.com/BaSui01/agentwire/internal/strcase"
)

// TypeNameOf derives the normalized agent type name from a declared class
// name: lowercase kebab-case with digits, underscores and similar noise
// stripped. Textual variants of the same identifier normalize to the same
// type name; genuinely different classes colliding on a type name is a
// registration error.
func TypeNameOf(className string) string {
	return strcase.ToKebab(className)
}

// AgentID builds the globally unique instance id for an agent type and its
// stringified constructor arguments. Zero arguments yield the bare type name;
// otherwise the arguments are comma-joined inside braces:
//
//	assistant-agent
//	assistant-agent-{"alice",42}
//
// The function is pure: identical inputs always produce the identical id.
func AgentID(typeName string, args []string) string {
	if len(args) == 0 {
		return typeName
	}
	return fmt.Sprintf("%s-{%s}", typeName, strings.Join(args, ","))
}
