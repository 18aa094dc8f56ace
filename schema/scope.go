package schema

import "fmt"

// ConstructorOperation is the operation name used in scopes for constructor
// parameters.
const ConstructorOperation = "constructor"

// ReturnParameter is the parameter name used in scopes for return slots.
const ReturnParameter = "return-value"

// Scope identifies where a type under derivation came from. It exists only
// for error messages.
type Scope struct {
	Class     string
	Operation string
	Param     string
}

// ConstructorScope builds the scope of one constructor parameter.
func ConstructorScope(class, param string) Scope {
	return Scope{Class: class, Operation: ConstructorOperation, Param: param}
}

// MethodScope builds the scope of one method parameter.
func MethodScope(class, method, param string) Scope {
	return Scope{Class: class, Operation: method, Param: param}
}

// ReturnScope builds the scope of a method return slot.
func ReturnScope(class, method string) Scope {
	return Scope{Class: class, Operation: method, Param: ReturnParameter}
}

func (s Scope) String() string {
	op := s.Operation
	if op != ConstructorOperation {
		op = fmt.Sprintf("method %s", op)
	}
	return fmt.Sprintf("class %s, %s, parameter %s", s.Class, op, s.Param)
}

func (s Scope) errorf(format string, args ...any) error {
	return fmt.Errorf("%s: %s", s, fmt.Sprintf(format, args...))
}
