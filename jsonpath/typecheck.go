// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

package jsonpath

import "github.com/liquid2/liquid2/errkind"

// ExpressionType is the filter-expression static type system's closed
// set of types: Nodes, Logical, and Value. A function's signature is a
// list of parameter ExpressionTypes plus one return ExpressionType.
type ExpressionType int

const (
	Nodes ExpressionType = iota
	Logical
	Value
)

// FunctionSignature is one entry of the standard function registry.
type FunctionSignature struct {
	ParamTypes []ExpressionType
	ReturnType ExpressionType
}

// standardFunctions is the fixed registry of built-in filter functions:
// count, length, match, search, and value. Host applications cannot
// extend this registry; an unknown function name is a NameError.
var standardFunctions = map[string]FunctionSignature{
	"count": {
		ParamTypes: []ExpressionType{Nodes},
		ReturnType: Value,
	},
	"length": {
		ParamTypes: []ExpressionType{Value},
		ReturnType: Value,
	},
	"match": {
		ParamTypes: []ExpressionType{Value, Value},
		ReturnType: Logical,
	},
	"search": {
		ParamTypes: []ExpressionType{Value, Value},
		ReturnType: Logical,
	},
	"value": {
		ParamTypes: []ExpressionType{Nodes},
		ReturnType: Value,
	},
}

// assertComparable reports whether fe may appear on either side of a
// comparison operator: a non-singular query or a function returning
// Logical/Nodes is not comparable.
func assertComparable(fe *FilterExpression) error {
	switch fe.Kind() {
	case KindRelativeQuery:
		if !fe.RelativeQuery.IsSingular() {
			return errkind.Typef(fe.Span, "non-singular query is not comparable")
		}
	case KindRootQuery:
		if !fe.RootQuery.IsSingular() {
			return errkind.Typef(fe.Span, "non-singular query is not comparable")
		}
	case KindFunction:
		sig, ok := standardFunctions[fe.FuncName]
		if !ok || sig.ReturnType != Value {
			return errkind.Typef(fe.Span, "result of %s() is not comparable", fe.FuncName)
		}
	}
	return nil
}

// assertCompared reports whether fe is a bare basic expression that must
// itself be compared rather than stand alone in a logical expression: a
// function returning Value cannot be used as a truthy test on its own.
func assertCompared(fe *FilterExpression) error {
	if fe.Kind() == KindFunction {
		if sig, ok := standardFunctions[fe.FuncName]; ok && sig.ReturnType == Value {
			return errkind.Typef(fe.Span, "result of %s() must be compared", fe.FuncName)
		}
	}
	return nil
}

// assertWellTyped validates a function call's argument count and, for
// each argument position, that the argument's static type matches the
// signature's declared parameter type.
func assertWellTyped(name string, args []*FilterExpression, span errkind.Span) ([]*FilterExpression, error) {
	sig, ok := standardFunctions[name]
	if !ok {
		return nil, errkind.Namef(span, "unknown function `%s`", name)
	}

	if len(args) != len(sig.ParamTypes) {
		plural := ""
		if len(sig.ParamTypes) != 1 {
			plural = "s"
		}
		return nil, errkind.Typef(span, "%s() takes %d argument%s but %d were given",
			name, len(sig.ParamTypes), plural, len(args))
	}

	for idx, typ := range sig.ParamTypes {
		arg := args[idx]
		switch typ {
		case Value:
			if !isValueType(arg) {
				return nil, errkind.Typef(arg.Span, "argument %d of %s() must be of a 'Value' type", idx+1, name)
			}
		case Logical:
			switch arg.Kind() {
			case KindRelativeQuery, KindRootQuery, KindLogical, KindComparison:
			default:
				return nil, errkind.Typef(arg.Span, "argument %d of %s() must be of a 'Logical' type", idx+1, name)
			}
		case Nodes:
			if !isNodesType(arg) {
				return nil, errkind.Typef(arg.Span, "argument %d of %s() must be of a 'Nodes' type", idx+1, name)
			}
		}
	}

	return args, nil
}

// isValueType reports whether fe statically produces a Value: literals,
// singular queries (coerced to the node's value, or Nothing), and
// functions whose signature returns Value.
func isValueType(fe *FilterExpression) bool {
	if fe.IsLiteral() {
		return true
	}
	switch fe.Kind() {
	case KindRelativeQuery:
		return fe.RelativeQuery.IsSingular()
	case KindRootQuery:
		return fe.RootQuery.IsSingular()
	case KindFunction:
		sig, ok := standardFunctions[fe.FuncName]
		return ok && sig.ReturnType == Value
	default:
		return false
	}
}

// isNodesType reports whether fe statically produces a Nodes value: any
// query (singular or not), or a function whose signature returns Nodes.
func isNodesType(fe *FilterExpression) bool {
	switch fe.Kind() {
	case KindRelativeQuery, KindRootQuery:
		return true
	case KindFunction:
		sig, ok := standardFunctions[fe.FuncName]
		return ok && sig.ReturnType == Nodes
	default:
		return false
	}
}
