package service

import (
	"sort"
	"strings"

	"github.com/docagent/backend/internal/types"
)

// validateArguments checks args against the tool's parameter list before
// the handler runs: every required parameter must be present, unknown
// keys are rejected by name, and values must match the declared type and
// enum. Validation failures mean the handler is never invoked.
func validateArguments(tool types.Tool, args map[string]interface{}) *types.OpError {
	params := make(map[string]types.Parameter, len(tool.Parameters))
	for _, p := range tool.Parameters {
		params[p.Name] = p
	}

	var unknown []string
	for name := range args {
		if _, ok := params[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return types.InvalidArguments("unknown arguments: %s", strings.Join(unknown, ", "))
	}

	for _, p := range tool.Parameters {
		value, present := args[p.Name]
		if !present {
			if p.Required {
				return types.InvalidArguments("missing required argument %q", p.Name)
			}
			continue
		}
		if err := checkType(p, value); err != nil {
			return err
		}
	}
	return nil
}

func checkType(p types.Parameter, value interface{}) *types.OpError {
	switch p.Type {
	case "string":
		s, ok := value.(string)
		if !ok {
			return types.InvalidArguments("argument %q must be a string, got %T", p.Name, value)
		}
		if len(p.Enum) > 0 && !contains(p.Enum, s) {
			return types.InvalidArguments("argument %q must be one of: %s", p.Name, strings.Join(p.Enum, ", "))
		}
	case "number":
		switch value.(type) {
		case float64, float32, int, int64, int32:
		default:
			return types.InvalidArguments("argument %q must be a number, got %T", p.Name, value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return types.InvalidArguments("argument %q must be a boolean, got %T", p.Name, value)
		}
	default:
		// Unreachable for correctly registered tools.
		return types.InvalidArguments("argument %q has unsupported type %q", p.Name, p.Type)
	}
	return nil
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
