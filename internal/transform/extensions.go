package transform

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Vendor extensions read by the transform. Anything else is ignored.
const (
	extGroupedPath    = "x-ms-docs-grouped-path"
	extOperationType  = "x-ms-docs-operation-type"
	extPreview        = "x-ms-preview"
	operationFunction = "function"
	operationAction   = "action"
)

type extensionKind int

const (
	flagExtension extensionKind = iota
	stringExtension
	stringListExtension
)

var knownExtensions = map[string]extensionKind{
	extGroupedPath:   stringListExtension,
	extOperationType: stringExtension,
	extPreview:       flagExtension,
}

// Extensions holds the typed values of the known vendor extensions.
type Extensions struct {
	GroupedPaths  []string
	OperationType string
	IsPreview     bool
}

// IsFunctionOrAction reports whether the operation type is function or action.
func (e Extensions) IsFunctionOrAction() bool {
	t := strings.ToLower(e.OperationType)
	return t == operationFunction || t == operationAction
}

// readExtensions reads the known extensions from each bag in order; the
// first bag that carries a key wins.
func readExtensions(bags ...map[string]any) Extensions {
	var out Extensions
	seen := make(map[string]bool, len(knownExtensions))
	for _, bag := range bags {
		for key, kind := range knownExtensions {
			raw, ok := bag[key]
			if !ok || seen[key] {
				continue
			}
			seen[key] = true
			switch kind {
			case flagExtension:
				out.IsPreview = extensionFlag(raw)
			case stringExtension:
				out.OperationType = extensionString(raw)
			case stringListExtension:
				out.GroupedPaths = extensionStringList(raw)
			}
		}
	}
	return out
}

func extensionFlag(raw any) bool {
	switch v := unwrapRaw(raw).(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	default:
		return false
	}
}

func extensionString(raw any) string {
	if s, ok := unwrapRaw(raw).(string); ok {
		return s
	}
	return ""
}

func extensionStringList(raw any) []string {
	switch v := unwrapRaw(raw).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

// unwrapRaw decodes extension values that arrive as raw JSON.
func unwrapRaw(raw any) any {
	msg, ok := raw.(json.RawMessage)
	if !ok {
		return raw
	}
	var v any
	if err := json.Unmarshal(msg, &v); err != nil {
		return nil
	}
	return v
}
