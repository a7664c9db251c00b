package transform

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
)

// ComponentGroup is the kind segment threaded into component ids.
type ComponentGroup string

const (
	// Schemas namespaces schema components.
	Schemas ComponentGroup = "schemas"
	// Securities namespaces security schemes.
	Securities ComponentGroup = "securities"
)

// normalizeSegment lowercases s and drops every whitespace rune, so that
// "service Name" and "serviceName" produce the same segment.
func normalizeSegment(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// JoinID normalizes every segment and joins them with ".".
// An empty segment is an ErrArgument.
func JoinID(segments ...string) (string, error) {
	if len(segments) == 0 {
		return "", fmt.Errorf("%w: no id segments", domain.ErrArgument)
	}
	parts := make([]string, 0, len(segments))
	for i, seg := range segments {
		n := normalizeSegment(seg)
		if n == "" {
			return "", fmt.Errorf("%w: id segment %d is empty", domain.ErrArgument, i)
		}
		parts = append(parts, n)
	}
	return strings.Join(parts, "."), nil
}

// ServiceID returns the id of a service.
func ServiceID(service string) (string, error) {
	return JoinID(service)
}

// OperationGroupID returns the id of an operation group.
func OperationGroupID(service, group string) (string, error) {
	return JoinID(service, group)
}

// OperationID returns the id of an operation.
func OperationID(service, group, operation string) (string, error) {
	return JoinID(service, group, operation)
}

// ComponentGroupID returns the id of a component group.
func ComponentGroupID(service string, kind ComponentGroup) (string, error) {
	return JoinID(service, string(kind))
}

// ComponentID returns the id of a component.
func ComponentID(service string, kind ComponentGroup, name string) (string, error) {
	return JoinID(service, string(kind), name)
}
