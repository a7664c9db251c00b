package loader

import (
	"fmt"
	"strings"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"gopkg.in/yaml.v3"
)

var pathItemVerbs = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true, "trace": true,
}

// ReadOrder indexes the declaration order of paths, verbs, schemas and tags.
// JSON input is read as YAML flow style.
func ReadOrder(data []byte) (*domain.DeclarationOrder, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	order := &domain.DeclarationOrder{Methods: make(map[string][]string)}
	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return order, nil
	}

	if paths := mappingValue(doc, "paths"); paths != nil {
		eachPair(paths, func(path string, item *yaml.Node) {
			order.Paths = append(order.Paths, path)
			eachPair(item, func(key string, _ *yaml.Node) {
				if pathItemVerbs[strings.ToLower(key)] {
					order.Methods[path] = append(order.Methods[path], strings.ToUpper(key))
				}
			})
		})
	}

	if components := mappingValue(doc, "components"); components != nil {
		if schemas := mappingValue(components, "schemas"); schemas != nil {
			eachPair(schemas, func(name string, _ *yaml.Node) {
				order.Schemas = append(order.Schemas, name)
			})
		}
	}

	if tags := mappingValue(doc, "tags"); tags != nil && tags.Kind == yaml.SequenceNode {
		for _, tag := range tags.Content {
			if name := mappingValue(tag, "name"); name != nil && name.Kind == yaml.ScalarNode {
				order.Tags = append(order.Tags, name.Value)
			}
		}
	}
	return order, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func eachPair(node *yaml.Node, fn func(key string, value *yaml.Node)) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		fn(node.Content[i].Value, node.Content[i+1])
	}
}
