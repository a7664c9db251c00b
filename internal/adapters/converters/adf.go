package converters

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
)

const adfFormat = "confluence"

// ADFConverter renders services as Atlassian Document Format (ADF) for Confluence.
type ADFConverter struct{}

// NewADFConverter creates a new ADF converter.
func NewADFConverter() *ADFConverter {
	return &ADFConverter{}
}

// Format returns the output format name.
func (c *ADFConverter) Format() string {
	return adfFormat
}

// ADF node types.
type adfDocument struct {
	Version int       `json:"version"`
	Type    string    `json:"type"`
	Content []adfNode `json:"content"`
}

type adfNode struct {
	Type    string     `json:"type"`
	Attrs   *adfAttrs  `json:"attrs,omitempty"`
	Content []adfNode  `json:"content,omitempty"`
	Text    string     `json:"text,omitempty"`
	Marks   []adfMark  `json:"marks,omitempty"`
}

type adfAttrs struct {
	Level int `json:"level,omitempty"`
}

type adfMark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Convert renders a transformed service as ADF JSON.
func (c *ADFConverter) Convert(service *domain.ServiceModel, output io.Writer) error {
	adf := &adfDocument{
		Version: 1,
		Type:    "doc",
		Content: []adfNode{},
	}

	// Title
	adf.Content = append(adf.Content, c.heading(documentTitle(service), 1))
	if service.APIVersion != "" {
		adf.Content = append(adf.Content, c.paragraph(fmt.Sprintf("Version: %s", service.APIVersion)))
	}

	if service.Description != "" {
		adf.Content = append(adf.Content, c.heading("Description", 2))
		adf.Content = append(adf.Content, c.paragraph(service.Description))
	}

	for _, section := range sections(service) {
		adf.Content = append(adf.Content, c.heading(section.Group.Name, 2))
		if section.Group.Summary != "" {
			adf.Content = append(adf.Content, c.paragraph(section.Group.Summary))
		}
		for _, op := range section.Operations {
			adf.Content = append(adf.Content, c.operationNodes(op)...)
		}
	}

	if items := components(service); len(items) > 0 {
		adf.Content = append(adf.Content, c.heading("Components", 2))
		for _, component := range items {
			adf.Content = append(adf.Content, c.componentNodes(component)...)
		}
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(adf); err != nil {
		return fmt.Errorf("failed to encode ADF: %w", err)
	}

	return nil
}

func (c *ADFConverter) heading(text string, level int) adfNode {
	return adfNode{
		Type:  "heading",
		Attrs: &adfAttrs{Level: level},
		Content: []adfNode{
			{Type: "text", Text: text},
		},
	}
}

func (c *ADFConverter) paragraph(text string) adfNode {
	return adfNode{
		Type: "paragraph",
		Content: []adfNode{
			{Type: "text", Text: text},
		},
	}
}

func (c *ADFConverter) boldText(text string) adfNode {
	return adfNode{
		Type: "text",
		Text: text,
		Marks: []adfMark{
			{Type: "strong"},
		},
	}
}

func (c *ADFConverter) codeText(text string) adfNode {
	return adfNode{
		Type: "text",
		Text: text,
		Marks: []adfMark{
			{Type: "code"},
		},
	}
}

func (c *ADFConverter) bulletList(lines []string) adfNode {
	items := make([]adfNode, 0, len(lines))

	for _, line := range lines {
		items = append(items, adfNode{
			Type: "listItem",
			Content: []adfNode{
				c.paragraph(line),
			},
		})
	}

	return adfNode{
		Type:    "bulletList",
		Content: items,
	}
}

func (c *ADFConverter) operationNodes(operation *domain.OperationEntity) []adfNode {
	var nodes []adfNode

	nodes = append(nodes, c.heading(operation.Name, 3))
	for _, path := range operation.Paths {
		nodes = append(nodes, adfNode{
			Type: "paragraph",
			Content: []adfNode{
				c.boldText(formatMethod(operation.HTTPVerb)),
				{Type: "text", Text: " "},
				c.codeText(path),
			},
		})
	}

	if operation.Summary != "" {
		nodes = append(nodes, adfNode{
			Type: "paragraph",
			Content: []adfNode{
				c.boldText(operation.Summary),
			},
		})
	}

	if operation.Description != "" {
		nodes = append(nodes, c.paragraph(operation.Description))
	}

	if len(operation.Parameters) > 0 {
		nodes = append(nodes, c.heading("Parameters", 4))
		nodes = append(nodes, c.parameterList(operation.Parameters))
	}

	if operation.RequestBody != nil && len(operation.RequestBody.Bodies) > 0 {
		lines := make([]string, 0, len(operation.RequestBody.Bodies))
		for _, body := range operation.RequestBody.Bodies {
			lines = append(lines, fmt.Sprintf("%s: %s", body.MediaType, typeLabel(body.Types)))
		}
		nodes = append(nodes, c.heading("Request Body", 4))
		nodes = append(nodes, c.bulletList(lines))
	}

	if len(operation.Responses) > 0 {
		nodes = append(nodes, c.heading("Responses", 4))
		nodes = append(nodes, c.responseList(operation.Responses))
	}

	if len(operation.Securities) > 0 {
		lines := make([]string, 0, len(operation.Securities))
		for _, security := range operation.Securities {
			lines = append(lines, fmt.Sprintf("%s (%s)", security.Name, security.Type))
		}
		nodes = append(nodes, c.heading("Security", 4))
		nodes = append(nodes, c.bulletList(lines))
	}

	if len(operation.Servers) > 0 {
		lines := make([]string, 0, len(operation.Servers))
		for _, server := range operation.Servers {
			lines = append(lines, formatServer(server))
		}
		nodes = append(nodes, c.heading("Servers", 4))
		nodes = append(nodes, c.bulletList(lines))
	}

	// Divider between endpoints
	nodes = append(nodes, adfNode{Type: "rule"})

	return nodes
}

func (c *ADFConverter) componentNodes(component domain.ComponentEntity) []adfNode {
	nodes := []adfNode{c.heading(component.Name, 3)}

	if component.Description != "" {
		nodes = append(nodes, c.paragraph(component.Description))
	}
	if len(component.Types) > 0 {
		nodes = append(nodes, c.paragraph("Type: "+typeLabel(component.Types)))
	}
	if len(component.PropertyItems) > 0 {
		lines := make([]string, 0, len(component.PropertyItems))
		for _, property := range component.PropertyItems {
			lines = append(lines, formatProperty(property))
		}
		nodes = append(nodes, c.bulletList(lines))
	}

	return nodes
}

func (c *ADFConverter) parameterList(params []domain.ParameterEntity) adfNode {
	items := make([]adfNode, 0, len(params))

	for _, param := range params {
		required := ""
		if param.IsRequired {
			required = " (required)"
		}

		text := fmt.Sprintf(" (%s, %s)%s", param.In, typeLabel(param.Types), required)
		if param.Description != "" {
			text += ": " + param.Description
		}

		items = append(items, adfNode{
			Type: "listItem",
			Content: []adfNode{
				{
					Type: "paragraph",
					Content: []adfNode{
						c.codeText(param.Name),
						{Type: "text", Text: text},
					},
				},
			},
		})
	}

	return adfNode{
		Type:    "bulletList",
		Content: items,
	}
}

func (c *ADFConverter) responseList(responses []domain.ResponseEntity) adfNode {
	items := make([]adfNode, 0, len(responses))

	for _, resp := range responses {
		items = append(items, adfNode{
			Type: "listItem",
			Content: []adfNode{
				{
					Type: "paragraph",
					Content: []adfNode{
						c.codeText(resp.StatusCode),
						{Type: "text", Text: strings.TrimPrefix(formatResponse(resp), resp.StatusCode)},
					},
				},
			},
		})
	}

	return adfNode{
		Type:    "bulletList",
		Content: items,
	}
}
