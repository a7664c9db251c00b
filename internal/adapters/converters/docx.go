package converters

import (
	"fmt"
	"io"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const docxFormat = "docx"

// DocxConverter renders services as Word (DOCX) documents.
type DocxConverter struct{}

// NewDocxConverter creates a new DOCX converter.
func NewDocxConverter() *DocxConverter {
	return &DocxConverter{}
}

// Format returns the output format name.
func (c *DocxConverter) Format() string {
	return docxFormat
}

// Convert renders a transformed service as a DOCX document.
func (c *DocxConverter) Convert(service *domain.ServiceModel, output io.Writer) error {
	document, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	c.addTitle(document, service)
	c.addGroups(document, service)
	c.addComponents(document, service)

	if err := document.Write(output); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	return nil
}

func (c *DocxConverter) addTitle(document *docx.RootDoc, service *domain.ServiceModel) {
	_, _ = document.AddHeading(documentTitle(service), 0) // Level 0 = Title style
	if service.APIVersion != "" {
		document.AddParagraph(fmt.Sprintf("Version: %s", service.APIVersion))
	}
	if service.Description != "" {
		document.AddParagraph(service.Description)
	}
	document.AddEmptyParagraph()
}

func (c *DocxConverter) addGroups(document *docx.RootDoc, service *domain.ServiceModel) {
	for _, section := range sections(service) {
		_, _ = document.AddHeading(section.Group.Name, 1)
		if section.Group.Summary != "" {
			document.AddParagraph(section.Group.Summary)
		}

		for _, op := range section.Operations {
			c.addOperation(document, op)
		}
	}
}

func (c *DocxConverter) addOperation(document *docx.RootDoc, op *domain.OperationEntity) {
	_, _ = document.AddHeading(op.Name, 2)

	for _, path := range op.Paths {
		document.AddParagraph(fmt.Sprintf("%s %s", formatMethod(op.HTTPVerb), path))
	}

	if op.Summary != "" {
		document.AddParagraph(op.Summary)
	}

	if op.Description != "" {
		document.AddParagraph(op.Description)
	}

	if op.IsDeprecated {
		document.AddParagraph("Deprecated.")
	}

	if len(op.Parameters) > 0 {
		_, _ = document.AddHeading("Parameters", 3)

		for _, param := range op.Parameters {
			document.AddParagraph("• " + formatParameter(param))
		}
	}

	if op.RequestBody != nil && len(op.RequestBody.Bodies) > 0 {
		_, _ = document.AddHeading("Request Body", 3)

		for _, body := range op.RequestBody.Bodies {
			document.AddParagraph(fmt.Sprintf("• %s: %s", body.MediaType, typeLabel(body.Types)))
		}
	}

	if len(op.Responses) > 0 {
		_, _ = document.AddHeading("Responses", 3)

		for _, resp := range op.Responses {
			document.AddParagraph("• " + formatResponse(resp))
		}
	}

	if len(op.Servers) > 0 {
		_, _ = document.AddHeading("Servers", 3)

		for _, server := range op.Servers {
			document.AddParagraph("• " + formatServer(server))
		}
	}

	document.AddEmptyParagraph()
}

func (c *DocxConverter) addComponents(document *docx.RootDoc, service *domain.ServiceModel) {
	items := components(service)
	if len(items) == 0 {
		return
	}

	_, _ = document.AddHeading("Components", 1)

	for _, component := range items {
		_, _ = document.AddHeading(component.Name, 2)

		if component.Description != "" {
			document.AddParagraph(component.Description)
		}

		if len(component.Types) > 0 {
			document.AddParagraph("Type: " + typeLabel(component.Types))
		}

		for _, property := range component.PropertyItems {
			document.AddParagraph("• " + formatProperty(property))
		}
	}
}
