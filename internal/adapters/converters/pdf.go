package converters

import (
	"fmt"
	"io"
	"strings"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfFormat      = "pdf"
	pdfPageWidth   = 190.0
	pdfMarginLeft  = 10.0
	pdfMarginTop   = 10.0
	pdfMarginRight = 10.0
	pdfLineHeight  = 5.0
)

var methodColors = map[string][3]int{
	"GET":     {97, 175, 254},  // Blue
	"POST":    {73, 204, 144},  // Green
	"PUT":     {252, 161, 48},  // Orange
	"DELETE":  {249, 62, 62},   // Red
	"PATCH":   {80, 227, 194},  // Teal
	"HEAD":    {144, 97, 249},  // Purple
	"OPTIONS": {128, 128, 128}, // Gray
}

// PDFConverter renders services as PDF documents.
type PDFConverter struct {
	pdf            *gofpdf.Fpdf
	tocItems       []tocItem
	componentLinks map[string]int // component id to link id
}

type tocItem struct {
	title  string
	level  int
	linkID int
}

// NewPDFConverter creates a new PDF converter.
func NewPDFConverter() *PDFConverter {
	return &PDFConverter{}
}

// Format returns the output format name.
func (c *PDFConverter) Format() string {
	return pdfFormat
}

// Convert renders a transformed service as a PDF document.
func (c *PDFConverter) Convert(service *domain.ServiceModel, output io.Writer) error {
	c.pdf = gofpdf.New("P", "mm", "A4", "")
	c.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	c.pdf.SetDrawColor(180, 180, 180) // Light gray for all borders
	c.tocItems = nil
	c.componentLinks = make(map[string]int)

	groups := sections(service)

	// Links are created up front so the TOC and type cells can point forward.
	c.collectTOC(groups, components(service))

	c.addTitlePage(service)
	c.addTableOfContents()
	c.addContent(service, groups)

	if err := c.pdf.Output(output); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (c *PDFConverter) collectTOC(groups []groupSection, items []domain.ComponentEntity) {
	c.tocItems = append(c.tocItems, tocItem{title: "Overview", level: 1, linkID: c.pdf.AddLink()})

	for _, section := range groups {
		c.tocItems = append(c.tocItems, tocItem{title: section.Group.Name, level: 1, linkID: c.pdf.AddLink()})

		for _, op := range section.Operations {
			c.tocItems = append(c.tocItems, tocItem{title: op.Name, level: 2, linkID: c.pdf.AddLink()})
		}
	}

	if len(items) > 0 {
		c.tocItems = append(c.tocItems, tocItem{title: "Components", level: 1, linkID: c.pdf.AddLink()})
		for _, component := range items {
			c.componentLinks[component.ID] = c.pdf.AddLink()
		}
	}
}

func (c *PDFConverter) addTitlePage(service *domain.ServiceModel) {
	c.pdf.AddPage()

	// Title
	c.pdf.SetFont("Arial", "B", 28)
	c.pdf.Ln(40)
	c.pdf.CellFormat(pdfPageWidth, 15, documentTitle(service), "", 1, "C", false, 0, "")
	c.pdf.Ln(5)

	// Version
	if service.APIVersion != "" {
		c.pdf.SetFont("Arial", "", 14)
		c.pdf.SetTextColor(100, 100, 100)
		c.pdf.CellFormat(pdfPageWidth, 8, fmt.Sprintf("Version %s", service.APIVersion), "", 1, "C", false, 0, "")
		c.pdf.SetTextColor(0, 0, 0)
	}
	c.pdf.Ln(20)

	if service.Description != "" {
		c.pdf.SetFont("Arial", "", 11)
		c.pdf.MultiCell(pdfPageWidth, 6, stripHTML(service.Description), "", "C", false)
	}

	c.pdf.Ln(30)

	c.pdf.SetFont("Arial", "", 10)
	c.pdf.SetTextColor(128, 128, 128)
	c.pdf.CellFormat(pdfPageWidth, 6, "REST API Reference", "", 1, "C", false, 0, "")
	c.pdf.SetTextColor(0, 0, 0)
}

func (c *PDFConverter) addTableOfContents() {
	c.pdf.AddPage()

	c.pdf.SetFont("Arial", "B", 20)
	c.pdf.CellFormat(pdfPageWidth, 10, "Table of Contents", "", 1, "", false, 0, "")
	c.pdf.Ln(8)

	for _, item := range c.tocItems {
		indent := float64(item.level-1) * 8

		if item.level == 1 {
			c.pdf.SetFont("Arial", "B", 11)
		} else {
			c.pdf.SetFont("Arial", "", 9)
		}

		c.pdf.SetX(pdfMarginLeft + indent)
		title := item.title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		c.pdf.CellFormat(pdfPageWidth-indent, pdfLineHeight, title, "", 1, "", false, item.linkID, "")
	}
}

func (c *PDFConverter) addContent(service *domain.ServiceModel, groups []groupSection) {
	tocIndex := 0

	c.pdf.AddPage()
	c.setLinkDest(tocIndex)
	tocIndex++

	c.addSectionHeader("Overview")
	if service.Description != "" {
		c.pdf.SetFont("Arial", "", 10)
		c.pdf.MultiCell(pdfPageWidth, 5, stripHTML(service.Description), "", "", false)
		c.pdf.Ln(4)
	}
	c.pdf.SetFont("Arial", "", 10)
	c.pdf.CellFormat(pdfPageWidth, 5, fmt.Sprintf("%d operation groups, %d operations", len(groups), len(service.Operations)), "", 1, "", false, 0, "")

	for _, section := range groups {
		c.pdf.AddPage()
		c.setLinkDest(tocIndex)
		tocIndex++

		c.pdf.SetFont("Arial", "B", 14)
		c.pdf.SetFillColor(240, 240, 240)
		c.pdf.CellFormat(pdfPageWidth, 8, section.Group.Name, "", 1, "", true, 0, "")
		c.pdf.Ln(4)

		if section.Group.Summary != "" {
			c.pdf.SetFont("Arial", "", 10)
			c.pdf.MultiCell(pdfPageWidth, 5, stripHTML(section.Group.Summary), "", "", false)
			c.pdf.Ln(4)
		}

		for _, op := range section.Operations {
			c.checkPageBreak(50)
			c.setLinkDest(tocIndex)
			tocIndex++

			c.addOperation(op)
		}
	}

	if items := components(service); len(items) > 0 {
		c.pdf.AddPage()
		c.setLinkDest(tocIndex)

		c.addSectionHeader("Components")
		for _, component := range items {
			c.checkPageBreak(30)
			c.pdf.SetLink(c.componentLinks[component.ID], -1, -1)
			c.addComponent(component)
		}
	}
}

func (c *PDFConverter) setLinkDest(tocIndex int) {
	if tocIndex < len(c.tocItems) {
		c.pdf.SetLink(c.tocItems[tocIndex].linkID, -1, -1)
	}
}

func (c *PDFConverter) addSectionHeader(title string) {
	c.pdf.SetFont("Arial", "B", 18)
	c.pdf.CellFormat(pdfPageWidth, 10, title, "", 1, "", false, 0, "")
	c.pdf.Ln(4)
}

func (c *PDFConverter) addSubHeader(title string) {
	c.pdf.SetFont("Arial", "B", 10)
	c.pdf.SetTextColor(60, 60, 60)
	c.pdf.CellFormat(pdfPageWidth, 6, title, "", 1, "", false, 0, "")
	c.pdf.SetTextColor(0, 0, 0)
}

func (c *PDFConverter) addOperation(op *domain.OperationEntity) {
	c.pdf.SetFont("Arial", "B", 12)
	c.pdf.CellFormat(pdfPageWidth, 7, op.Name, "", 1, "", false, 0, "")

	method := formatMethod(op.HTTPVerb)
	color, ok := methodColors[method]
	if !ok {
		color = [3]int{128, 128, 128}
	}
	methodWidth := float64(len(method)*3) + 8

	for _, path := range op.Paths {
		c.pdf.SetFont("Arial", "B", 10)
		c.pdf.SetFillColor(color[0], color[1], color[2])
		c.pdf.SetTextColor(255, 255, 255)
		c.pdf.CellFormat(methodWidth, 6, method, "", 0, "C", true, 0, "")
		c.pdf.SetTextColor(0, 0, 0)
		c.pdf.MultiCell(pdfPageWidth-methodWidth, 6, " "+path, "", "", false)
	}
	c.pdf.Ln(2)

	c.pdf.SetFont("Arial", "", 8)
	c.pdf.SetTextColor(128, 128, 128)
	c.pdf.CellFormat(pdfPageWidth, 4, fmt.Sprintf("Operation ID: %s", op.ID), "", 1, "", false, 0, "")
	if op.IsDeprecated {
		c.pdf.CellFormat(pdfPageWidth, 4, "Deprecated", "", 1, "", false, 0, "")
	}
	c.pdf.SetTextColor(0, 0, 0)

	if op.Summary != "" {
		c.pdf.SetFont("Arial", "B", 10)
		c.pdf.MultiCell(pdfPageWidth, 5, stripHTML(op.Summary), "", "", false)
	}
	if op.Description != "" {
		c.pdf.SetFont("Arial", "", 9)
		c.pdf.MultiCell(pdfPageWidth, 4, stripHTML(op.Description), "", "", false)
	}
	c.pdf.Ln(2)

	if len(op.Parameters) > 0 {
		c.addSubHeader("Parameters")
		c.addParameterTable(op.Parameters)
	}

	if op.RequestBody != nil && len(op.RequestBody.Bodies) > 0 {
		c.addSubHeader("Request Body")
		c.addBodyTable(op.RequestBody.Bodies)
	}

	if len(op.Responses) > 0 {
		c.addSubHeader("Responses")
		c.addResponseTable(op.Responses)
	}

	if len(op.Securities) > 0 {
		c.addSubHeader("Security")
		c.pdf.SetFont("Arial", "", 9)
		for _, security := range op.Securities {
			c.pdf.CellFormat(pdfPageWidth, 5, fmt.Sprintf("- %s (%s)", security.Name, security.Type), "", 1, "", false, 0, "")
		}
	}

	// Separator
	c.pdf.Ln(2)
	c.pdf.SetDrawColor(220, 220, 220)
	c.pdf.Line(pdfMarginLeft, c.pdf.GetY(), pdfMarginLeft+pdfPageWidth, c.pdf.GetY())
	c.pdf.SetDrawColor(180, 180, 180)
	c.pdf.Ln(6)
}

func (c *PDFConverter) addTableHeader(colWidths []float64, headers []string) {
	c.pdf.SetFont("Arial", "B", 8)
	c.pdf.SetFillColor(245, 245, 245)
	for i, header := range headers {
		c.pdf.CellFormat(colWidths[i], 6, header, "1", 0, "", true, 0, "")
	}
	c.pdf.Ln(-1)
	c.pdf.SetFont("Arial", "", 8)
}

func (c *PDFConverter) addParameterTable(params []domain.ParameterEntity) {
	colWidths := []float64{35, 20, 15, 60, 60}
	c.addTableHeader(colWidths, []string{"Name", "In", "Required", "Type", "Description"})

	for _, param := range params {
		required := "No"
		if param.IsRequired {
			required = "Yes"
		}
		contents := []string{param.Name, param.In, required, typeLabel(param.Types), stripHTML(param.Description)}
		c.addTableRow(colWidths, contents, []string{"L", "L", "C", "L", "L"}, []int{0, 0, 0, c.typeLink(param.Types), 0})
	}
	c.pdf.Ln(3)
}

func (c *PDFConverter) addBodyTable(bodies []domain.BodyEntity) {
	colWidths := []float64{60, 130}
	c.addTableHeader(colWidths, []string{"Content-Type", "Object"})

	for _, body := range bodies {
		c.addTableRow(colWidths, []string{body.MediaType, typeLabel(body.Types)}, nil, []int{0, c.typeLink(body.Types)})
	}
	c.pdf.Ln(3)
}

func (c *PDFConverter) addResponseTable(responses []domain.ResponseEntity) {
	colWidths := []float64{20, 90, 80}
	c.addTableHeader(colWidths, []string{"Code", "Description", "Object"})

	for _, resp := range responses {
		object := ""
		linkID := 0
		if len(resp.Bodies) > 0 {
			object = typeLabel(resp.Bodies[0].Types)
			linkID = c.typeLink(resp.Bodies[0].Types)
		}
		c.addTableRow(colWidths, []string{resp.StatusCode, stripHTML(resp.Description), object}, []string{"C", "L", "L"}, []int{0, 0, linkID})
	}
	c.pdf.Ln(3)
}

func (c *PDFConverter) addComponent(component domain.ComponentEntity) {
	c.pdf.SetFont("Arial", "B", 12)
	c.pdf.CellFormat(pdfPageWidth, 7, component.Name, "", 1, "", false, 0, "")

	if len(component.Types) > 0 {
		c.pdf.SetFont("Arial", "", 9)
		c.pdf.CellFormat(pdfPageWidth, 5, fmt.Sprintf("Type: %s", typeLabel(component.Types)), "", 1, "", false, c.typeLink(component.Types), "")
	}

	if component.Description != "" {
		c.pdf.SetFont("Arial", "", 9)
		c.pdf.SetTextColor(100, 100, 100)
		c.pdf.MultiCell(pdfPageWidth, 4, stripHTML(component.Description), "", "", false)
		c.pdf.SetTextColor(0, 0, 0)
	}

	if len(component.PropertyItems) > 0 {
		c.pdf.Ln(2)
		colWidths := []float64{50, 50, 90}
		c.addTableHeader(colWidths, []string{"Name", "Type", "Description"})

		for _, prop := range component.PropertyItems {
			contents := []string{prop.Name, typeLabel(prop.Types), stripHTML(prop.Description)}
			c.addTableRow(colWidths, contents, nil, []int{0, c.typeLink(prop.Types), 0})
		}
	}

	c.pdf.Ln(6)
}

// typeLink returns the link to the first referenced component in types, or 0.
func (c *PDFConverter) typeLink(types []domain.PropertyTypeEntity) int {
	for _, t := range types {
		if t.IsReference() {
			return c.componentLinks[t.ReferencedType]
		}
	}
	return 0
}

func (c *PDFConverter) addTableRow(colWidths []float64, contents []string, aligns []string, linkIDs []int) {
	// Row height follows the tallest wrapped cell.
	maxLines := 1
	for i, content := range contents {
		lines := c.pdf.SplitLines([]byte(content), colWidths[i])
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}

	rowHeight := float64(maxLines) * pdfLineHeight

	c.checkPageBreak(rowHeight)

	startX := c.pdf.GetX()
	startY := c.pdf.GetY()

	for i, content := range contents {
		width := colWidths[i]

		align := ""
		if len(aligns) > i {
			align = aligns[i]
		}

		linkID := 0
		if len(linkIDs) > i {
			linkID = linkIDs[i]
		}

		if linkID > 0 {
			c.pdf.SetTextColor(0, 102, 204)
		}

		c.pdf.SetXY(startX, startY)
		c.pdf.MultiCell(width, pdfLineHeight, content, "0", align, false)
		if linkID > 0 {
			c.pdf.Link(startX, startY, width, rowHeight, linkID)
			c.pdf.SetTextColor(0, 0, 0)
		}

		c.pdf.Rect(startX, startY, width, rowHeight, "D")
		startX += width
	}

	c.pdf.SetXY(pdfMarginLeft, startY+rowHeight)
}

func (c *PDFConverter) checkPageBreak(height float64) {
	_, pageHeight := c.pdf.GetPageSize()
	_, _, _, bottomMargin := c.pdf.GetMargins()

	if c.pdf.GetY()+height > pageHeight-bottomMargin-10 {
		c.pdf.AddPage()
	}
}

func stripHTML(s string) string {
	result := s
	for {
		start := strings.Index(result, "<")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], ">")
		if end == -1 {
			break
		}
		result = result[:start] + result[start+end+1:]
	}
	result = strings.ReplaceAll(result, "&amp;", "&")
	result = strings.ReplaceAll(result, "&lt;", "<")
	result = strings.ReplaceAll(result, "&gt;", ">")
	result = strings.ReplaceAll(result, "&quot;", "\"")
	result = strings.ReplaceAll(result, "&#39;", "'")
	result = strings.ReplaceAll(result, "\n\n", "\n")
	return strings.TrimSpace(result)
}
