package splitter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// DisplayName turns a group segment such as "calendarGroup" into a title.
func DisplayName(segment string) string {
	return titleCaser.String(segment)
}

// groupTitle titles every segment of a dotted group name.
func groupTitle(name string) string {
	segments := strings.Split(name, ".")
	for i, segment := range segments {
		segments[i] = DisplayName(segment)
	}
	return strings.Join(segments, ".")
}

// RenderTOC renders the table of contents of model. The aggregate tree is
// used when aggregation ran, otherwise one entry per operation group.
func RenderTOC(model *domain.ServiceModel) string {
	return renderTOC(model, newLayout(model))
}

func renderTOC(model *domain.ServiceModel, l *layout) string {
	var b strings.Builder
	title := model.Title
	if title == "" {
		title = model.Name
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if model.Aggregate != nil && model.Aggregate.Root != nil {
		writeTree(&b, model.Aggregate.Root, l)
	} else {
		for _, group := range model.OperationGroups {
			fmt.Fprintf(&b, "- [%s](%s)\n", groupTitle(group.Name), tocLink(l.groupFile(group)))
			for _, id := range group.Operations {
				op := model.Operation(id)
				if op == nil {
					continue
				}
				fmt.Fprintf(&b, "  - [%s](%s)\n", op.Name, tocLink(l.operationFile(op)))
			}
		}
	}

	if model.Components != nil && len(model.Components.Components) > 0 {
		fmt.Fprintf(&b, "- [Components](%s)\n", componentsFile)
		for _, c := range model.Components.Components {
			fmt.Fprintf(&b, "  - [%s](%s)\n", c.Name, tocLink(filepath.Join(componentsDir, FileName(c.Name)+fileExt)))
		}
	}
	return b.String()
}

func writeTree(b *strings.Builder, root *domain.RestTocGroup, l *layout) {
	root.Walk(func(node *domain.RestTocGroup, path []string) {
		if len(path) == 0 {
			return
		}
		indent := strings.Repeat("  ", len(path)-1)
		fmt.Fprintf(b, "%s- %s\n", indent, DisplayName(node.Name))
		for _, leaf := range node.Leaves {
			op := leaf.MainOperation
			fmt.Fprintf(b, "%s  - [%s](%s)\n", indent, op.Name, tocLink(l.operationFile(op)))
		}
	})
}

func tocLink(path string) string {
	return filepath.ToSlash(path)
}
