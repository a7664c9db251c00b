// Package splitter writes a transformed service as one YAML file per entity
// plus a markdown table of contents.
package splitter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"gopkg.in/yaml.v3"
)

// YamlMime headers identify the entity kind of a written file.
const (
	OperationMime      = "### YamlMime:RESTOperationV3"
	OperationGroupMime = "### YamlMime:RESTOperationGroupV3"
	ComponentMime      = "### YamlMime:RESTTypeV3"
	ComponentGroupMime = "### YamlMime:RESTComponentGroupV3"
)

const (
	componentsDir  = "components"
	componentsFile = "components.yml"
	tocFile        = "toc.md"
	fileExt        = ".yml"
)

// Writer lays out the entity files of services under a target directory.
type Writer struct {
	targetDir string
}

// NewWriter creates a writer rooted at targetDir.
func NewWriter(targetDir string) *Writer {
	return &Writer{targetDir: targetDir}
}

// ServiceDir returns the folder a service of the organization is written to.
func (w *Writer) ServiceDir(organization, service string) string {
	return filepath.Join(w.targetDir, FileName(organization), FileName(service))
}

// Result lists what was written for one service.
type Result struct {
	Dir   string
	Files []string
}

// Write recreates the service folder and writes every entity of model.
func (w *Writer) Write(organization string, model *domain.ServiceModel) (*Result, error) {
	if model == nil {
		return nil, fmt.Errorf("nothing to write for organization %q", organization)
	}
	dir := w.ServiceDir(organization, model.Name)
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("failed to clean service directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create service directory: %w", err)
	}

	result := &Result{Dir: dir}
	layout := newLayout(model)

	for _, group := range model.OperationGroups {
		if err := result.writeEntity(filepath.Join(dir, layout.groupFile(group)), OperationGroupMime, group); err != nil {
			return nil, err
		}
	}
	for _, op := range model.Operations {
		if err := result.writeEntity(filepath.Join(dir, layout.operationFile(op)), OperationMime, op); err != nil {
			return nil, err
		}
	}

	if model.Components != nil {
		for i := range model.Components.Components {
			component := &model.Components.Components[i]
			path := filepath.Join(dir, componentsDir, FileName(component.Name)+fileExt)
			if err := result.writeEntity(path, ComponentMime, component); err != nil {
				return nil, err
			}
		}
		group := componentGroupFile{
			ComponentGroupEntity: *model.Components,
			Components:           model.Components.ComponentIDs(),
		}
		if err := result.writeEntity(filepath.Join(dir, componentsFile), ComponentGroupMime, group); err != nil {
			return nil, err
		}
	}

	toc := filepath.Join(dir, tocFile)
	if err := os.WriteFile(toc, []byte(renderTOC(model, layout)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", toc, err)
	}
	result.Files = append(result.Files, toc)
	return result, nil
}

// componentGroupFile serializes a component group with its member ids.
type componentGroupFile struct {
	domain.ComponentGroupEntity `yaml:",inline"`
	Components                  []string `yaml:"components"`
}

func (r *Result) writeEntity(path, mime string, entity any) error {
	data, err := Marshal(mime, entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	r.Files = append(r.Files, path)
	return nil
}

// Marshal encodes entity as YAML preceded by the mime header line.
func Marshal(mime string, entity any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(mime)
	buf.WriteByte('\n')

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(entity); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// layout assigns relative file paths to groups and operations. Operation
// file names are unique per group folder.
type layout struct {
	operations map[string]string
	groups     map[string]string
}

func newLayout(model *domain.ServiceModel) *layout {
	l := &layout{
		operations: make(map[string]string),
		groups:     make(map[string]string),
	}
	for _, group := range model.OperationGroups {
		l.groups[group.ID] = groupDir(group.Name) + fileExt
	}

	used := make(map[string]bool)
	for _, op := range model.Operations {
		dir := groupDir(op.GroupName)
		name := filepath.Join(dir, FileName(op.Name)+fileExt)
		if used[name] {
			name = filepath.Join(dir, FileName(op.ID)+fileExt)
		}
		used[name] = true
		l.operations[op.ID] = name
	}
	return l
}

func (l *layout) groupFile(group *domain.OperationGroupEntity) string {
	return l.groups[group.ID]
}

func (l *layout) operationFile(op *domain.OperationEntity) string {
	return l.operations[op.ID]
}

// groupDir turns a dotted group name into nested folders.
func groupDir(groupName string) string {
	segments := make([]string, 0, 4)
	for _, segment := range strings.Split(groupName, ".") {
		if segment != "" {
			segments = append(segments, FileName(segment))
		}
	}
	if len(segments) == 0 {
		return FileName(groupName)
	}
	return filepath.Join(segments...)
}

// FileName lowercases name and replaces characters unsafe in paths with '-'.
func FileName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
