// Package loader reads OpenAPI documents with kin-openapi and records the
// declaration order the parsed model loses.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"github.com/getkin/kin-openapi/openapi3"
)

// Options control loading.
type Options struct {
	// Validate runs kin-openapi validation and fails on errors.
	Validate bool
}

// Document is a parsed source document.
type Document struct {
	Path  string
	Spec  *openapi3.T
	Order *domain.DeclarationOrder
}

// LoadFile reads and parses the document at path.
func LoadFile(ctx context.Context, path string, opts Options) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI file: %w", err)
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	loader.Context = ctx

	spec, err := loader.LoadFromFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI file: %w", err)
	}
	return newDocument(ctx, absPath, data, spec, opts)
}

// LoadData parses an in-memory document. External references are resolved
// relative to the working directory.
func LoadData(ctx context.Context, data []byte, opts Options) (*Document, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	loader.Context = ctx

	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}
	return newDocument(ctx, "", data, spec, opts)
}

func newDocument(ctx context.Context, path string, data []byte, spec *openapi3.T, opts Options) (*Document, error) {
	if opts.Validate {
		validation := []openapi3.ValidationOption{
			openapi3.DisableExamplesValidation(),
			openapi3.DisableSchemaDefaultsValidation(),
		}
		if err := spec.Validate(ctx, validation...); err != nil {
			return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
		}
	}

	order, err := ReadOrder(data)
	if err != nil {
		return nil, fmt.Errorf("failed to index declaration order: %w", err)
	}
	return &Document{Path: path, Spec: spec, Order: order}, nil
}
