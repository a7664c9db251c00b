// Package build runs the transformation for every service of a mapping file
// and writes the results.
package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/GabrielNunesIT/openapi-restdocs/internal/adapters/loader"
	"github.com/GabrielNunesIT/openapi-restdocs/internal/adapters/splitter"
	"github.com/GabrielNunesIT/openapi-restdocs/internal/aggregate"
	"github.com/GabrielNunesIT/openapi-restdocs/internal/config"
	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"github.com/GabrielNunesIT/openapi-restdocs/internal/transform"
)

// ErrDiagnostics is returned when a run completed with authoring errors.
var ErrDiagnostics = errors.New("build completed with errors")

// Options tune a build run.
type Options struct {
	// SourceRoot is joined with relative source paths of the mapping file.
	SourceRoot string
	// Converter additionally renders each service as one document. Optional.
	Converter domain.Converter
}

// Builder transforms and writes every service of a configuration.
type Builder struct {
	log    logger.ILogger
	cfg    *config.Config
	opts   Options
	writer *splitter.Writer
}

// New creates a builder for cfg.
func New(log logger.ILogger, cfg *config.Config, opts Options) *Builder {
	return &Builder{
		log:    log,
		cfg:    cfg,
		opts:   opts,
		writer: splitter.NewWriter(cfg.TargetDir),
	}
}

// Run builds every service. Structural errors stop the run. Authoring
// errors are logged and the run continues; they are returned together,
// wrapped in ErrDiagnostics, once all output was written.
func (b *Builder) Run(ctx context.Context) error {
	var reported []error

	for _, org := range b.cfg.Organizations {
		for _, svc := range org.Services {
			diags := domain.NewDiagnostics()

			model, err := b.BuildService(ctx, svc, diags)
			if err != nil {
				return fmt.Errorf("service %q: %w", svc.Name, err)
			}

			if err := b.write(org.Name, model); err != nil {
				return fmt.Errorf("service %q: %w", svc.Name, err)
			}

			for _, diag := range diags.Errors() {
				b.log.Errorf("%s/%s: %v", org.Name, svc.Name, diag)
			}
			reported = append(reported, diags.Errors()...)
		}
	}

	if len(reported) > 0 {
		return fmt.Errorf("%w: %d diagnostics: %w", ErrDiagnostics, len(reported), errors.Join(reported...))
	}
	return nil
}

// BuildService loads, transforms and optionally aggregates the sources of svc.
func (b *Builder) BuildService(ctx context.Context, svc config.Service, diags *domain.Diagnostics) (*domain.ServiceModel, error) {
	var model *domain.ServiceModel

	for _, source := range svc.Sources {
		path := b.sourcePath(source)
		b.log.Infof("Loading OpenAPI document from: %s", path)

		doc, err := loader.LoadFile(ctx, path, loader.Options{Validate: b.cfg.ValidateSources})
		if err != nil {
			return nil, err
		}

		t := transform.New(doc.Spec, doc.Order, transform.Options{
			ServiceName:       svc.Name,
			APIVersion:        svc.APIVersion,
			FoldRequiredQuery: b.cfg.FoldRequiredQuery,
		}, diags)

		part, err := t.TransformService()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		b.log.Infof("Transformed %d operations from: %s", len(part.Operations), path)

		model, err = Merge(model, part)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if model == nil {
		return nil, domain.Structuralf(svc.Name, "service has no sources")
	}
	if svc.TocTitle != "" {
		model.Title = svc.TocTitle
	}

	if b.cfg.Aggregate {
		result, err := aggregate.Run(model, aggregate.Options{ComponentPrefix: b.cfg.ComponentPrefix}, diags)
		if err != nil {
			return nil, err
		}
		b.log.Infof("Aggregated %s into %d operations", svc.Name, len(result.Aggregates))
	}
	return model, nil
}

func (b *Builder) sourcePath(source string) string {
	if filepath.IsAbs(source) || b.opts.SourceRoot == "" {
		return source
	}
	return filepath.Join(b.opts.SourceRoot, source)
}

func (b *Builder) write(organization string, model *domain.ServiceModel) (err error) {
	result, err := b.writer.Write(organization, model)
	if err != nil {
		return err
	}
	b.log.Infof("Wrote %d files to: %s", len(result.Files), result.Dir)

	if b.opts.Converter == nil {
		return nil
	}

	path := filepath.Join(result.Dir, splitter.FileName(model.Name)+Extension(b.opts.Converter.Format()))
	output, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := output.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	if err := b.opts.Converter.Convert(model, output); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	b.log.Infof("Successfully created: %s", path)
	return nil
}

// Extension returns the file extension used for a converter format.
func Extension(format string) string {
	switch format {
	case "confluence":
		return ".json"
	case "":
		return ""
	default:
		return "." + format
	}
}
