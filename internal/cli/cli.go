// Package cli provides the command-line interface for the REST documentation generator.
package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/GabrielNunesIT/openapi-restdocs/internal/adapters/converters"
	"github.com/GabrielNunesIT/openapi-restdocs/internal/build"
	"github.com/GabrielNunesIT/openapi-restdocs/internal/config"
	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"github.com/spf13/cobra"
)

// yamlFormat writes entity files only.
const yamlFormat = "yaml"

// CLI holds the command-line interface configuration.
type CLI struct {
	log            logger.ILogger
	rootCmd        *cobra.Command
	mappingFile    string
	sourceRoot     string
	outputDir      string
	format         string
	aggregate      bool
	skipValidation bool
}

// New creates a new CLI instance.
func New(log logger.ILogger) *CLI {
	cli := &CLI{
		log: log,
	}

	cli.rootCmd = &cobra.Command{
		Use:           "openapi-restdocs",
		Short:         "Transform OpenAPI documents into REST reference entities",
		Long:          "A CLI tool that transforms OpenAPI 3.x documents into normalized operation, operation-group and component files for REST reference documentation, optionally rendered as PDF, Word (DOCX) or Confluence documents.",
		RunE:          cli.run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.setupFlags()

	return cli
}

func (c *CLI) setupFlags() {
	c.rootCmd.Flags().StringVarP(&c.mappingFile, "mapping", "m", "", "Path to the mapping file (required)")
	c.rootCmd.Flags().StringVarP(&c.sourceRoot, "source-root", "s", "", "Directory relative source paths are resolved against (default: mapping file directory)")
	c.rootCmd.Flags().StringVarP(&c.outputDir, "output", "o", "", "Target directory, overrides target_dir")
	c.rootCmd.Flags().StringVarP(&c.format, "format", "f", yamlFormat, "Output format: yaml, pdf, docx, confluence")
	c.rootCmd.Flags().BoolVar(&c.aggregate, "aggregate", false, "Fold alias operations, overrides aggregate")
	c.rootCmd.Flags().BoolVar(&c.skipValidation, "skip-validation", false, "Do not validate source documents")

	_ = c.rootCmd.MarkFlagRequired("mapping")
}

// Execute runs the CLI.
func (c *CLI) Execute() error {
	return c.rootCmd.Execute()
}

// SetArgs replaces the command-line arguments, for tests.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func (c *CLI) run(cmd *cobra.Command, _ []string) error {
	c.log.Infof("Loading mapping file from: %s", c.mappingFile)

	cfg, err := config.Load(c.mappingFile)
	if err != nil {
		return fmt.Errorf("failed to load mapping file: %w", err)
	}

	c.applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	converter, err := c.getConverter()
	if err != nil {
		return err
	}

	sourceRoot := c.sourceRoot
	if sourceRoot == "" {
		sourceRoot = filepath.Dir(c.mappingFile)
	}

	builder := build.New(c.log, cfg, build.Options{
		SourceRoot: sourceRoot,
		Converter:  converter,
	})

	if err := builder.Run(cmd.Context()); err != nil {
		return err
	}

	c.log.Infof("Successfully built documentation in: %s", cfg.TargetDir)

	return nil
}

// applyFlags overrides file values with the flags set on the command line.
func (c *CLI) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if c.outputDir != "" {
		cfg.TargetDir = c.outputDir
	}
	if cmd.Flags().Changed("aggregate") {
		cfg.Aggregate = c.aggregate
	}
	if c.skipValidation {
		cfg.ValidateSources = false
	}
}

func (c *CLI) getConverter() (domain.Converter, error) {
	format := strings.ToLower(c.format)

	switch format {
	case yamlFormat, "yml", "":
		return nil, nil
	case "pdf":
		return converters.NewPDFConverter(), nil
	case "docx", "word":
		return converters.NewDocxConverter(), nil
	case "confluence", "adf":
		return converters.NewADFConverter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: yaml, pdf, docx, confluence)", c.format)
	}
}
