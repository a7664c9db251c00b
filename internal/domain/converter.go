package domain

import "io"

// Converter renders a transformed service into a single document.
type Converter interface {
	// Convert writes the service to output in the target format.
	Convert(service *ServiceModel, output io.Writer) error

	// Format returns the output format name (e.g., "pdf", "docx").
	Format() string
}
