package driver

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"pyrs/translator-go/pkg/translator"
)

// WriteTextReport lists the unsupported constructs and failures of each
// output, one per line, prefixed with the file name.
func WriteTextReport(w io.Writer, outputs []*Output) error {
	for _, out := range outputs {
		if out == nil {
			continue
		}
		if out.Err != nil {
			if _, err := fmt.Fprintf(w, "%s: %s: %v\n", out.Name, out.Status, out.Err); err != nil {
				return err
			}
			continue
		}
		for _, diag := range out.Unsupported {
			sep := ":"
			if diag.Span.IsZero() {
				sep = ": "
			}
			if _, err := fmt.Fprintf(w, "%s%s%s\n", out.Name, sep, diag); err != nil {
				return err
			}
		}
	}
	return nil
}

type reportDisk struct {
	Files []reportFile `yaml:"files"`
}

type reportFile struct {
	Name        string                  `yaml:"name"`
	Checksum    string                  `yaml:"checksum,omitempty"`
	Status      Status                  `yaml:"status"`
	Error       string                  `yaml:"error,omitempty"`
	Types       []string                `yaml:"types,omitempty"`
	Unsupported []translator.Diagnostic `yaml:"unsupported,omitempty"`
}

// WriteYAMLReport writes one entry per output with its status, declared
// types and unsupported constructs.
func WriteYAMLReport(w io.Writer, outputs []*Output) error {
	report := reportDisk{Files: make([]reportFile, 0, len(outputs))}
	for _, out := range outputs {
		if out == nil {
			continue
		}
		entry := reportFile{
			Name:        out.Name,
			Checksum:    out.Checksum,
			Status:      out.Status,
			Types:       out.Types,
			Unsupported: out.Unsupported,
		}
		if out.Err != nil {
			entry.Error = out.Err.Error()
		}
		report.Files = append(report.Files, entry)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("driver: encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("driver: encoder close: %w", err)
	}
	return nil
}
