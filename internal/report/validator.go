// SPDX-License-Identifier: Apache-2.0

package report

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Validator audits rendered appraisal reports. It holds no per-call state and
// is safe for concurrent use.
type Validator struct {
	parsers []DocumentParser
	logger  *log.Logger
	now     func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithParsers registers document parsers. Order matters: the first parser
// that can handle a source wins.
func WithParsers(parsers ...DocumentParser) Option {
	return func(v *Validator) {
		v.parsers = append(v.parsers, parsers...)
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithNow sets the clock that date checks compare against.
func WithNow(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// NewValidator creates a Validator. Without parsers only extracted text is used.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "report-qa"}),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate ingests the report, runs every check and aggregates the results.
// It always returns a complete report.
func (v *Validator) Validate(ctx context.Context, in Inputs) ValidationReport {
	doc := v.Ingest(ctx, in)

	var gc GenerationContext
	if in.GenContext != nil {
		gc = *in.GenContext
	}

	checks := v.RunChecks(doc, gc)
	result := Aggregate(checks, doc.TotalPages)

	v.logger.Debug("report validated",
		"pages", result.Summary.Pages,
		"checks", len(result.Checks),
		"errors", result.Summary.Errors,
		"warnings", result.Summary.Warnings,
	)
	return result
}

// selectParser returns the first registered parser that can handle the given source.
func (v *Validator) selectParser(source Source) (DocumentParser, error) {
	for _, parser := range v.parsers {
		if parser.CanHandle(source) {
			return parser, nil
		}
	}
	return nil, fmt.Errorf("no parser found for source")
}

// RegisteredParsers returns the names of all currently registered parsers.
func (v *Validator) RegisteredParsers() []string {
	names := make([]string, len(v.parsers))
	for i, parser := range v.parsers {
		names[i] = parser.Name()
	}
	return names
}
