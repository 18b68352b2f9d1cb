// SPDX-License-Identifier: Apache-2.0

// Package genctx decodes the generation context that accompanies a rendered
// report, validating it against an embedded CUE schema.
package genctx

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/goccy/go-yaml"

	"github.com/appraisal-tools/report-qa/internal/report"
)

//go:embed schema.cue
var schema []byte

const schemaRoot = "#GenerationContext"

// ValidationError is a schema violation at a specific path of the context.
type ValidationError struct {
	Source string
	// Path is the dotted path to the offending value, e.g. "calc_5_2.eq_area".
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Source, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// Parse decodes a JSON or YAML generation context. The format follows the
// source name's extension; anything other than .yaml/.yml is read as JSON.
// Empty input yields an empty context.
func Parse(data []byte, source string) (*report.GenerationContext, error) {
	if source == "" {
		source = "<gen_context>"
	}
	if strings.TrimSpace(string(data)) == "" {
		return &report.GenerationContext{}, nil
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to convert YAML: %w", source, err)
		}
		data = converted
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema, cue.Filename("schema.cue"))
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	root := schemaValue.LookupPath(cue.ParsePath(schemaRoot))
	if root.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaRoot, root.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(source))
	if userValue.Err() != nil {
		return nil, formatError(userValue.Err(), source)
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatError(err, source)
	}

	var gc report.GenerationContext
	if err := unified.Decode(&gc); err != nil {
		return nil, formatError(err, source)
	}
	return &gc, nil
}

// formatError reduces a CUE error to the first ValidationError, keeping the path.
func formatError(err error, source string) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return fmt.Errorf("%s: %w", source, err)
	}

	first := errs[0]
	path := strings.Join(cueerrors.Path(first), ".")
	format, args := first.Msg()
	return &ValidationError{
		Source:  source,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}
