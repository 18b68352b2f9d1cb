// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/appraisal-tools/report-qa/internal/config"
	"github.com/appraisal-tools/report-qa/internal/genctx"
	"github.com/appraisal-tools/report-qa/internal/report"
)

type validateFlags struct {
	file        string
	textFile    string
	contextFile string
	layoutFile  string
	output      string
}

func newValidateCmd(global *globalFlags) *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a rendered report against its generation context",
		Long: "Validate reads a rendered report (--file: .pdf, .docx or plain text) and/or its extracted text (--text),\n" +
			"checks it against the generation context (--context: .json or .yaml) and prints the validation report.\n" +
			"Exits 2 when the report has errors.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, v, _, err := setup(global)
			if err != nil {
				return err
			}
			if flags.output != "" {
				cfg.Output = flags.output
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			inputs, err := loadInputs(flags)
			if err != nil {
				return err
			}

			result := v.Validate(cmd.Context(), inputs)
			if err := writeReport(cmd.OutOrStdout(), cfg.Output, result); err != nil {
				return err
			}

			if !result.Summary.Pass {
				return &FindingsDetectedError{Errors: result.Summary.Errors, Warnings: result.Summary.Warnings}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Rendered report (.pdf, .docx, or text)")
	cmd.Flags().StringVarP(&flags.textFile, "text", "t", "", "Extracted report text, used when --file is absent or unreadable")
	cmd.Flags().StringVarP(&flags.contextFile, "context", "c", "", "Generation context (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&flags.layoutFile, "layout", "", "Layout map (.json), passed through to the parsed document")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", fmt.Sprintf("Output format: %s, %s or %s (default from config)", config.OutputJSON, config.OutputYAML, config.OutputText))

	return cmd
}

// loadInputs reads every file named by flags into validator inputs.
func loadInputs(flags *validateFlags) (report.Inputs, error) {
	var inputs report.Inputs

	if flags.textFile != "" {
		data, err := os.ReadFile(flags.textFile)
		if err != nil {
			return report.Inputs{}, fmt.Errorf("failed to read text: %w", err)
		}
		inputs.TextExtracted = string(data)
	}

	if flags.file != "" {
		data, err := os.ReadFile(flags.file)
		if err != nil {
			return report.Inputs{}, fmt.Errorf("failed to read report: %w", err)
		}
		switch strings.ToLower(filepath.Ext(flags.file)) {
		case ".pdf":
			inputs.FileBytes = data
		case ".docx":
			inputs.FileBase64 = base64.StdEncoding.EncodeToString(data)
		default:
			if inputs.TextExtracted == "" {
				inputs.TextExtracted = string(data)
			}
		}
	}

	if flags.contextFile != "" {
		data, err := os.ReadFile(flags.contextFile)
		if err != nil {
			return report.Inputs{}, fmt.Errorf("failed to read context: %w", err)
		}
		gc, err := genctx.Parse(data, flags.contextFile)
		if err != nil {
			return report.Inputs{}, err
		}
		inputs.GenContext = gc
	}

	if flags.layoutFile != "" {
		data, err := os.ReadFile(flags.layoutFile)
		if err != nil {
			return report.Inputs{}, fmt.Errorf("failed to read layout: %w", err)
		}
		if err := json.Unmarshal(data, &inputs.LayoutMap); err != nil {
			return report.Inputs{}, fmt.Errorf("failed to parse layout %s: %w", flags.layoutFile, err)
		}
	}

	return inputs, nil
}
