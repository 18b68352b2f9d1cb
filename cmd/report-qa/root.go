// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/appraisal-tools/report-qa/internal/config"
	"github.com/appraisal-tools/report-qa/internal/report"
	"github.com/appraisal-tools/report-qa/internal/tool"
)

// version is set at build time via -ldflags.
var version = "dev"

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "report-qa",
		Short:         "Audit rendered Hebrew appraisal reports",
		Long:          "report-qa checks a rendered real-estate appraisal report against its generation context and reports structural, numerical and localization defects.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a config file (yaml, json or toml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging to stderr")

	cmd.AddCommand(newValidateCmd(flags), newServeCmd(flags), newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// setup loads configuration and builds the logger and validator for a command.
func setup(flags *globalFlags) (*config.Config, *report.Validator, *log.Logger, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "report-qa",
		Level:  cfg.Level(),
	})
	if flags.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	loc := cfg.Location()
	v := tool.NewValidator(
		report.WithLogger(logger),
		report.WithNow(func() time.Time { return time.Now().In(loc) }),
	)
	return cfg, v, logger, nil
}

// FindingsDetectedError is returned when a validated report fails.
type FindingsDetectedError struct {
	Errors   int
	Warnings int
}

func (e *FindingsDetectedError) Error() string {
	return fmt.Sprintf("report failed validation: %d errors, %d warnings", e.Errors, e.Warnings)
}

// ExitCode returns the exit code for a failing report (always 2).
func (e *FindingsDetectedError) ExitCode() int {
	return 2
}

// ExitCoder is implemented by errors that carry a specific process exit code.
type ExitCoder interface {
	ExitCode() int
}

// exitCodeFromError returns 0 for nil, the carried code for ExitCoder errors and 1 otherwise.
func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}
