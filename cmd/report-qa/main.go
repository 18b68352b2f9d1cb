// SPDX-License-Identifier: Apache-2.0

// Command report-qa audits rendered appraisal reports, from the command line
// or as an MCP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := newRootCmd().ExecuteContext(ctx)
	var findings *FindingsDetectedError
	if err != nil && !errors.As(err, &findings) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitCodeFromError(err))
}
