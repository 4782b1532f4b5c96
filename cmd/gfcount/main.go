// SPDX-License-Identifier: MIT

// Command gfcount counts the words of catalog patterns exactly and through
// their closed forms.
//
//	gfcount exact separated --count 10
//	gfcount closed-form letters-or-e --latex
//	gfcount check --count 20
//	gfcount init-config gfcount.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
