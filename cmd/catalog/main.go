// Package main is the command-line browser for the Calamity weapon catalog
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	apperrors "github.com/KirkDiggler/calamity-catalog/internal/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints failures the views have not already rendered
func reportError(w io.Writer, err error) {
	switch {
	case errors.Is(err, errReported):
	case apperrors.IsCanceled(err):
		fmt.Fprintln(w, "Interrupted")
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}
