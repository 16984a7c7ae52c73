package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/fivhter/internal/shared"
	"github.com/desertthunder/fivhter/internal/ui"
)

func main() {
	logger := shared.NewLogger(nil)

	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := runner.app().Run(context.Background(), os.Args); err != nil {
		var failed *resultError
		if errors.As(err, &failed) {
			os.Stderr.WriteString(ui.Styles.Err(failed.Error()) + "\n")
			os.Exit(1)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
