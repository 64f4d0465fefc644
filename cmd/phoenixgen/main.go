// Command phoenixgen renders Kotlin configuration snippets for CTRE Phoenix
// devices from the built-in or a custom device catalog.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/goliatone/go-phoenixgen/internal/errors"
	"github.com/goliatone/go-phoenixgen/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		err = errors.Classify(err)
		logging.UserError("%v", err)
		stop()
		os.Exit(errors.GetExitCode(err))
	}
}
