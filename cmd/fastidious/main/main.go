package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/fastidious/cmd/fastidious"
	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/style"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := fastidious.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// is-applied answers "no" through the exit status alone
		if !errors.IsErrorCode(err, errors.ErrNotApplied) {
			fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		}
		stop()
		os.Exit(1)
	}
}
