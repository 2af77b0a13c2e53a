// Command formcheck validates a YAML form description and prints a report.
//
//	formcheck validate --spec signup.yaml --lang nb --async
//	formcheck kinds
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// overridden during build with ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
