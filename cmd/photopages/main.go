// cmd/photopages/main.go
//
// Entry point for the photopages CLI. Everything interesting lives in
// internal/cli; this only runs the command tree and turns errors into exit 1.

package main

import (
	"fmt"
	"os"

	"github.com/falkman/photopages/internal/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		die("photopages: %v", err)
	}
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
