// Command tarragon runs, inspects and formats Tarragon programs.
package main

import (
	"context"
	"os"
)

// Version is set at compile time via -ldflags
var Version = "0.1.0"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
