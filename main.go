package main

import (
	"fmt"
	"os"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/check"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("usage: %s <claim> [evidence-url ...]\n", os.Args[0])
		os.Exit(1)
	}
	base := os.Getenv("TRUTHLAYER_BASE_URL")
	if err := check.Quick(base, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
