// Package main is the entry point for the r-auth CLI.
package main

import (
	"os"

	"github.com/ervan0707/r-auth/cmd/rauth/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
