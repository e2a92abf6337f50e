// Package main is the single-binary entrypoint for Sundial.
package main

import "github.com/sundial-app/sundial/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
