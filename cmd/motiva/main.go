// Package main is the single-binary entrypoint for Motiva,
// the gamification engine behind the learning dashboard.
package main

import "github.com/motiva-learn/motiva/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
