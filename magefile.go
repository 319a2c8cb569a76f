//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build both binaries
var Default = Build

// Build builds the web server and the terminal dashboard into bin/
func Build() error {
	if err := sh.RunV("go", "build", "-o", "bin/octofit-server", "./cmd/server"); err != nil {
		return fmt.Errorf("build server: %w", err)
	}
	if err := sh.RunV("go", "build", "-o", "bin/octofit", "./cmd/tui"); err != nil {
		return fmt.Errorf("build tui: %w", err)
	}
	return nil
}

// Test runs the unit tests with the race detector
func Test() error {
	return sh.RunV("go", "test", "-race", "-short", "./...")
}

// Lint runs gofmt and go vet
func Lint() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "magefile.go")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("gofmt needed on:\n%s", out)
	}
	return sh.RunV("go", "vet", "./...")
}

// Browser runs the Playwright tests (needs `go run github.com/playwright-community/playwright-go/cmd/playwright install chromium`)
func Browser() error {
	return sh.RunV("go", "test", "-tags", "browser", "./internal/adapters/http/...")
}

// QA runs lint then tests
func QA() {
	mg.SerialDeps(Lint, Test)
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}
