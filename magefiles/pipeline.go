//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// runEngine builds the binary if needed and runs one pipeline stage.
func runEngine(args ...string) error {
	mg.Deps(Build)
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Convert transforms raw contract files under documents/raw/ into plain text.
func Convert() error {
	return runEngine("convert", "--batch")
}

// Segment splits converted contracts into per-document clause JSON files.
func Segment() error {
	return runEngine("segment", "--batch")
}

// Index ingests segmented clause files into the SQLite clause base.
func Index() error {
	return runEngine("clauses", "store")
}
