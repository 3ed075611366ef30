// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container detects a local container runtime and runs one-shot
// images with piped stdio. The conversion stage uses it to shell out to the
// rtf-to-text image without linking any document parser into the binary.
package container

import (
	"fmt"
	"io"
	"os/exec"
)

// Runtime provides container operations: checking availability, verifying
// images, and running containers.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// ImageExists checks whether the named image exists locally.
	ImageExists(image string) error

	// Run executes a container with the given image, piping stdin and stdout.
	Run(image string, stdin io.Reader, stdout io.Writer) error
}

// commander abstracts command execution for testing.
type commander interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// osCommander is the production commander backed by os/exec.
type osCommander struct{}

func (osCommander) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osCommander) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (osCommander) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

// runtimeSpec captures the per-binary differences between docker and
// podman: only the binary name and the image-existence subcommand vary.
type runtimeSpec struct {
	bin        string
	imageCheck []string
}

var (
	dockerSpec = runtimeSpec{bin: "docker", imageCheck: []string{"image", "inspect"}}
	podmanSpec = runtimeSpec{bin: "podman", imageCheck: []string{"image", "exists"}}
)

// cliRuntime implements Runtime for a specific container binary.
type cliRuntime struct {
	spec runtimeSpec
	cmd  commander
}

func (r *cliRuntime) Name() string { return r.spec.bin }

func (r *cliRuntime) Available() bool {
	if _, err := r.cmd.LookPath(r.spec.bin); err != nil {
		return false
	}
	return r.cmd.RunSilent(r.spec.bin, "info") == nil
}

func (r *cliRuntime) ImageExists(image string) error {
	args := append(append([]string{}, r.spec.imageCheck...), image)
	if err := r.cmd.RunSilent(r.spec.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.spec.bin, err)
	}
	return nil
}

func (r *cliRuntime) Run(image string, stdin io.Reader, stdout io.Writer) error {
	if err := r.cmd.RunPiped(r.spec.bin, []string{"run", "--rm", "-i", image}, stdin, stdout); err != nil {
		return fmt.Errorf("running %s container %s: %w", r.spec.bin, image, err)
	}
	return nil
}

var defaultCommander commander = osCommander{}

// DetectRuntime tries docker first, falls back to podman. Returns an error
// if neither runtime is available.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultCommander)
}

func detectRuntime(cmd commander) (Runtime, error) {
	for _, spec := range []runtimeSpec{dockerSpec, podmanSpec} {
		rt := &cliRuntime{spec: spec, cmd: cmd}
		if rt.Available() {
			return rt, nil
		}
	}
	return nil, fmt.Errorf("no container runtime available: neither %s nor %s found or operational",
		dockerSpec.bin, podmanSpec.bin)
}
