// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdiddy/redline-engine/internal/container"
)

const imageStriprtf = "striprtf:latest"

// StriprtfConverter converts RTF files by piping them through the striprtf
// container image. It depends on a container.Runtime (docker or podman)
// injected at construction time.
type StriprtfConverter struct {
	runtime container.Runtime
}

// NewStriprtfConverter creates a converter that uses the given container
// runtime to run the striprtf image. It verifies that the image exists
// locally before returning.
func NewStriprtfConverter(rt container.Runtime) (*StriprtfConverter, error) {
	if err := rt.ImageExists(imageStriprtf); err != nil {
		return nil, fmt.Errorf("striprtf image not available in %s: %w", rt.Name(), err)
	}
	return &StriprtfConverter{runtime: rt}, nil
}

// Convert reads the RTF file at path, pipes it through the striprtf
// container, and returns the resulting plain text.
func (s *StriprtfConverter) Convert(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening RTF %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := s.runtime.Run(imageStriprtf, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with striprtf: %w", path, err)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("striprtf produced empty output for %s", path)
	}

	return out.String(), nil
}
