package utils

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// DotTo renders a DOT file with the Graphviz binary. An empty dotBin uses
// "dot" from PATH.
func DotTo(ctx context.Context, pathDOT, outPath, format, dotBin string) error {
	if format == "" {
		format = "svg"
	}
	if dotBin == "" {
		dotBin = "dot"
	}

	if _, err := exec.LookPath(dotBin); err != nil {
		return fmt.Errorf("graphviz: dot binary not found (%q): %w", dotBin, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, dotBin, "-T"+format, pathDOT, "-o", outPath)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("graphviz: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}
