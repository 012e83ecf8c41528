package matgen

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// RenderResolve writes a resolve result to writer as stable text.
func RenderResolve(w io.Writer, res *ResolveResult) error {
	// Buffered writer reduces syscall overhead and short writes.
	bw := bufio.NewWriter(w)

	for _, set := range res.Sets {
		if _, err := fmt.Fprintf(bw, "set %s\n", set.Identifier); err != nil {
			return err
		}
		for _, ch := range set.Channels() {
			path, _ := set.Path(ch)
			if _, err := fmt.Fprintf(bw, "  %-12s %s\n", ch, path); err != nil {
				return err
			}
		}
	}
	if len(res.Unmatched) > 0 {
		if _, err := fmt.Fprintln(bw, "unmatched"); err != nil {
			return err
		}
		for _, p := range res.Unmatched {
			if _, err := fmt.Fprintf(bw, "  %s\n", p); err != nil {
				return err
			}
		}
	}
	for _, sk := range res.Skipped {
		if _, err := fmt.Fprintf(bw, "skipped %s (%s %s: %s)\n", sk.Path, sk.Identifier, sk.Channel, sk.Reason); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// FormatResolve renders a resolve result to bytes.
func FormatResolve(res *ResolveResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderResolve(&buf, res); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// RenderBuild writes a build result to writer as stable text.
func RenderBuild(w io.Writer, res *BuildResult) error {
	bw := bufio.NewWriter(w)

	for _, m := range res.Materials {
		if _, err := fmt.Fprintf(bw, "material %s (set %s)\n", m.Name, m.Identifier); err != nil {
			return err
		}
		for _, ch := range m.Channels {
			if _, err := fmt.Fprintf(bw, "  wired   %s\n", ch); err != nil {
				return err
			}
		}
		for _, ch := range m.SkippedCh {
			if _, err := fmt.Fprintf(bw, "  skipped %s\n", ch); err != nil {
				return err
			}
		}
	}
	for _, obj := range res.Imported {
		if _, err := fmt.Fprintf(bw, "imported %s\n", obj); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// FormatBuild renders a build result to bytes.
func FormatBuild(res *BuildResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderBuild(&buf, res); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// RenderIssues writes validation issues to writer, one per line.
func RenderIssues(w io.Writer, issues []Issue) error {
	bw := bufio.NewWriter(w)

	for _, is := range issues {
		if is.Path != "" {
			if _, err := fmt.Fprintf(bw, "%s: %s (%s)\n", is.Level, is.Message, is.Path); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s: %s\n", is.Level, is.Message); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteResolveFile writes a resolve result report to a file.
func WriteResolveFile(path string, res *ResolveResult) error {
	b, err := FormatResolve(res)
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0o600)
}
