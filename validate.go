package matgen

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Image decoders for the probe check.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// IssueLevel represents severity of validation issue.
type IssueLevel string

const (
	// IssueError indicates a validation error.
	IssueError IssueLevel = "error"
	// IssueWarning indicates a validation warning.
	IssueWarning IssueLevel = "warning"
)

// Issue represents a validation issue.
type Issue struct {
	Level   IssueLevel `json:"level" yaml:"level"`                   // Severity level
	Code    string     `json:"code,omitempty" yaml:"code,omitempty"` // Machine-readable code
	Message string     `json:"message" yaml:"message"`               // Issue message
	Path    string     `json:"path,omitempty" yaml:"path,omitempty"` // Path to the affected resource
}

// probeExtensions are formats the registered decoders can actually read.
var probeExtensions = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".webp", ".bmp"}

// Validate validates a texture set and returns issues.
func Validate(set *TextureSet, opt *ValidateOptions) []Issue {
	vopt := opt.normalize()
	return validateSet(set, vopt)
}

// ValidateAll validates every set of a resolve result.
func ValidateAll(res *ResolveResult, opt *ValidateOptions) []Issue {
	vopt := opt.normalize()

	var out []Issue
	for _, set := range res.Sets {
		out = append(out, validateSet(set, vopt)...)
	}
	for _, sk := range res.Skipped {
		out = append(out, Issue{
			Level:   IssueWarning,
			Code:    "duplicate_channel",
			Message: fmt.Sprintf("set %s %s: %s", sk.Identifier, sk.Channel, sk.Reason),
			Path:    sk.Path,
		})
	}

	return out
}

func validateSet(set *TextureSet, opt ValidateOptions) []Issue {
	var out []Issue

	type probed struct {
		channel Channel
		w, h    int
	}
	var dims []probed

	for _, spec := range opt.Channels {
		if !spec.Enabled {
			continue
		}
		path, ok := set.Path(spec.Channel)
		if !ok {
			out = append(out, Issue{
				Level:   IssueWarning,
				Code:    "missing_channel",
				Message: fmt.Sprintf("set %s has no %s texture", set.Identifier, spec.Channel),
			})
			continue
		}

		if !opt.DisableExtensionsCheck && !hasExtension(path, opt.Extensions) {
			out = append(out, Issue{Level: IssueWarning, Code: "bad_extension", Message: "unexpected texture extension", Path: path})
		}

		if !opt.DisableFileCheck {
			if _, err := os.Stat(path); err != nil {
				out = append(out, Issue{Level: IssueError, Code: "missing_resource", Message: "texture file not found", Path: path})
				continue
			}
		}

		if !opt.DisableImageProbe && !opt.DisableFileCheck && probeSupported(path) {
			w, h, err := probeImage(path)
			if err != nil {
				out = append(out, Issue{Level: IssueWarning, Code: "undecodable_image", Message: err.Error(), Path: path})
				continue
			}
			dims = append(dims, probed{channel: spec.Channel, w: w, h: h})
		}
	}

	// All channels of one set are expected at the same resolution.
	for i := 1; i < len(dims); i++ {
		if dims[i].w != dims[0].w || dims[i].h != dims[0].h {
			path, _ := set.Path(dims[i].channel)
			out = append(out, Issue{
				Level: IssueWarning,
				Code:  "resolution_mismatch",
				Message: fmt.Sprintf("set %s: %s is %dx%d, %s is %dx%d",
					set.Identifier, dims[i].channel, dims[i].w, dims[i].h, dims[0].channel, dims[0].w, dims[0].h),
				Path: path,
			})
		}
	}

	return out
}

// probeSupported reports whether a decoder is registered for the file type.
func probeSupported(path string) bool {
	return hasExtension(path, probeExtensions)
}

// probeImage decodes the image header and returns its dimensions.
func probeImage(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		return 0, 0, fmt.Errorf("decode %s image: %w", ext, err)
	}

	return cfg.Width, cfg.Height, nil
}
