package matgen

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/woozymasta/pathrules"
)

// ScanDir scans a directory for texture files and groups them into sets.
func ScanDir(dir string, opt *ResolveOptions) (*ResolveResult, error) {
	ropt := opt.normalize()

	excluded, err := newExcluder(ropt)
	if err != nil {
		return nil, err
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !ropt.Recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasExtension(path, ropt.Extensions) {
			return nil
		}
		rel, rerr := filepath.Rel(dir, path)
		if rerr != nil {
			rel = d.Name()
		}
		if excluded(filepath.ToSlash(rel)) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	return resolve(paths, ropt)
}

// Resolve groups already collected texture paths into sets.
func Resolve(paths []string, opt *ResolveOptions) (*ResolveResult, error) {
	return resolve(paths, opt.normalize())
}

func resolve(paths []string, opt ResolveOptions) (*ResolveResult, error) {
	if !hasEnabledChannel(opt.Channels) {
		return nil, ErrNoChannels
	}

	// Sorted input makes conflict resolution first-wins deterministic.
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	res := &ResolveResult{}
	byKey := make(map[string]*TextureSet)
	for _, path := range sorted {
		match, ok := matchFile(path, opt)
		if !ok {
			res.Unmatched = append(res.Unmatched, path)
			continue
		}

		key := groupKey(match.Identifier, opt.DisableCaseInsensitive)
		set := byKey[key]
		if set == nil {
			set = &TextureSet{Identifier: match.Identifier, Textures: make(map[Channel]string)}
			byKey[key] = set
			res.Sets = append(res.Sets, set)
		}
		if prev, dup := set.Textures[match.Channel]; dup {
			res.Skipped = append(res.Skipped, SkippedFile{
				Path:       path,
				Channel:    match.Channel,
				Identifier: set.Identifier,
				Reason:     fmt.Sprintf("channel already matched by %s", prev),
			})
			continue
		}
		set.Textures[match.Channel] = path
	}

	res.sortSets()
	return res, nil
}

// hasEnabledChannel reports whether any channel in the table is enabled.
func hasEnabledChannel(specs []ChannelSpec) bool {
	for _, s := range specs {
		if s.Enabled {
			return true
		}
	}

	return false
}

// newExcluder compiles the configured exclude rules into a predicate.
func newExcluder(opt ResolveOptions) (func(string) bool, error) {
	var rules []pathrules.Rule

	if opt.RulesFile != "" {
		fromFile, err := pathrules.LoadRulesFile(opt.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("load rules %s: %w", opt.RulesFile, err)
		}
		rules = append(rules, fromFile...)
	}
	if opt.Rules != "" {
		inline, err := pathrules.ParseRules(strings.NewReader(opt.Rules))
		if err != nil {
			return nil, fmt.Errorf("parse rules: %w", err)
		}
		rules = append(rules, inline...)
	}
	if len(rules) == 0 {
		return func(string) bool { return false }, nil
	}

	m, err := pathrules.NewMatcher(rules, pathrules.MatcherOptions{})
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}

	return func(path string) bool { return m.Excluded(path, false) }, nil
}
