package matgen

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveGrouping(t *testing.T) {
	paths := []string{
		"textures/wood_BaseColor.png",
		"textures/wood_Roughness.png",
		"textures/wood_Normal.png",
		"textures/wood_Displacement.png",
		"textures/stone_albedo.png",
		"textures/readme.png",
	}
	res, err := Resolve(paths, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(res.Sets) != 2 {
		t.Fatalf("expected 2 sets, got %d", len(res.Sets))
	}
	if res.Sets[0].Identifier != "stone" || res.Sets[1].Identifier != "wood" {
		t.Fatalf("unexpected identifier order: %s, %s", res.Sets[0].Identifier, res.Sets[1].Identifier)
	}

	wood, ok := res.Set("wood")
	if !ok {
		t.Fatalf("wood set not found")
	}
	if len(wood.Channels()) != 4 {
		t.Fatalf("expected 4 channels in wood, got %v", wood.Channels())
	}
	if !wood.Complete(DefaultChannels()) {
		t.Fatalf("wood set should be complete")
	}
	if p, _ := wood.Path(ChannelNormal); p != "textures/wood_Normal.png" {
		t.Fatalf("unexpected normal path %q", p)
	}

	stone, _ := res.Set("stone")
	if _, ok := stone.Path(ChannelRoughness); ok {
		t.Fatalf("stone should have no roughness")
	}
	if len(res.Unmatched) != 1 || res.Unmatched[0] != "textures/readme.png" {
		t.Fatalf("unexpected unmatched: %v", res.Unmatched)
	}
}

func TestIdentifierDerivation(t *testing.T) {
	cases := []struct {
		path, id string
		channel  Channel
	}{
		{"T_Chair_01_Normal.png", "T_Chair_01", ChannelNormal},
		{"wood_basecolor_4k.png", "wood_4k", ChannelBaseColor},
		{"Rock-albedo.tif", "Rock", ChannelBaseColor},
		{"height_plate.exr", "plate", ChannelDisplacement},
		{"BaseColor.png", "material", ChannelBaseColor},
	}
	for _, c := range cases {
		m, ok := MatchFile(c.path, nil)
		if !ok {
			t.Fatalf("%s: expected a match", c.path)
		}
		if m.Identifier != c.id {
			t.Fatalf("%s: identifier %q, want %q", c.path, m.Identifier, c.id)
		}
		if m.Channel != c.channel {
			t.Fatalf("%s: channel %s, want %s", c.path, m.Channel, c.channel)
		}
	}
}

func TestMatchFileUnicodeStems(t *testing.T) {
	// Case folding must never move byte offsets between the folded and the
	// original stem: runes whose lowercase form grows ("Ⱥ" folds to a longer
	// encoding) or shrinks ("İ") would otherwise slice out of range or
	// corrupt the identifier.
	cases := []struct {
		path, id string
	}{
		{"ȺȺȺ_basecolor.png", "ȺȺȺ"},
		{"İİİ_basecolor.png", "İİİ"},
		{"Straße_Roughness.png", "Straße"},
	}
	for _, c := range cases {
		m, ok := MatchFile(c.path, nil)
		if !ok {
			t.Fatalf("%s: expected a match", c.path)
		}
		if m.Identifier != c.id {
			t.Fatalf("%s: identifier %q, want %q", c.path, m.Identifier, c.id)
		}
	}

	// Keywords themselves may carry non-ASCII runes and still fold.
	specs := DefaultChannels()
	specs[0].Keywords = "küste"
	m, ok := MatchFile("wand_KÜSTE.png", &ResolveOptions{Channels: specs})
	if !ok || m.Identifier != "wand" || m.Channel != ChannelBaseColor {
		t.Fatalf("folded keyword match failed: %+v", m)
	}
}

func TestLongestKeywordWins(t *testing.T) {
	// "displacement" contains "disp"; the longer keyword must win so the
	// identifier does not keep a "lacement" remainder.
	m, ok := MatchFile("floor_displacement.png", nil)
	if !ok {
		t.Fatalf("expected a match")
	}
	if m.Keyword != "displacement" {
		t.Fatalf("expected keyword displacement, got %q", m.Keyword)
	}
	if m.Identifier != "floor" {
		t.Fatalf("expected identifier floor, got %q", m.Identifier)
	}
}

func TestResolveChannelConflict(t *testing.T) {
	paths := []string{
		"t/wood_basecolor.png",
		"t/wood_albedo.png",
	}
	res, err := Resolve(paths, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(res.Sets) != 1 {
		t.Fatalf("expected 1 set, got %d", len(res.Sets))
	}
	// Lexicographically first path wins.
	if p, _ := res.Sets[0].Path(ChannelBaseColor); p != "t/wood_albedo.png" {
		t.Fatalf("unexpected winner %q", p)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Path != "t/wood_basecolor.png" {
		t.Fatalf("unexpected skipped: %v", res.Skipped)
	}
	if res.Skipped[0].Channel != ChannelBaseColor {
		t.Fatalf("unexpected skipped channel %s", res.Skipped[0].Channel)
	}
}

func TestResolveCaseSensitivity(t *testing.T) {
	paths := []string{
		"t/Wood_Normal.png",
		"t/wood_roughness.png",
	}

	res, err := Resolve(paths, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(res.Sets) != 1 {
		t.Fatalf("case-insensitive grouping expected 1 set, got %d", len(res.Sets))
	}

	res, err = Resolve(paths, &ResolveOptions{DisableCaseInsensitive: true})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// Default keywords are lowercase, so "Wood_Normal" no longer matches.
	if len(res.Sets) != 1 || len(res.Unmatched) != 1 {
		t.Fatalf("case-sensitive expected 1 set and 1 unmatched, got %d/%d", len(res.Sets), len(res.Unmatched))
	}
}

func TestResolveNoChannels(t *testing.T) {
	specs := DefaultChannels()
	for i := range specs {
		specs[i].Enabled = false
	}
	_, err := Resolve([]string{"a_normal.png"}, &ResolveOptions{Channels: specs})
	if !errors.Is(err, ErrNoChannels) {
		t.Fatalf("expected ErrNoChannels, got %v", err)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "crate_basecolor.png")
	touch(t, dir, "crate_roughness.png")
	touch(t, dir, "notes.txt")
	touch(t, filepath.Join(dir, "sub"), "barrel_normal.png")

	res, err := ScanDir(dir, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(res.Sets) != 1 || res.Sets[0].Identifier != "crate" {
		t.Fatalf("expected only crate set, got %+v", res.Sets)
	}

	res, err = ScanDir(dir, &ResolveOptions{Recursive: true})
	if err != nil {
		t.Fatalf("recursive scan: %v", err)
	}
	if len(res.Sets) != 2 {
		t.Fatalf("recursive scan expected 2 sets, got %d", len(res.Sets))
	}
}

func TestScanDirInlineRules(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "crate_basecolor.png")
	touch(t, dir, "crate_basecolor_preview.png")

	res, err := ScanDir(dir, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(res.Sets) != 2 {
		t.Fatalf("expected 2 sets without rules, got %d", len(res.Sets))
	}

	res, err = ScanDir(dir, &ResolveOptions{Rules: "*_preview.png"})
	if err != nil {
		t.Fatalf("scan with rules: %v", err)
	}
	if len(res.Sets) != 1 || res.Sets[0].Identifier != "crate" {
		t.Fatalf("expected preview file excluded, got %+v", res.Sets)
	}
	if len(res.Skipped) != 0 || len(res.Unmatched) != 0 {
		t.Fatalf("excluded file must not be reported: %+v", res)
	}
}

func TestScanDirRulesFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "crate_roughness.png")
	touch(t, dir, "crate_roughness_old.png")

	rulesPath := filepath.Join(t.TempDir(), "rules.txt")
	if err := os.WriteFile(rulesPath, []byte("*_old.png\n"), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	res, err := ScanDir(dir, &ResolveOptions{RulesFile: rulesPath})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(res.Sets) != 1 || res.Sets[0].Identifier != "crate" {
		t.Fatalf("expected only crate set, got %+v", res.Sets)
	}
	if p, _ := res.Sets[0].Path(ChannelRoughness); p != filepath.Join(dir, "crate_roughness.png") {
		t.Fatalf("unexpected roughness path %q", p)
	}

	if _, err := ScanDir(dir, &ResolveOptions{RulesFile: filepath.Join(dir, "missing.rules")}); err == nil {
		t.Fatalf("expected error for missing rules file")
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
