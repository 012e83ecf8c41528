package matgen

import (
	"strings"
	"testing"
)

func TestFormatResolve(t *testing.T) {
	res, err := Resolve([]string{
		"t/wood_basecolor.png",
		"t/wood_normal.png",
		"t/stone_albedo.png",
		"t/landscape.png",
	}, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	b, err := FormatResolve(res)
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	want := "set stone\n" +
		"  BaseColor    t/stone_albedo.png\n" +
		"set wood\n" +
		"  BaseColor    t/wood_basecolor.png\n" +
		"  Normal       t/wood_normal.png\n" +
		"unmatched\n" +
		"  t/landscape.png\n"
	if string(b) != want {
		t.Fatalf("unexpected report:\n%s", b)
	}
}

func TestFormatBuild(t *testing.T) {
	host := NewMemHost()
	res, err := Resolve([]string{"t/wood_basecolor.png", "t/wood_normal.png"}, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	built, err := BuildAll(host, res, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	b, err := FormatBuild(built)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, "material wood (set wood)") {
		t.Fatalf("missing material line:\n%s", out)
	}
	if !strings.Contains(out, "wired   BaseColor") || !strings.Contains(out, "skipped Roughness") {
		t.Fatalf("missing channel lines:\n%s", out)
	}
}

func TestGraphDumpStable(t *testing.T) {
	host := NewMemHost()
	if _, err := Build(host, woodSet(), nil); err != nil {
		t.Fatalf("build: %v", err)
	}
	g, _ := host.Material("wood")

	dump := g.Dump()
	if !strings.Contains(dump, "texturesampler[Normal].outcolor -> bumpmap[Normal].input") {
		t.Fatalf("normal chain missing from dump:\n%s", dump)
	}
	if !strings.Contains(dump, "displacement[Displacement].out -> output[wood].displacement") {
		t.Fatalf("displacement chain missing from dump:\n%s", dump)
	}
	if dump != g.Dump() {
		t.Fatalf("dump not stable")
	}
}
