package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/kpango/glg"

	"github.com/matgen/matgen"
)

func main() {
	dir := flag.String("dir", "", "The folder to scan for texture files.")
	configPath := flag.String("config", "", "Optional channel configuration YAML file.")
	rulesFile := flag.String("rules", "", "Optional gitignore-like exclude rules file applied to scanned paths.")
	prefix := flag.String("prefix", "", "Material name prefix prepended to each set identifier.")
	name := flag.String("name", "", "Explicit material name; only sensible when the folder resolves to one set.")
	recursive := flag.Bool("recursive", false, "Scan subdirectories as well.")
	out := flag.String("out", "", "Write created materials to this glTF file (.gltf or .glb).")
	importModels := flag.Bool("import-models", false, "Import glTF models from the scanned folder and assign the created material.")
	modelsOut := flag.String("models-out", "", "Directory for models written after material assignment (default the -out directory).")
	dryRun := flag.Bool("dry-run", false, "Print resolved texture sets without building materials.")

	flag.Parse()

	if *dir == "" {
		glg.Errorf("Forgot to specify a texture folder with -dir")
		flag.Usage()
		os.Exit(2)
	}

	cfg := matgen.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = matgen.LoadConfigFile(*configPath)
		if err != nil {
			glg.Fatalf("Error loading config: %s", err.Error())
		}
	}
	if *recursive {
		cfg.Recursive = true
	}
	if *prefix != "" {
		cfg.NamePrefix = *prefix
	}

	ropt := cfg.ResolveOptions()
	ropt.RulesFile = *rulesFile

	res, err := matgen.ScanDir(*dir, ropt)
	if err != nil {
		glg.Fatalf("Error scanning %s: %s", *dir, err.Error())
	}
	if len(res.Sets) == 0 {
		glg.Warnf("No texture sets found in %s", *dir)
		return
	}
	glg.Infof("Resolved %d texture set(s), %d unmatched file(s), %d skipped",
		len(res.Sets), len(res.Unmatched), len(res.Skipped))

	for _, issue := range matgen.ValidateAll(res, cfg.ValidateOptions()) {
		if issue.Level == matgen.IssueError {
			glg.Errorf("%s (%s)", issue.Message, issue.Path)
			continue
		}
		glg.Warnf("%s (%s)", issue.Message, issue.Path)
	}

	if *dryRun {
		if err := matgen.RenderResolve(os.Stdout, res); err != nil {
			glg.Fatalf("Error rendering report: %s", err.Error())
		}
		return
	}

	bopt := cfg.BuildOptions()
	bopt.Name = *name
	bopt.ImportModels = *importModels
	bopt.ModelsDir = *dir

	var host matgen.Host
	var gltfHost *matgen.GLTFHost
	if *out != "" {
		gltfHost = matgen.NewGLTFHost()
		host = gltfHost
	} else {
		host = matgen.NewMemHost()
	}

	built, err := matgen.BuildAll(host, res, bopt)
	if err != nil {
		glg.Fatalf("Error building materials: %s", err.Error())
	}
	for _, m := range built.Materials {
		glg.Infof("Created material %s with %d channel(s)", m.Name, len(m.Channels))
	}
	for _, obj := range built.Imported {
		glg.Infof("Assigned material to imported model %s", obj)
	}

	if gltfHost != nil {
		if err := gltfHost.Save(*out); err != nil {
			glg.Fatalf("Error writing %s: %s", *out, err.Error())
		}
		glg.Infof("Wrote %s", *out)

		if *importModels {
			dest := *modelsOut
			if dest == "" {
				dest = filepath.Dir(*out)
			}
			if err := gltfHost.SaveModels(dest); err != nil {
				glg.Fatalf("Error writing models: %s", err.Error())
			}
		}
		return
	}

	// No output document requested; show the built graphs instead.
	if err := matgen.RenderBuild(os.Stdout, built); err != nil {
		glg.Fatalf("Error rendering report: %s", err.Error())
	}
}
