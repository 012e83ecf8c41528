/*
Package matgen scans texture folders into per-asset texture sets and builds
material graphs for them on a node-graph host.

Filenames are matched against per-channel keyword lists (BaseColor,
Roughness, Normal, Displacement by default); the matched keyword is stripped
to derive a set identifier, and files sharing an identifier form one texture
set. Each set becomes one material with a fixed per-channel node chain
(texture sampler → processing node → material input). Channels without a
matching file are skipped.

Resolver example:

	res, err := matgen.ScanDir("./textures", nil)
	if err != nil {
		// handle error
	}

Builder example:

	host := matgen.NewMemHost()
	built, err := matgen.BuildAll(host, res, nil)
	if err != nil {
		// handle error
	}
	_ = built

Validator example:

	issues := matgen.ValidateAll(res, nil)
	if len(issues) != 0 {
		// handle validation issues
	}

glTF host example:

	host := matgen.NewGLTFHost()
	if _, err := matgen.BuildAll(host, res, nil); err != nil {
		// handle error
	}
	if err := host.Save("materials.gltf"); err != nil {
		// handle error
	}
*/
package matgen
