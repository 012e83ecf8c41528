package matgen

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/qmuntal/gltf"
)

// GLTFHost realizes material graphs as PBR materials in a glTF document.
//
// The node-graph surface maps onto the flat glTF material model: texture
// sampler nodes become image/texture entries, the base color chain lands on
// baseColorTexture, roughness on metallicRoughnessTexture, the bump chain on
// normalTexture, and displacement is recorded in material extras (core glTF
// has no displacement slot).
type GLTFHost struct {
	Doc    *gltf.Document   // Document receiving created materials
	models []*importedModel // Models opened by ImportModels
}

// importedModel is a glTF model opened for material assignment.
type importedModel struct {
	path     string
	object   string
	assigned string
	doc      *gltf.Document
}

// NewGLTFHost creates a host with a fresh glTF document.
func NewGLTFHost() *GLTFHost {
	return &GLTFHost{Doc: gltf.NewDocument()}
}

// CreateMaterial opens a new material graph that materializes on Commit.
func (h *GLTFHost) CreateMaterial(name string) (GraphBuilder, error) {
	return &gltfGraph{MemGraph: newMemGraph(name), host: h}, nil
}

// Material returns a created glTF material by name.
func (h *GLTFHost) Material(name string) (*gltf.Material, bool) {
	for _, m := range h.Doc.Materials {
		if m.Name == name {
			return m, true
		}
	}

	return nil, false
}

// ImportModels opens glTF models from dir and returns their object names.
func (h *GLTFHost) ImportModels(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExtension(path, []string{".gltf", ".glb"}) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var objects []string
	for _, path := range paths {
		doc, err := gltf.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open model %s: %w", path, err)
		}
		m := &importedModel{path: path, object: stemOf(path), doc: doc}
		h.models = append(h.models, m)
		objects = append(objects, m.object)
	}

	return objects, nil
}

// AssignMaterial assigns a created material to every primitive of an
// imported model. The material and its textures are cloned into the model
// document.
func (h *GLTFHost) AssignMaterial(object, material string) error {
	var model *importedModel
	for _, m := range h.models {
		if m.object == object {
			model = m
			break
		}
	}
	if model == nil {
		return fmt.Errorf("%w: %s", ErrUnknownObject, object)
	}

	src, ok := h.Material(material)
	if !ok {
		return fmt.Errorf("material %s not created on this host", material)
	}

	idx := cloneMaterial(model.doc, h.Doc, src)
	for _, mesh := range model.doc.Meshes {
		for _, prim := range mesh.Primitives {
			prim.Material = gltf.Index(idx)
		}
	}
	model.assigned = material

	return nil
}

// Save writes the host document; .glb extension selects binary form.
func (h *GLTFHost) Save(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		return gltf.SaveBinary(h.Doc, path)
	}
	return gltf.Save(h.Doc, path)
}

// SaveModels writes imported models with assigned materials into outDir,
// keeping their base names.
func (h *GLTFHost) SaveModels(outDir string) error {
	for _, m := range h.models {
		if m.assigned == "" {
			continue
		}
		out := filepath.Join(outDir, filepath.Base(m.path))
		var err error
		if strings.EqualFold(filepath.Ext(out), ".glb") {
			err = gltf.SaveBinary(m.doc, out)
		} else {
			err = gltf.Save(m.doc, out)
		}
		if err != nil {
			return fmt.Errorf("save model %s: %w", out, err)
		}
	}

	return nil
}

// gltfGraph stages node-graph calls and materializes them into the host
// document on Commit.
type gltfGraph struct {
	*MemGraph
	host *GLTFHost
}

// Commit implements GraphBuilder.
func (g *gltfGraph) Commit() error {
	if g.state != graphOpen {
		return ErrGraphClosed
	}

	doc := g.host.Doc
	mat := &gltf.Material{
		Name:                 g.GraphName,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{},
	}

	// Walk every chain that reaches the material or output node and pull
	// the sampler path at its head.
	for _, e := range g.edges {
		if e.to != g.material && e.to != g.output {
			continue
		}
		sampler := g.chainSampler(e.from)
		if sampler == nil {
			continue
		}
		path, ok := sampler.params[PortTexPath]
		if !ok {
			continue
		}

		switch e.toPort {
		case PortBaseColor:
			mat.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: addTexture(doc, path.Str)}
		case PortReflRoughness:
			mat.PBRMetallicRoughness.MetallicRoughnessTexture = &gltf.TextureInfo{Index: addTexture(doc, path.Str)}
		case PortBumpInput:
			mat.NormalTexture = &gltf.NormalTexture{Index: gltf.Index(addTexture(doc, path.Str))}
		case PortDisplacement:
			// Core glTF has no displacement input; keep the path in extras.
			setExtra(mat, "displacementTexture", path.Str)
		}
	}

	doc.Materials = append(doc.Materials, mat)
	return g.MemGraph.Commit()
}

// chainSampler finds the texture sampler feeding the given processing node.
func (g *gltfGraph) chainSampler(proc *memNode) *memNode {
	for _, e := range g.edges {
		if e.to == proc && e.from.kind == NodeTextureSampler {
			return e.from
		}
	}

	return nil
}

// addTexture appends an image and texture entry for path and returns the
// texture index.
func addTexture(doc *gltf.Document, path string) int {
	doc.Images = append(doc.Images, &gltf.Image{
		Name: stemOf(path),
		URI:  filepath.ToSlash(path),
	})
	imgIdx := len(doc.Images) - 1
	doc.Textures = append(doc.Textures, &gltf.Texture{Source: gltf.Index(imgIdx)})

	return len(doc.Textures) - 1
}

// setExtra records a key/value pair in the material extras map.
func setExtra(mat *gltf.Material, key, value string) {
	extras, ok := mat.Extras.(map[string]any)
	if !ok {
		extras = make(map[string]any)
		mat.Extras = extras
	}
	extras[key] = value
}

// cloneMaterial copies a material from srcDoc into dst, re-adding its
// textures, and returns the new material index.
func cloneMaterial(dst, srcDoc *gltf.Document, src *gltf.Material) int {
	out := &gltf.Material{Name: src.Name, Extras: cloneExtras(src.Extras)}

	if src.PBRMetallicRoughness != nil {
		pbr := &gltf.PBRMetallicRoughness{}
		if ti := src.PBRMetallicRoughness.BaseColorTexture; ti != nil {
			pbr.BaseColorTexture = &gltf.TextureInfo{Index: cloneTexture(dst, srcDoc, ti.Index)}
		}
		if ti := src.PBRMetallicRoughness.MetallicRoughnessTexture; ti != nil {
			pbr.MetallicRoughnessTexture = &gltf.TextureInfo{Index: cloneTexture(dst, srcDoc, ti.Index)}
		}
		out.PBRMetallicRoughness = pbr
	}
	if nt := src.NormalTexture; nt != nil && nt.Index != nil {
		out.NormalTexture = &gltf.NormalTexture{Index: gltf.Index(cloneTexture(dst, srcDoc, *nt.Index))}
	}

	dst.Materials = append(dst.Materials, out)
	return len(dst.Materials) - 1
}

// cloneExtras copies the extras map so clone and source never alias.
func cloneExtras(extras any) any {
	m, ok := extras.(map[string]any)
	if !ok {
		return extras
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

// cloneTexture copies one texture and its image from srcDoc into dst.
func cloneTexture(dst, srcDoc *gltf.Document, texIdx int) int {
	uri := ""
	name := ""
	if texIdx >= 0 && texIdx < len(srcDoc.Textures) {
		tex := srcDoc.Textures[texIdx]
		if tex.Source != nil && *tex.Source < len(srcDoc.Images) {
			img := srcDoc.Images[*tex.Source]
			uri = img.URI
			name = img.Name
		}
	}

	return addTextureNamed(dst, name, uri)
}

// addTextureNamed appends an image/texture pair with an explicit name.
func addTextureNamed(doc *gltf.Document, name, uri string) int {
	doc.Images = append(doc.Images, &gltf.Image{Name: name, URI: uri})
	imgIdx := len(doc.Images) - 1
	doc.Textures = append(doc.Textures, &gltf.Texture{Source: gltf.Index(imgIdx)})

	return len(doc.Textures) - 1
}
