package matgen

import "fmt"

// Build creates one material graph on the host for a texture set.
//
// Channels absent from the set are skipped; channels present are wired as
// sampler → processor → target port inside a single graph transaction.
func Build(h Host, set *TextureSet, opt *BuildOptions) (*MaterialResult, error) {
	bopt := opt.normalize()
	return build(h, set, bopt)
}

// BuildAll builds one material per resolved set, in identifier order.
// When opt.ImportModels is set and the host implements ModelImporter, model
// files are imported and the first created material is assigned to them.
func BuildAll(h Host, res *ResolveResult, opt *BuildOptions) (*BuildResult, error) {
	bopt := opt.normalize()

	out := &BuildResult{}
	for _, set := range res.Sets {
		mr, err := build(h, set, bopt)
		if err != nil {
			return out, fmt.Errorf("build %s: %w", set.Identifier, err)
		}
		out.Materials = append(out.Materials, mr)
	}

	if bopt.ImportModels && len(out.Materials) > 0 {
		imp, ok := h.(ModelImporter)
		if !ok {
			return out, ErrNoImporter
		}
		if bopt.ModelsDir == "" {
			return out, ErrNoModelsDir
		}
		objects, err := imp.ImportModels(bopt.ModelsDir)
		if err != nil {
			return out, fmt.Errorf("import models: %w", err)
		}
		for _, obj := range objects {
			if err := imp.AssignMaterial(obj, out.Materials[0].Name); err != nil {
				return out, fmt.Errorf("assign %s: %w", obj, err)
			}
		}
		out.Imported = objects
	}

	return out, nil
}

func build(h Host, set *TextureSet, opt BuildOptions) (*MaterialResult, error) {
	if set.Empty() {
		return nil, ErrEmptySet
	}
	if !hasEnabledChannel(opt.Channels) {
		return nil, ErrNoChannels
	}

	name := opt.Name
	if name == "" {
		name = opt.NamePrefix + set.Identifier
	}

	g, err := h.CreateMaterial(name)
	if err != nil {
		return nil, err
	}

	mr := &MaterialResult{Name: name, Identifier: set.Identifier}
	for _, spec := range opt.Channels {
		if !spec.Enabled {
			continue
		}
		path, ok := set.Path(spec.Channel)
		if !ok {
			mr.SkippedCh = append(mr.SkippedCh, spec.Channel)
			continue
		}
		if err := buildChain(g, spec, path); err != nil {
			// One failed chain voids the whole material.
			_ = g.Rollback()
			return nil, fmt.Errorf("channel %s: %w", spec.Channel, err)
		}
		mr.Channels = append(mr.Channels, spec.Channel)
	}

	if err := g.Commit(); err != nil {
		return nil, err
	}

	return mr, nil
}

// buildChain wires sampler → processor → target for one channel.
func buildChain(g GraphBuilder, spec ChannelSpec, path string) error {
	ports, ok := processorPorts[spec.Processor]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProcessor, spec.Processor)
	}

	tex, err := g.AddNode(NodeTextureSampler, string(spec.Channel))
	if err != nil {
		return err
	}
	if err := g.SetParam(tex, PortTexPath, String(path)); err != nil {
		return err
	}
	if spec.Raw {
		if err := g.SetParam(tex, PortTexColorspace, String(ColorspaceRaw)); err != nil {
			return err
		}
	}

	proc, err := g.AddNode(spec.Processor, string(spec.Channel))
	if err != nil {
		return err
	}
	if spec.Processor == NodeBumpMap {
		if err := g.SetParam(proc, PortBumpInputType, Int(BumpTangentNormal)); err != nil {
			return err
		}
	}

	if err := g.Connect(tex, PortOutColor, proc, ports.In); err != nil {
		return err
	}

	target := g.MaterialNode()
	if spec.ToOutput {
		target = g.OutputNode()
	}

	return g.Connect(proc, ports.Out, target, spec.Target)
}
