package matgen

import "strings"

// Channel identifies a texture channel of a material.
type Channel string

const (
	// ChannelBaseColor is the base color (albedo) channel.
	ChannelBaseColor Channel = "BaseColor"
	// ChannelRoughness is the reflection roughness channel.
	ChannelRoughness Channel = "Roughness"
	// ChannelNormal is the tangent-space normal channel.
	ChannelNormal Channel = "Normal"
	// ChannelDisplacement is the displacement (height) channel.
	ChannelDisplacement Channel = "Displacement"
)

// Channels returns all channels in wiring order.
func Channels() []Channel {
	return []Channel{ChannelBaseColor, ChannelRoughness, ChannelNormal, ChannelDisplacement}
}

// NodeKind identifies a node type in the host graph.
type NodeKind string

const (
	// NodeTextureSampler samples a texture file.
	NodeTextureSampler NodeKind = "texturesampler"
	// NodeColorCorrect adjusts sampled colors.
	NodeColorCorrect NodeKind = "colorcorrect"
	// NodeRamp remaps scalar values.
	NodeRamp NodeKind = "ramp"
	// NodeBumpMap converts color input to bump/normal perturbation.
	NodeBumpMap NodeKind = "bumpmap"
	// NodeDisplacement drives surface displacement.
	NodeDisplacement NodeKind = "displacement"
	// NodeStandardMaterial is the material node every graph starts with.
	NodeStandardMaterial NodeKind = "standardmaterial"
	// NodeOutput is the graph output node.
	NodeOutput NodeKind = "output"
)

// Port names used by the fixed wiring table.
const (
	// PortTexPath is the texture sampler file path input.
	PortTexPath = "tex0/path"
	// PortTexColorspace is the texture sampler colorspace input.
	PortTexColorspace = "tex0/colorspace"
	// PortOutColor is the color output of sampler and color nodes.
	PortOutColor = "outcolor"
	// PortBumpInputType selects the bump map interpretation.
	PortBumpInputType = "inputtype"
	// PortBaseColor is the material base color input.
	PortBaseColor = "base_color"
	// PortReflRoughness is the material reflection roughness input.
	PortReflRoughness = "refl_roughness"
	// PortBumpInput is the material bump input.
	PortBumpInput = "bump_input"
	// PortDisplacement is the output node displacement input.
	PortDisplacement = "displacement"
)

// ColorspaceRaw marks a sampler as raw (non color managed) input.
const ColorspaceRaw = "raw"

// BumpTangentNormal is the bump map input type for tangent-space normal maps.
const BumpTangentNormal = 1

// processorPorts maps a processing node kind to its pass-through ports.
var processorPorts = map[NodeKind]struct{ In, Out string }{
	NodeColorCorrect: {In: "input", Out: "outcolor"},
	NodeRamp:         {In: "input", Out: "outcolor"},
	NodeBumpMap:      {In: "input", Out: "out"},
	NodeDisplacement: {In: "texmap", Out: "out"},
}

// ChannelSpec describes how one channel is matched and wired.
type ChannelSpec struct {
	Channel   Channel  `json:"channel" yaml:"channel"`                         // Channel name
	Keywords  string   `json:"keywords,omitempty" yaml:"keywords,omitempty"`   // Comma-separated filename keywords
	Processor NodeKind `json:"processor,omitempty" yaml:"processor,omitempty"` // Processing node between sampler and target
	Target    string   `json:"target,omitempty" yaml:"target,omitempty"`       // Material or output input port
	Enabled   bool     `json:"enabled" yaml:"enabled"`                         // Whether the channel participates in matching
	Raw       bool     `json:"raw,omitempty" yaml:"raw,omitempty"`             // Sample in raw colorspace
	ToOutput  bool     `json:"toOutput,omitempty" yaml:"toOutput,omitempty"`   // Connect to the output node instead of the material
}

// KeywordList splits the comma-separated keyword list, trimming empty entries.
func (c ChannelSpec) KeywordList() []string {
	parts := strings.Split(c.Keywords, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

// DefaultChannels returns the built-in channel wiring table.
func DefaultChannels() []ChannelSpec {
	return []ChannelSpec{
		{
			Channel:   ChannelBaseColor,
			Enabled:   true,
			Keywords:  "basecolor,albedo,diffuse",
			Processor: NodeColorCorrect,
			Target:    PortBaseColor,
		},
		{
			Channel:   ChannelRoughness,
			Enabled:   true,
			Keywords:  "roughness,rough",
			Processor: NodeRamp,
			Target:    PortReflRoughness,
		},
		{
			Channel:   ChannelNormal,
			Enabled:   true,
			Keywords:  "normal,nrm",
			Processor: NodeBumpMap,
			Target:    PortBumpInput,
			Raw:       true,
		},
		{
			Channel:   ChannelDisplacement,
			Enabled:   true,
			Keywords:  "displacement,height,disp",
			Processor: NodeDisplacement,
			Target:    PortDisplacement,
			Raw:       true,
			ToOutput:  true,
		},
	}
}

// channelByName finds a spec by channel in the given table.
func channelByName(specs []ChannelSpec, ch Channel) (ChannelSpec, bool) {
	for _, s := range specs {
		if s.Channel == ch {
			return s, true
		}
	}

	return ChannelSpec{}, false
}
