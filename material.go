package matgen

import "sort"

// TextureSet groups matched texture files of one asset by channel.
type TextureSet struct {
	Textures   map[Channel]string `json:"textures" yaml:"textures"`     // Channel to file path mapping
	Identifier string             `json:"identifier" yaml:"identifier"` // Set identifier derived from filenames
}

// Path returns the texture path for a channel.
func (s *TextureSet) Path(ch Channel) (string, bool) {
	p, ok := s.Textures[ch]
	return p, ok
}

// Channels returns the channels present in the set, in wiring order.
func (s *TextureSet) Channels() []Channel {
	out := make([]Channel, 0, len(s.Textures))
	for _, ch := range Channels() {
		if _, ok := s.Textures[ch]; ok {
			out = append(out, ch)
		}
	}

	return out
}

// Empty reports whether no channel matched.
func (s *TextureSet) Empty() bool { return len(s.Textures) == 0 }

// Complete reports whether every enabled channel of specs is present.
func (s *TextureSet) Complete(specs []ChannelSpec) bool {
	for _, spec := range specs {
		if !spec.Enabled {
			continue
		}
		if _, ok := s.Textures[spec.Channel]; !ok {
			return false
		}
	}

	return true
}

// SkippedFile records a file dropped during resolution.
type SkippedFile struct {
	Path       string  `json:"path" yaml:"path"`             // Dropped file path
	Identifier string  `json:"identifier" yaml:"identifier"` // Identifier it resolved to
	Reason     string  `json:"reason" yaml:"reason"`         // Why it was dropped
	Channel    Channel `json:"channel" yaml:"channel"`       // Channel it matched
}

// ResolveResult is the outcome of scanning and grouping a texture folder.
type ResolveResult struct {
	Sets      []*TextureSet `json:"sets" yaml:"sets"`                               // Texture sets sorted by identifier
	Unmatched []string      `json:"unmatched,omitempty" yaml:"unmatched,omitempty"` // Texture files matching no channel
	Skipped   []SkippedFile `json:"skipped,omitempty" yaml:"skipped,omitempty"`     // Files dropped due to conflicts
}

// Set returns the set with the given identifier.
func (r *ResolveResult) Set(id string) (*TextureSet, bool) {
	for _, s := range r.Sets {
		if s.Identifier == id {
			return s, true
		}
	}

	return nil, false
}

// sortSets orders sets and their reporting slices deterministically.
func (r *ResolveResult) sortSets() {
	sort.Slice(r.Sets, func(i, j int) bool { return r.Sets[i].Identifier < r.Sets[j].Identifier })
	sort.Strings(r.Unmatched)
	sort.Slice(r.Skipped, func(i, j int) bool { return r.Skipped[i].Path < r.Skipped[j].Path })
}

// MaterialResult describes one material created on a host.
type MaterialResult struct {
	Name       string    `json:"name" yaml:"name"`                                           // Material name
	Identifier string    `json:"identifier" yaml:"identifier"`                               // Source set identifier
	Channels   []Channel `json:"channels,omitempty" yaml:"channels,omitempty"`               // Channels wired into the graph
	SkippedCh  []Channel `json:"skippedChannels,omitempty" yaml:"skippedChannels,omitempty"` // Enabled channels absent from the set
}

// BuildResult is the outcome of building materials for a ResolveResult.
type BuildResult struct {
	Materials []*MaterialResult `json:"materials" yaml:"materials"`                   // Created materials in identifier order
	Imported  []string          `json:"imported,omitempty" yaml:"imported,omitempty"` // Imported model objects
}
