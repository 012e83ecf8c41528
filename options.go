package matgen

// ResolveOptions controls directory scanning and filename matching.
type ResolveOptions struct {
	// Channels is the channel table used for matching (default DefaultChannels).
	Channels []ChannelSpec
	// Extensions is the texture extension allow-list (default DefaultExtensions).
	Extensions []string
	// Rules is inline gitignore-like exclude rule text applied to scanned paths.
	Rules string
	// RulesFile loads exclude rules from a file; combined with Rules.
	RulesFile string
	// DefaultIdentifier names sets whose identifier strips to nothing (default "material").
	DefaultIdentifier string
	// Recursive scans subdirectories as well.
	Recursive bool
	// DisableCaseInsensitive disables case-insensitive keyword matching and grouping.
	DisableCaseInsensitive bool
}

// BuildOptions controls material graph construction.
type BuildOptions struct {
	// Channels is the channel wiring table (default DefaultChannels).
	Channels []ChannelSpec
	// NamePrefix is prepended to the set identifier to form the material name.
	NamePrefix string
	// Name overrides the material name entirely; only sensible for single-set builds.
	Name string
	// ModelsDir is scanned for models when ImportModels is set; callers
	// typically pass the texture folder.
	ModelsDir string
	// ImportModels imports model files and assigns created materials to them.
	// Requires a host implementing ModelImporter.
	ImportModels bool
}

// ValidateOptions controls texture set validation rules.
type ValidateOptions struct {
	// Channels is the channel table checked for presence (default DefaultChannels).
	Channels []ChannelSpec
	// Extensions is the texture extension allow-list (default DefaultExtensions).
	Extensions []string
	// DisableFileCheck disables filesystem existence checks for texture paths.
	DisableFileCheck bool
	// DisableExtensionsCheck disables extension validation for texture paths.
	DisableExtensionsCheck bool
	// DisableImageProbe disables decoding image headers for dimension checks.
	DisableImageProbe bool
}

// normalize normalizes the ResolveOptions.
func (o *ResolveOptions) normalize() ResolveOptions {
	out := ResolveOptions{}
	if o != nil {
		out = *o
	}
	if len(out.Channels) == 0 {
		out.Channels = DefaultChannels()
	}
	if len(out.Extensions) == 0 {
		out.Extensions = DefaultExtensions()
	}
	if out.DefaultIdentifier == "" {
		out.DefaultIdentifier = "material"
	}

	return out
}

// normalize normalizes the BuildOptions.
func (o *BuildOptions) normalize() BuildOptions {
	out := BuildOptions{}
	if o != nil {
		out = *o
	}
	if len(out.Channels) == 0 {
		out.Channels = DefaultChannels()
	}

	return out
}

// normalize normalizes the ValidateOptions.
func (o *ValidateOptions) normalize() ValidateOptions {
	out := ValidateOptions{}
	if o != nil {
		out = *o
	}
	if len(out.Channels) == 0 {
		out.Channels = DefaultChannels()
	}
	if len(out.Extensions) == 0 {
		out.Extensions = DefaultExtensions()
	}

	return out
}
