package sani

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	preserveLineBreaks bool
	keepFrontMatter    bool
}

// WithPreserveLineBreaks renders soft line breaks as newlines instead of
// collapsing them to spaces.
func WithPreserveLineBreaks(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.preserveLineBreaks = enabled
	}
}

// WithKeepFrontMatter renders a leading front matter block as text instead
// of stripping it.
func WithKeepFrontMatter(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.keepFrontMatter = enabled
	}
}
