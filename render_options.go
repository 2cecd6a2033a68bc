package fstr

// RenderOption configures Render and NewRenderer.
type RenderOption func(*renderConfig)

type renderConfig struct {
	osc8     bool
	softWrap bool
}

// WithOSC8 emits links as OSC 8 hyperlinks. Without it, manual links whose
// text differs from their target are followed by the target in parentheses.
func WithOSC8(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.osc8 = enabled
	}
}

// WithSoftWrap breaks words longer than the width at grapheme boundaries.
func WithSoftWrap(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.softWrap = enabled
	}
}
