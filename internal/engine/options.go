package engine

import "github.com/dshills/fresh/internal/renderer/layout"

// Default configuration values.
const (
	DefaultWidth     = 80
	DefaultHeight    = 24
	DefaultTabWidth  = layout.DefaultTabWidth
	DefaultCacheSize = 1024
)

// Option configures a State during creation.
type Option func(*State)

// WithSize sets the viewport size.
func WithSize(width, height int) Option {
	return func(s *State) {
		s.width, s.height = width, height
	}
}

// WithWrap sets the initial wrap mode. Wrapping is on by default.
func WithWrap(enabled bool) Option {
	return func(s *State) {
		s.wrap = enabled
	}
}

// WithTabWidth sets the tab width used for display columns.
func WithTabWidth(width int) Option {
	return func(s *State) {
		if width > 0 {
			s.tabWidth = width
		}
	}
}
