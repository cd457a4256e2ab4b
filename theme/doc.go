// Package theme names coordinated palettes for tools built on the engine.
//
// A Theme is a background, a foreground, and a run of accent colors. Themes
// load from and save to small JSON files, adapt to lower color depths, and
// expand into gradients with Ramp.
package theme
