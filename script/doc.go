// Package script runs user Lua against a rendering session.
//
// Scripts execute inside a sandboxed gopher-lua state: no file system, no
// shell, no module loading, a best-effort timeout per call, and panic
// recovery at the boundary. The cellstorm module exposes the drawing
// surface:
//
//	cellstorm.size()                      -> width, height
//	cellstorm.set_cell(x, y, ch, opts)
//	cellstorm.write(x, y, text, opts)     -> cells written
//	cellstorm.fill(x, y, w, h, ch, opts)
//	cellstorm.hline(x, y, len, ch, opts)
//	cellstorm.vline(x, y, len, ch, opts)
//	cellstorm.clear()
//	cellstorm.present()
//	cellstorm.stats()                     -> table
//	cellstorm.frame(fn)                   -- register fn(elapsed) callback
//	cellstorm.rgb(r, g, b)
//	cellstorm.indexed(n)
//	cellstorm.basic(n)
//
// Coordinates are zero-based. opts is an optional table carrying fg and bg
// (colors from rgb/indexed/basic or "#rrggbb" strings) plus boolean
// attribute flags (bold, dim, italic, underline, blink, reverse,
// strikethrough); write additionally honors wrap.
package script
