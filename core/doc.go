// Package core provides the cell, color, and style types shared by every
// stage of the rendering pipeline. A Cell is the atomic display unit: one
// codepoint plus foreground, background, and attribute styling. Cells are
// plain values; all operations on them are pure.
package core
