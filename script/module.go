package script

import (
	"time"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/cellstorm/core"
	"github.com/dshills/cellstorm/screen"
)

// register installs the cellstorm module into the state.
func (e *Engine) register() {
	mod := e.L.SetFuncs(e.L.NewTable(), map[string]lua.LGFunction{
		"size":     e.luaSize,
		"set_cell": e.luaSetCell,
		"write":    e.luaWrite,
		"fill":     e.luaFill,
		"hline":    e.luaHLine,
		"vline":    e.luaVLine,
		"clear":    e.luaClear,
		"present":  e.luaPresent,
		"stats":    e.luaStats,
		"frame":    e.luaFrame,
		"rgb":      luaRGB,
		"indexed":  luaIndexed,
		"basic":    luaBasic,
	})
	e.L.SetGlobal("cellstorm", mod)
}

func (e *Engine) luaSize(L *lua.LState) int {
	w, h := e.buffer(L).Size()
	L.Push(lua.LNumber(w))
	L.Push(lua.LNumber(h))
	return 2
}

func (e *Engine) luaSetCell(L *lua.LState) int {
	x := L.CheckInt(1)
	y := L.CheckInt(2)
	ch := firstRune(L, L.CheckString(3), "set_cell character")
	style := styleFromTable(L, L.OptTable(4, nil))

	if err := e.buffer(L).SetCell(x, y, core.NewStyledCell(ch, style)); err != nil {
		L.RaiseError("set_cell(%d, %d): %s", x, y, err.Error())
	}
	return 0
}

func (e *Engine) luaWrite(L *lua.LState) int {
	x := L.CheckInt(1)
	y := L.CheckInt(2)
	text := L.CheckString(3)
	opts := L.OptTable(4, nil)
	style := styleFromTable(L, opts)

	n := e.buffer(L).WriteText(x, y, text, screen.TextOptions{
		Foreground: style.Foreground,
		Background: style.Background,
		Attributes: style.Attributes,
		Wrap:       opts != nil && lua.LVAsBool(opts.RawGetString("wrap")),
	})
	L.Push(lua.LNumber(n))
	return 1
}

func (e *Engine) luaFill(L *lua.LState) int {
	x := L.CheckInt(1)
	y := L.CheckInt(2)
	w := L.CheckInt(3)
	h := L.CheckInt(4)
	ch := firstRune(L, L.OptString(5, " "), "fill character")
	style := styleFromTable(L, L.OptTable(6, nil))

	e.buffer(L).FillRect(x, y, w, h, core.NewStyledCell(ch, style))
	return 0
}

func (e *Engine) luaHLine(L *lua.LState) int {
	x := L.CheckInt(1)
	y := L.CheckInt(2)
	length := L.CheckInt(3)
	ch := firstRune(L, L.OptString(4, "─"), "hline character")
	style := styleFromTable(L, L.OptTable(5, nil))

	e.buffer(L).DrawHLine(x, y, length, core.NewStyledCell(ch, style))
	return 0
}

func (e *Engine) luaVLine(L *lua.LState) int {
	x := L.CheckInt(1)
	y := L.CheckInt(2)
	length := L.CheckInt(3)
	ch := firstRune(L, L.OptString(4, "│"), "vline character")
	style := styleFromTable(L, L.OptTable(5, nil))

	e.buffer(L).DrawVLine(x, y, length, core.NewStyledCell(ch, style))
	return 0
}

func (e *Engine) luaClear(L *lua.LState) int {
	e.buffer(L).Clear()
	return 0
}

func (e *Engine) luaPresent(L *lua.LState) int {
	if err := e.session.Frame(nil); err != nil {
		L.RaiseError("present: %s", err.Error())
	}
	return 0
}

func (e *Engine) luaStats(L *lua.LState) int {
	stats := e.session.Stats()
	t := L.NewTable()
	t.RawSetString("frames", lua.LNumber(stats.Frames))
	t.RawSetString("cells", lua.LNumber(stats.CellsUpdated))
	t.RawSetString("bytes", lua.LNumber(stats.BytesWritten))
	t.RawSetString("diff_ms", lua.LNumber(float64(stats.DiffTime)/float64(time.Millisecond)))
	t.RawSetString("render_ms", lua.LNumber(float64(stats.RenderTime)/float64(time.Millisecond)))
	L.Push(t)
	return 1
}

func (e *Engine) luaFrame(L *lua.LState) int {
	// Entry points hold e.mu while script code runs, so this assignment is
	// already serialized.
	e.frameFn = L.CheckFunction(1)
	return 0
}

func luaRGB(L *lua.LState) int {
	r := checkChannel(L, 1)
	g := checkChannel(L, 2)
	b := checkChannel(L, 3)
	return pushColor(L, core.ColorFromRGB(r, g, b))
}

func luaIndexed(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 0 || n > 255 {
		L.ArgError(1, "palette index must be 0-255")
	}
	return pushColor(L, core.ColorFromIndex(uint8(n)))
}

func luaBasic(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 0 || n > 7 {
		L.ArgError(1, "basic color must be 0-7")
	}
	return pushColor(L, core.ColorFromBasic(uint8(n)))
}

func checkChannel(L *lua.LState, idx int) uint8 {
	v := L.CheckInt(idx)
	if v < 0 || v > 255 {
		L.ArgError(idx, "color component must be 0-255")
	}
	return uint8(v)
}

func pushColor(L *lua.LState, c core.Color) int {
	ud := L.NewUserData()
	ud.Value = c
	L.Push(ud)
	return 1
}

// colorValue accepts a color userdata or a "#rrggbb" string.
func colorValue(L *lua.LState, v lua.LValue, what string) core.Color {
	switch tv := v.(type) {
	case *lua.LUserData:
		if c, ok := tv.Value.(core.Color); ok {
			return c
		}
	case lua.LString:
		if c, err := core.ColorFromHex(string(tv)); err == nil {
			return c
		}
	}
	L.RaiseError("%s must be a color or a \"#rrggbb\" string", what)
	return core.Color{}
}

var attrFlags = []struct {
	name string
	attr core.Attribute
}{
	{"bold", core.AttrBold},
	{"dim", core.AttrDim},
	{"italic", core.AttrItalic},
	{"underline", core.AttrUnderline},
	{"blink", core.AttrBlink},
	{"reverse", core.AttrReverse},
	{"strikethrough", core.AttrStrikethrough},
}

func styleFromTable(L *lua.LState, opts *lua.LTable) core.Style {
	style := core.DefaultStyle()
	if opts == nil {
		return style
	}
	if v := opts.RawGetString("fg"); v != lua.LNil {
		style.Foreground = colorValue(L, v, "fg")
	}
	if v := opts.RawGetString("bg"); v != lua.LNil {
		style.Background = colorValue(L, v, "bg")
	}
	for _, f := range attrFlags {
		if lua.LVAsBool(opts.RawGetString(f.name)) {
			style.Attributes |= f.attr
		}
	}
	return style
}

func firstRune(L *lua.LState, s, what string) rune {
	if s == "" {
		L.RaiseError("%s must not be empty", what)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
