package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/cellstorm/core"
)

// Load reads a theme from a JSON file. Missing colors stay terminal
// defaults; a missing name falls back to the file name.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	if !gjson.ValidBytes(data) {
		return Theme{}, fmt.Errorf("theme %s: invalid JSON", path)
	}
	doc := gjson.ParseBytes(data)

	t := Theme{Name: doc.Get("name").String()}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if t.Background, err = colorAt(doc, "colors.background", path); err != nil {
		return Theme{}, err
	}
	if t.Foreground, err = colorAt(doc, "colors.foreground", path); err != nil {
		return Theme{}, err
	}
	for i, hex := range doc.Get("colors.accents").Array() {
		c, err := core.ColorFromHex(hex.String())
		if err != nil {
			return Theme{}, fmt.Errorf("theme %s: accent %d: %w", path, i, err)
		}
		t.Accents = append(t.Accents, c)
	}
	return t, nil
}

func colorAt(doc gjson.Result, jsonPath, path string) (core.Color, error) {
	v := doc.Get(jsonPath)
	if !v.Exists() || v.String() == "" {
		return core.ColorDefault, nil
	}
	c, err := core.ColorFromHex(v.String())
	if err != nil {
		return core.Color{}, fmt.Errorf("theme %s: %s: %w", path, jsonPath, err)
	}
	return c, nil
}

// Save writes the theme as JSON. Only true-color values serialize; default
// and palette colors have no stable hex form and their keys are omitted.
func Save(t Theme, path string) error {
	doc := "{}"
	var err error
	set := func(jsonPath string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, jsonPath, value)
	}

	set("name", t.Name)
	if t.Background.Kind == core.ColorKindRGB {
		set("colors.background", strings.ToLower(t.Background.ToHex()))
	}
	if t.Foreground.Kind == core.ColorKindRGB {
		set("colors.foreground", strings.ToLower(t.Foreground.ToHex()))
	}
	var hexes []string
	for _, c := range t.Accents {
		if c.Kind == core.ColorKindRGB {
			hexes = append(hexes, strings.ToLower(c.ToHex()))
		}
	}
	if len(hexes) > 0 {
		set("colors.accents", hexes)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, pretty.Pretty([]byte(doc)), 0644)
}
