package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix every recognized environment variable carries.
const EnvPrefix = "CELLSTORM_"

// Load builds a Config by layering the file at path and the environment
// over the defaults. An empty path skips the file layer, and a missing
// file is not an error; the remaining layers still apply.
func Load(path string) (Config, error) {
	merged := Default().toMap()

	if path != "" {
		fileMap, err := loadFile(path)
		if err != nil {
			return Config{}, err
		}
		merged = DeepMerge(merged, fileMap)
	}

	envMap, err := LoadEnv()
	if err != nil {
		return Config{}, err
	}
	merged = DeepMerge(merged, envMap)

	cfg, err := fromMap(merged)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile dispatches on the file extension.
func loadFile(path string) (map[string]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return loadTOML(path)
	case ".yaml", ".yml":
		return loadYAML(path)
	case ".json":
		return loadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

func loadTOML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return m, nil
}

func loadYAML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return m, nil
}

func loadJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: path, Message: "invalid JSON"}
	}
	m, ok := gjson.ParseBytes(data).Value().(map[string]any)
	if !ok {
		return nil, &ParseError{Path: path, Message: "top level must be an object"}
	}
	return m, nil
}

// LoadEnv reads CELLSTORM_-prefixed environment variables into a config
// map. Explicitly mapped names take their listed path; any other prefixed
// variable maps section-first, so CELLSTORM_DIFF_MERGE_THRESHOLD becomes
// diff.merge_threshold.
func LoadEnv() (map[string]any, error) {
	m := make(map[string]any)
	mapping := defaultEnvMapping()

	for env, path := range mapping {
		if val, ok := os.LookupEnv(env); ok {
			setByPath(m, path, parseEnvValue(val))
		}
	}

	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, EnvPrefix) {
			continue
		}
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		name, value := parts[0], parts[1]
		if _, ok := mapping[name]; ok {
			continue
		}
		setByPath(m, envToPath(name), parseEnvValue(value))
	}

	return m, nil
}

// defaultEnvMapping covers the variables whose path the section-first rule
// would get wrong.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"CELLSTORM_LOG_LEVEL":  "log.level",
		"CELLSTORM_LOG_PATH":   "log.path",
		"CELLSTORM_COLOR_MODE": "render.color_mode",
		"CELLSTORM_DIFF_LEVEL": "diff.level",
	}
}

// envToPath converts CELLSTORM_SCREEN_DEFAULT_FG to screen.default_fg.
func envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, EnvPrefix))
	parts := strings.SplitN(name, "_", 2)
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}

// parseEnvValue guesses the typed value behind an environment string.
func parseEnvValue(s string) any {
	if s == "" {
		return s
	}

	lower := strings.ToLower(s)
	if lower == "true" || lower == "yes" || lower == "on" {
		return true
	}
	if lower == "false" || lower == "no" || lower == "off" {
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	// Only with a decimal point, so bare digits stay integers.
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}

// DeepMerge recursively merges src into dst. Values in src override values
// in dst; maps merge recursively, other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	if src == nil {
		return dst
	}

	for key, srcVal := range src {
		dstVal, exists := dst[key]
		if !exists {
			dst[key] = srcVal
			continue
		}

		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
		} else {
			dst[key] = srcVal
		}
	}

	return dst
}
