// Package config parses the recognized configuration keys a host page
// passes to the telemetry agent across the wasm boundary.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries the agent's tunables. Every field has a documented
// default so a host page can omit keys it doesn't care about.
type Config struct {
	// TimeToYield bounds how long one backfill time-slice may run before
	// the Layout Tracker yields back to the event loop.
	TimeToYield time.Duration
	// BatchLimit is the maximum serialized size, in bytes, the Batcher lets
	// a batch reach before forcing a flush.
	BatchLimit int
	// ValidateConsistency enables the Shadow DOM Mirror's consistency check
	// against the live DOM after every folded mutation batch.
	ValidateConsistency bool
	// UploadURL is the collector endpoint compressed batches are POSTed to.
	UploadURL string
	// SensitiveAttributes lists attribute names for the content policy. It is
	// parsed and carried in Config only; layout snapshots do not consult it,
	// and no attribute is masked.
	SensitiveAttributes []string
	// ShowText is the content-policy flag for text node content. It is parsed
	// and carried in Config only; layout snapshots capture text verbatim
	// whatever its value.
	ShowText bool
	// ShowImages is the content-policy flag for image src attributes. It is
	// parsed and carried in Config only; layout snapshots do not consult it.
	ShowImages bool
}

// Default returns the recognized-key defaults.
func Default() Config {
	return Config{
		TimeToYield:         50 * time.Millisecond,
		BatchLimit:          100,
		ValidateConsistency: true,
		ShowText:            false,
		ShowImages:          false,
	}
}

// FromMap parses a Config out of a host-supplied map, such as a JS config
// object crossing the wasm boundary as map[string]any. Unrecognized keys
// are ignored; missing keys keep their Default() value.
func FromMap(m map[string]any) (Config, error) {
	cfg := Default()
	if v, ok := m["timeToYield"]; ok {
		ms, err := asFloat(v, "timeToYield")
		if err != nil {
			return cfg, err
		}
		cfg.TimeToYield = time.Duration(ms) * time.Millisecond
	}
	if v, ok := m["batchLimit"]; ok {
		n, err := asFloat(v, "batchLimit")
		if err != nil {
			return cfg, err
		}
		cfg.BatchLimit = int(n)
	}
	if v, ok := m["validateConsistency"]; ok {
		b, ok := v.(bool)
		if !ok {
			return cfg, fmt.Errorf("config: validateConsistency must be a bool, got %T", v)
		}
		cfg.ValidateConsistency = b
	}
	if v, ok := m["uploadURL"]; ok {
		s, ok := v.(string)
		if !ok {
			return cfg, fmt.Errorf("config: uploadURL must be a string, got %T", v)
		}
		cfg.UploadURL = s
	}
	if v, ok := m["sensitiveAttributes"]; ok {
		list, err := asStringSlice(v)
		if err != nil {
			return cfg, fmt.Errorf("config: sensitiveAttributes: %w", err)
		}
		cfg.SensitiveAttributes = list
	}
	if v, ok := m["showText"]; ok {
		b, ok := v.(bool)
		if !ok {
			return cfg, fmt.Errorf("config: showText must be a bool, got %T", v)
		}
		cfg.ShowText = b
	}
	if v, ok := m["showImages"]; ok {
		b, ok := v.(bool)
		if !ok {
			return cfg, fmt.Errorf("config: showImages must be a bool, got %T", v)
		}
		cfg.ShowImages = b
	}
	return cfg, nil
}

// fileConfig mirrors Config with yaml tags, for the on-disk config a
// devserver or other host-side tooling reads to seed the agent's defaults
// before a page ever loads. The wasm boundary still only ever sees the
// JSON/map form handled by FromMap; this is for the non-browser side.
type fileConfig struct {
	TimeToYieldMS       int      `yaml:"timeToYieldMs"`
	BatchLimit          int      `yaml:"batchLimit"`
	ValidateConsistency *bool    `yaml:"validateConsistency"`
	UploadURL           string   `yaml:"uploadURL"`
	SensitiveAttributes []string `yaml:"sensitiveAttributes"`
	ShowText            bool     `yaml:"showText"`
	ShowImages          bool     `yaml:"showImages"`
}

// LoadFile reads a YAML config file, applying its values on top of
// Default(). A missing or empty field keeps the default.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if fc.TimeToYieldMS > 0 {
		cfg.TimeToYield = time.Duration(fc.TimeToYieldMS) * time.Millisecond
	}
	if fc.BatchLimit > 0 {
		cfg.BatchLimit = fc.BatchLimit
	}
	if fc.ValidateConsistency != nil {
		cfg.ValidateConsistency = *fc.ValidateConsistency
	}
	if fc.UploadURL != "" {
		cfg.UploadURL = fc.UploadURL
	}
	if len(fc.SensitiveAttributes) > 0 {
		cfg.SensitiveAttributes = fc.SensitiveAttributes
	}
	cfg.ShowText = fc.ShowText
	cfg.ShowImages = fc.ShowImages
	return cfg, nil
}

// ToMap renders a Config back into the map[string]any shape FromMap
// accepts, letting host-side tooling round-trip a Config into the JSON blob
// injected for the browser-side agent to consume.
func (c Config) ToMap() map[string]any {
	return map[string]any{
		"timeToYield":         float64(c.TimeToYield / time.Millisecond),
		"batchLimit":          float64(c.BatchLimit),
		"validateConsistency": c.ValidateConsistency,
		"uploadURL":           c.UploadURL,
		"sensitiveAttributes": c.SensitiveAttributes,
		"showText":            c.ShowText,
		"showImages":          c.ShowImages,
	}
}

func asFloat(v any, key string) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("config: %s must be a number, got %T", key, v)
	}
}

func asStringSlice(v any) ([]string, error) {
	switch s := v.(type) {
	case []string:
		return s, nil
	case []any:
		out := make([]string, len(s))
		for i, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("element %d is %T, not a string", i, e)
			}
			out[i] = str
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a string list, got %T", v)
	}
}

// IsSensitive reports whether attr is in the configured sensitive
// attributes list.
func (c Config) IsSensitive(attr string) bool {
	for _, a := range c.SensitiveAttributes {
		if a == attr {
			return true
		}
	}
	return false
}
