package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-docpage/internal/config"
)

// envPrefix namespaces every environment variable docpage reads.
const envPrefix = "DOCPAGE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string        // DOCPAGE_CONFIG: config name or path
	Style          string        // DOCPAGE_STYLE: CSS style name or path
	HighlightStyle string        // DOCPAGE_HIGHLIGHT_STYLE: Chroma style
	AssetPath      string        // DOCPAGE_ASSET_PATH: asset override directory
	Timeout        time.Duration // DOCPAGE_TIMEOUT: PDF export timeout
	PageSize       string        // DOCPAGE_PAGE_SIZE: letter, a4, legal
	BaseURL        string        // DOCPAGE_BASE_URL: base for relative URLs in PDF
	Addr           string        // DOCPAGE_ADDR: serve listen address
}

// knownEnvVars lists valid DOCPAGE_* environment variables.
var knownEnvVars = map[string]bool{
	"DOCPAGE_CONFIG":          true,
	"DOCPAGE_STYLE":           true,
	"DOCPAGE_HIGHLIGHT_STYLE": true,
	"DOCPAGE_ASSET_PATH":      true,
	"DOCPAGE_TIMEOUT":         true,
	"DOCPAGE_PAGE_SIZE":       true,
	"DOCPAGE_BASE_URL":        true,
	"DOCPAGE_ADDR":            true,
	"DOCPAGE_CONTAINER":       true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable or non-positive DOCPAGE_TIMEOUT is ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:     getenv("DOCPAGE_CONFIG"),
		Style:          getenv("DOCPAGE_STYLE"),
		HighlightStyle: getenv("DOCPAGE_HIGHLIGHT_STYLE"),
		AssetPath:      getenv("DOCPAGE_ASSET_PATH"),
		PageSize:       getenv("DOCPAGE_PAGE_SIZE"),
		BaseURL:        getenv("DOCPAGE_BASE_URL"),
		Addr:           getenv("DOCPAGE_ADDR"),
	}

	if timeout := getenv("DOCPAGE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized DOCPAGE_* variable.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	var unknown []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides config file values with the environment.
// Flags are applied afterwards, so: flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	override(&cfg.Render.Style, env.Style)
	override(&cfg.Render.HighlightStyle, env.HighlightStyle)
	override(&cfg.Assets.BasePath, env.AssetPath)
	override(&cfg.PDF.Size, env.PageSize)
	override(&cfg.PDF.BaseURL, env.BaseURL)
	override(&cfg.Serve.Addr, env.Addr)
	if env.Timeout > 0 {
		cfg.PDF.Timeout = env.Timeout
	}
}

// override sets *dst to v unless v is empty.
func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
