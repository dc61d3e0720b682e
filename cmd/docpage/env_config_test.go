package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-docpage/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"DOCPAGE_CONFIG":          "team",
		"DOCPAGE_STYLE":           "plain",
		"DOCPAGE_HIGHLIGHT_STYLE": "monokai",
		"DOCPAGE_ASSET_PATH":      "/srv/assets",
		"DOCPAGE_TIMEOUT":         "45s",
		"DOCPAGE_PAGE_SIZE":       "a4",
		"DOCPAGE_BASE_URL":        "https://docs.example.com/",
		"DOCPAGE_ADDR":            ":9000",
	}
	got := loadEnvConfig(func(k string) string { return vars[k] })

	want := &envConfig{
		ConfigPath:     "team",
		Style:          "plain",
		HighlightStyle: "monokai",
		AssetPath:      "/srv/assets",
		Timeout:        45 * time.Second,
		PageSize:       "a4",
		BaseURL:        "https://docs.example.com/",
		Addr:           ":9000",
	}
	if *got != *want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", got, want)
	}
}

func TestLoadEnvConfig_InvalidTimeoutIgnored(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"soon", "-5s", "0s"} {
		got := loadEnvConfig(func(k string) string {
			if k == "DOCPAGE_TIMEOUT" {
				return v
			}
			return ""
		})
		if got.Timeout != 0 {
			t.Errorf("DOCPAGE_TIMEOUT=%q gave %v, want 0", v, got.Timeout)
		}
	}
}

func TestApplyEnvConfig_OverridesFile(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Render.Style = "default"
	cfg.PDF.Size = "letter"
	cfg.PDF.Timeout = time.Minute
	cfg.Assets.BasePath = "/from/file"

	applyEnvConfig(&envConfig{Style: "plain", Timeout: 5 * time.Second}, cfg)

	if cfg.Render.Style != "plain" {
		t.Errorf("style = %q, want env value", cfg.Render.Style)
	}
	if cfg.PDF.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want env value", cfg.PDF.Timeout)
	}
	if cfg.PDF.Size != "letter" {
		t.Errorf("size = %q, unset env must keep file value", cfg.PDF.Size)
	}
	if cfg.Assets.BasePath != "/from/file" {
		t.Errorf("asset path = %q, unset env must keep file value", cfg.Assets.BasePath)
	}
	if cfg.Serve.Addr != "127.0.0.1:8080" {
		t.Errorf("addr = %q, want default", cfg.Serve.Addr)
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"PATH=/usr/bin",
		"DOCPAGE_STYLE=plain",
		"DOCPAGE_TIMOUT=30s",
		"DOCPAGE_ADRESS=:80",
		"docpage_style=lower",
	})

	out := buf.String()
	if strings.Count(out, "warning:") != 2 {
		t.Errorf("want 2 warnings, got:\n%s", out)
	}
	if !strings.Contains(out, "DOCPAGE_TIMOUT") || !strings.Contains(out, "DOCPAGE_ADRESS") {
		t.Errorf("missing typo names:\n%s", out)
	}
	if strings.Index(out, "DOCPAGE_ADRESS") > strings.Index(out, "DOCPAGE_TIMOUT") {
		t.Error("warnings should be sorted")
	}
}
