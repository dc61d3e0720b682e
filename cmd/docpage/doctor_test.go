package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestIsContainer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		vars     map[string]string
		wantHint string
	}{
		{"override", map[string]string{"DOCPAGE_CONTAINER": "1"}, "DOCPAGE_CONTAINER=1"},
		{"podman", map[string]string{"container": "podman"}, "container=podman"},
		{"kubernetes", map[string]string{"KUBERNETES_SERVICE_HOST": "10.0.0.1"}, "KUBERNETES_SERVICE_HOST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, hint := isContainer(func(k string) string { return tt.vars[k] })
			if !got {
				t.Fatal("isContainer() = false, want true")
			}
			// /.dockerenv takes precedence over env signals other than the override.
			if hint != tt.wantHint && hint != "/.dockerenv" {
				t.Errorf("hint = %q, want %q", hint, tt.wantHint)
			}
		})
	}
}

func TestCheckEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("ci without no-sandbox warns", func(t *testing.T) {
		t.Parallel()
		r := &doctorResult{}
		checkEnvironment(r, func(k string) string {
			if k == "GITLAB_CI" {
				return "true"
			}
			return ""
		})
		if !r.Env.CI {
			t.Error("CI not detected")
		}
		if len(r.Warnings) != 1 || !strings.Contains(r.Warnings[0], "ROD_NO_SANDBOX") {
			t.Errorf("Warnings = %v", r.Warnings)
		}
	})

	t.Run("ci with no-sandbox is quiet", func(t *testing.T) {
		t.Parallel()
		r := &doctorResult{Env: envInfo{NoSandbox: "1"}}
		checkEnvironment(r, func(k string) string {
			if k == "CI" {
				return "true"
			}
			return ""
		})
		if len(r.Warnings) != 0 {
			t.Errorf("Warnings = %v, want none", r.Warnings)
		}
	})
}

func TestCheckContent(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "render:\n  style: plain\n")
		env, _, _ := testEnv(nil)
		r := &doctorResult{}
		checkContent(r, &commonFlags{config: path}, env)

		if len(r.Errors) != 0 {
			t.Fatalf("Errors = %v", r.Errors)
		}
		if !r.Content.Rendered || r.Content.Bytes == 0 {
			t.Errorf("Content = %+v, want rendered page", r.Content)
		}
		if r.Content.ConfigPath != path || r.Content.Style != "plain" {
			t.Errorf("Content = %+v", r.Content)
		}
		if r.Content.Misses != 0 || len(r.Warnings) != 0 {
			t.Errorf("built-in content should resolve fully: %+v %v", r.Content, r.Warnings)
		}
	})

	t.Run("broken config", func(t *testing.T) {
		t.Parallel()
		env, _, _ := testEnv(nil)
		r := &doctorResult{}
		checkContent(r, &commonFlags{config: writeConfig(t, "pdf:\n  size: tabloid\n")}, env)
		if len(r.Errors) != 1 || !strings.HasPrefix(r.Errors[0], "Config:") {
			t.Errorf("Errors = %v", r.Errors)
		}
	})

	t.Run("missing glyph", func(t *testing.T) {
		t.Parallel()
		env, _, _ := testEnv(nil)
		r := &doctorResult{}
		checkContent(r, &commonFlags{config: writeConfig(t, "site:\n  brandGlyph: rocket\n")}, env)
		if len(r.Errors) != 1 || !strings.HasPrefix(r.Errors[0], "Render:") {
			t.Errorf("Errors = %v", r.Errors)
		}
		if r.Content.Rendered {
			t.Error("page should not be marked rendered")
		}
	})
}

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	r := &doctorResult{
		Status:  statusWarnings,
		Chrome:  chromeInfo{},
		Content: contentInfo{Style: "default", Rendered: true, Bytes: 2048},
		Env:     envInfo{OS: "linux", Arch: "amd64", CI: true},
		System:  systemInfo{TempWritable: true},
		Warnings: []string{
			"Chrome/Chromium not found",
		},
	}

	var buf bytes.Buffer
	printDoctorResult(&buf, r, true)
	out := buf.String()

	for _, want := range []string{
		"docpage doctor",
		"  [WARN] Not found",
		"  [OK] Config: built-in defaults",
		"  [OK] Page: 2048 bytes, style default, 0 placeholder(s)",
		"  [OK] Platform: linux/amd64",
		"  [OK] CI: detected",
		"  [OK] Temp directory: writable",
		"  [WARN] Chrome/Chromium not found",
		"Status: Ready with warnings",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("noColor output contains ANSI escapes")
	}
}

func TestRunDoctorCmd_JSON(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "site:\n  title: Acme\n")
	env, stdout, _ := testEnv(map[string]string{"ROD_NO_SANDBOX": "1"})
	err := runDoctorCmd([]string{"--json", "-c", path}, env)

	var got doctorResult
	if jerr := json.Unmarshal(stdout.Bytes(), &got); jerr != nil {
		t.Fatalf("output is not JSON: %v\n%s", jerr, stdout)
	}
	if !got.Content.Rendered || got.Content.ConfigPath != path {
		t.Errorf("Content = %+v", got.Content)
	}
	if got.Env.NoSandbox != "1" {
		t.Errorf("NoSandbox = %q", got.Env.NoSandbox)
	}
	if (err != nil) != (got.Status == statusErrors) {
		t.Errorf("runDoctorCmd() error = %v with status %q", err, got.Status)
	}
}
