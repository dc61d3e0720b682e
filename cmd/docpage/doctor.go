package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	docpage "github.com/alnah/go-docpage"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// ErrDoctorFailed is returned when a doctor check reports an error.
var ErrDoctorFailed = errors.New("environment not ready")

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"`
	Chrome   chromeInfo  `json:"chrome"`
	Content  contentInfo `json:"content"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// contentInfo holds config, asset and catalog check results.
type contentInfo struct {
	ConfigPath string `json:"config_path,omitempty"`
	AssetPath  string `json:"asset_path,omitempty"`
	Style      string `json:"style"`
	Rendered   bool   `json:"rendered"`
	Bytes      int    `json:"bytes,omitempty"`
	Misses     int    `json:"misses"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command. Warnings still succeed;
// any error returns ErrDoctorFailed.
func runDoctorCmd(args []string, env *Environment) error {
	flags, err := parseDoctorFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printDoctorUsage(env.Stdout)
		return err
	}
	if err != nil {
		return err
	}

	result := runDoctor(&flags.common, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result, flags.noColor)
	}

	if result.Status == statusErrors {
		return ErrDoctorFailed
	}
	return nil
}

// runDoctor performs all diagnostic checks.
func runDoctor(common *commonFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  env.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: env.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkContent(result, common, env)
	checkEnvironment(result, env.Getenv)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; pdf will download Chromium on first use or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkContent loads the config and renders the page once, the way
// render would, so config, asset and catalog problems surface here.
func checkContent(result *doctorResult, common *commonFlags, env *Environment) {
	loaded, err := loadConfig(common, env)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		return
	}
	result.Content.ConfigPath = loaded.path
	result.Content.AssetPath = loaded.cfg.Assets.BasePath
	result.Content.Style = loaded.cfg.Render.Style
	if result.Content.Style == "" {
		result.Content.Style = "default"
	}

	res, err := renderPage(context.Background(), loaded.cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Render: %v", err))
		return
	}
	result.Content.Rendered = true
	result.Content.Bytes = len(res.HTML)
	result.Content.Misses = len(res.Page.Misses)

	for _, m := range res.Page.Misses {
		if m.Kind == docpage.MissGlyph {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Glyph %q not found, a placeholder is shown", m.Ref))
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Asset %q unresolved, a placeholder is shown", m.Ref))
		}
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.Container, result.Env.ContainerHint = isContainer(getenv)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("DOCPAGE_CONTAINER") == "1" {
		return true, "DOCPAGE_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for PDF export is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "docpage-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult, noColor bool) {
	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	bad := color.New(color.FgRed, color.Bold)
	title := color.New(color.Bold)
	if noColor {
		for _, c := range []*color.Color{ok, warn, bad, title} {
			c.DisableColor()
		}
	}
	line := func(c *color.Color, tag, format string, args ...any) {
		fmt.Fprintf(w, "  %s %s\n", c.Sprint(tag), fmt.Sprintf(format, args...))
	}

	title.Fprintln(w, "docpage doctor")
	fmt.Fprintln(w)

	title.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		line(ok, "[OK]", "Found at %s", r.Chrome.Path)
		if r.Chrome.Version != "" {
			line(ok, "[OK]", "Version: %s", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			line(ok, "[OK]", "Sandbox: enabled")
		} else {
			line(ok, "[OK]", "Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		line(warn, "[WARN]", "Not found")
	}
	fmt.Fprintln(w)

	title.Fprintln(w, "Content")
	if r.Content.ConfigPath != "" {
		line(ok, "[OK]", "Config: %s", r.Content.ConfigPath)
	} else {
		line(ok, "[OK]", "Config: built-in defaults")
	}
	if r.Content.AssetPath != "" {
		line(ok, "[OK]", "Assets: %s (embedded fallback)", r.Content.AssetPath)
	}
	if r.Content.Rendered {
		line(ok, "[OK]", "Page: %d bytes, style %s, %d placeholder(s)", r.Content.Bytes, r.Content.Style, r.Content.Misses)
	} else {
		line(bad, "[ERROR]", "Page: not rendered")
	}
	fmt.Fprintln(w)

	title.Fprintln(w, "Environment")
	line(ok, "[OK]", "Platform: %s/%s", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		line(ok, "[OK]", "Container: detected (%s)", r.Env.ContainerHint)
	}
	if r.Env.CI {
		line(ok, "[OK]", "CI: detected")
	}
	fmt.Fprintln(w)

	title.Fprintln(w, "System")
	if r.System.TempWritable {
		line(ok, "[OK]", "Temp directory: writable")
	} else {
		line(bad, "[ERROR]", "Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		title.Fprintln(w, "Warnings:")
		for _, msg := range r.Warnings {
			line(warn, "[WARN]", "%s", msg)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		title.Fprintln(w, "Errors:")
		for _, msg := range r.Errors {
			line(bad, "[ERROR]", "%s", msg)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		ok.Fprintln(w, "Status: Ready")
	case statusWarnings:
		warn.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		bad.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
