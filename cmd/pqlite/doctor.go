package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-pqlite/internal/assets"
	"github.com/alnah/go-pqlite/internal/config"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo `json:"chrome"`
	Assets   assetInfo  `json:"assets"`
	Config   configInfo `json:"config"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// assetInfo lists the built-in styles and shells.
type assetInfo struct {
	Styles []string `json:"styles"`
	Shells []string `json:"shells"`
}

// configInfo lists where a config named "pqlite" is looked up.
type configInfo struct {
	SearchPaths []string `json:"search_paths"`
	Found       string   `json:"found,omitempty"`
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

// defaultConfigName is the config name doctor reports on.
const defaultConfigName = "pqlite"

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	var jsonOutput bool
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.BoolVar(&jsonOutput, "json", false, "print the report as JSON")
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n\n", flagError(err))
		printDoctorUsage(env.Stderr)
		return ExitUsage
	}

	result := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkAssets(result)
	checkConfig(result)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome detects Chrome/Chromium. A missing browser only blocks PDF
// output, so it is a warning.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found: --format pdf is unavailable. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s: --format pdf is unavailable", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- path from LookPath or ROD_BROWSER_BIN
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkAssets verifies the built-in default shell is present.
func checkAssets(result *doctorResult) {
	result.Assets.Styles = assets.StyleNames()
	result.Assets.Shells = assets.ShellNames()

	if _, err := assets.LoadShell(assets.DefaultShellName); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Built-in shell unusable: %v", err))
	}
}

// checkConfig reports config search paths and the first existing one.
func checkConfig(result *doctorResult) {
	result.Config.SearchPaths = config.SearchPaths(defaultConfigName)
	for _, p := range result.Config.SearchPaths {
		if _, err := os.Stat(p); err == nil {
			result.Config.Found = p
			return
		}
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Chrome.Found && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint names the signal that matched.
func isContainer() (bool, string) {
	if os.Getenv("PQLITE_CONTAINER") == "1" {
		return true, "PQLITE_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	// Podman and systemd-nspawn
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for PDF rendering.
func checkSystem(result *doctorResult) {
	f, err := os.CreateTemp("", "pqlite-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	result.System.TempWritable = true
}

// Report line marks.
const (
	markOK    = "[OK]"
	markWarn  = "[WARN]"
	markError = "[ERROR]"
)

type reportLine struct {
	mark string // empty for continuation lines
	text string
}

type reportSection struct {
	title string
	lines []reportLine
}

// doctorSections lays the result out as titled sections. Empty sections
// are omitted by printDoctorResult.
func doctorSections(r *doctorResult) []reportSection {
	var chrome []reportLine
	switch {
	case !r.Chrome.Found:
		chrome = append(chrome, reportLine{markWarn, "Not found"})
	default:
		chrome = append(chrome, reportLine{markOK, "Found at " + r.Chrome.Path})
		if r.Chrome.Version != "" {
			chrome = append(chrome, reportLine{markOK, "Version: " + r.Chrome.Version})
		}
		sandbox := "Sandbox: enabled"
		if !r.Chrome.Sandbox {
			sandbox = "Sandbox: disabled (ROD_NO_SANDBOX=1)"
		}
		chrome = append(chrome, reportLine{markOK, sandbox})
	}

	conf := []reportLine{{markOK, "Found: " + r.Config.Found}}
	if r.Config.Found == "" {
		conf = []reportLine{{markOK, "None found (defaults apply). Searched:"}}
		for _, p := range r.Config.SearchPaths {
			conf = append(conf, reportLine{"", p})
		}
	}

	envLines := []reportLine{{markOK, fmt.Sprintf("Platform: %s/%s", r.Env.OS, r.Env.Arch)}}
	if r.Env.Container {
		envLines = append(envLines, reportLine{markOK, "Container: detected (" + r.Env.ContainerHint + ")"})
	}
	if r.Env.CI {
		envLines = append(envLines, reportLine{markOK, "CI: detected"})
	}

	temp := reportLine{markOK, "Temp directory: writable"}
	if !r.System.TempWritable {
		temp = reportLine{markError, "Temp directory: not writable"}
	}

	return []reportSection{
		{"Chrome/Chromium (pdf output)", chrome},
		{"Assets", []reportLine{
			{markOK, "Styles: " + strings.Join(r.Assets.Styles, ", ")},
			{markOK, "Shells: " + strings.Join(r.Assets.Shells, ", ")},
		}},
		{"Config", conf},
		{"Environment", envLines},
		{"System", []reportLine{temp}},
		{"Warnings:", markAll(markWarn, r.Warnings)},
		{"Errors:", markAll(markError, r.Errors)},
	}
}

func markAll(mark string, texts []string) []reportLine {
	lines := make([]reportLine, 0, len(texts))
	for _, t := range texts {
		lines = append(lines, reportLine{mark, t})
	}
	return lines
}

var statusText = map[string]string{
	"ready":    "Ready to convert",
	"warnings": "Ready with warnings",
	"errors":   "Not ready (see errors above)",
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprint(w, "pqlite doctor\n\n")

	for _, sec := range doctorSections(r) {
		if len(sec.lines) == 0 {
			continue
		}
		fmt.Fprintln(w, sec.title)
		for _, l := range sec.lines {
			if l.mark == "" {
				fmt.Fprintf(w, "       %s\n", l.text)
				continue
			}
			fmt.Fprintf(w, "  %s %s\n", l.mark, l.text)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Status: %s\n", statusText[r.Status])
}
