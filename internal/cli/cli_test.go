package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cratelink/pkg/config"
	"github.com/matzehuels/cratelink/pkg/errors"
	"github.com/matzehuels/cratelink/pkg/links"
)

const testSite = "https://crates.example"

var testCrates = map[string]string{
	"serde": `{"crate":{"name":"serde","homepage":"https://serde.rs","documentation":"https://docs.rs/serde","repository":"https://github.com/serde-rs/serde"}}`,
	"bare":  `{"crate":{"name":"bare","homepage":null,"documentation":null,"repository":null}}`,
}

type fakeLauncher struct {
	opened []string
}

func (l *fakeLauncher) Open(url string) error {
	l.opened = append(l.opened, url)
	return nil
}

type harness struct {
	cli      *CLI
	stdout   bytes.Buffer
	stderr   bytes.Buffer
	launcher fakeLauncher
	config   string
}

// newHarness points the CLI at a chi-routed stub registry and an empty
// config directory.
func newHarness(t *testing.T) *harness {
	t.Helper()

	r := chi.NewRouter()
	r.Get("/api/v1/crates/{name}", func(w http.ResponseWriter, req *http.Request) {
		body, ok := testCrates[chi.URLParam(req, "name")]
		if !ok {
			http.Error(w, `{"errors":[{"detail":"Not Found"}]}`, http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	})
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	t.Setenv(config.EnvRegistryURL, server.URL+"/api/v1/crates")
	t.Setenv(config.EnvSiteURL, testSite)
	t.Setenv(config.EnvDefaultLink, "")

	h := &harness{config: filepath.Join(t.TempDir(), "config.toml")}
	h.cli = New(&h.stdout, &h.stderr, LogInfo)
	h.cli.launcher = &h.launcher
	h.cli.workDir = t.TempDir()
	return h
}

func (h *harness) run(args ...string) error {
	root := h.cli.RootCommand()
	root.SetArgs(append([]string{"--config", h.config}, args...))
	root.SetOut(&h.stdout)
	root.SetErr(&h.stderr)
	return root.ExecuteContext(context.Background())
}

func TestRootOpensRequestedLink(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"serde"}, testSite + "/crates/serde"},
		{[]string{"serde", "-l", "h"}, "https://serde.rs"},
		{[]string{"serde", "--link", "Documentation"}, "https://docs.rs/serde"},
		{[]string{"serde", "-l", "r"}, "https://github.com/serde-rs/serde"},
		{[]string{"bare", "-l", "crate"}, testSite + "/crates/bare"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			h := newHarness(t)
			if err := h.run(tt.args...); err != nil {
				t.Fatalf("run() error: %v\n%s", err, h.stderr.String())
			}
			if len(h.launcher.opened) != 1 || h.launcher.opened[0] != tt.want {
				t.Fatalf("opened = %v, want [%s]", h.launcher.opened, tt.want)
			}
			if !strings.Contains(h.stderr.String(), "Opened "+tt.want) {
				t.Errorf("stderr missing success line:\n%s", h.stderr.String())
			}
		})
	}
}

func TestRootSummaryLogged(t *testing.T) {
	h := newHarness(t)
	if err := h.run("serde"); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := "Homepage: https://serde.rs, Documentation: https://docs.rs/serde, Repository: https://github.com/serde-rs/serde"
	if !strings.Contains(h.stderr.String(), want) {
		t.Errorf("stderr missing summary %q:\n%s", want, h.stderr.String())
	}
}

func TestRootMissingLink(t *testing.T) {
	h := newHarness(t)
	err := h.run("bare", "-l", "homepage")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsReported(err) {
		t.Error("resolve failure should be reported")
	}
	if !errors.Is(err, errors.ErrCodeMissingLink) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeMissingLink)
	}
	out := h.stderr.String()
	for _, want := range []string{
		"The homepage link isn't set for that crate.",
		"No links found for crate 'bare'. Browse " + testSite + "/crates/bare to inspect it manually.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stderr missing %q:\n%s", want, out)
		}
	}
	if len(h.launcher.opened) != 0 {
		t.Errorf("nothing should be opened, got %v", h.launcher.opened)
	}
}

func TestRootUnknownCrate(t *testing.T) {
	h := newHarness(t)
	err := h.run("nope")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeBadStatus) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeBadStatus)
	}
	if !strings.Contains(h.stderr.String(), "Could not find crate information for 'nope'.") {
		t.Errorf("stderr missing fetch message:\n%s", h.stderr.String())
	}
	if strings.Contains(h.stderr.String(), "404") {
		t.Errorf("status should only appear with --debug:\n%s", h.stderr.String())
	}
}

func TestRootDebugShowsTraceAndCause(t *testing.T) {
	h := newHarness(t)
	if err := h.run("nope", "--debug"); err == nil {
		t.Fatal("expected error")
	}
	out := h.stderr.String()
	for _, want := range []string{"request", "/api/v1/crates/nope", "404", "BAD_STATUS"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}
}

func TestRootDebugTracesStages(t *testing.T) {
	h := newHarness(t)
	if err := h.run("serde", "-l", "d", "--debug"); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	out := h.stderr.String()
	for _, want := range []string{"fetch done", "resolve", "link=documentation", "dispatch", "done"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}
}

func TestRootDebugMissingLinkField(t *testing.T) {
	h := newHarness(t)
	if err := h.run("bare", "-l", "r", "--debug"); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(h.stderr.String(), "field=repository") {
		t.Errorf("debug output should name the unset field:\n%s", h.stderr.String())
	}
}

func TestRootPrint(t *testing.T) {
	h := newHarness(t)
	if err := h.run("serde", "-p", "-l", "d"); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if got := h.stdout.String(); got != "https://docs.rs/serde\n" {
		t.Errorf("stdout = %q", got)
	}
	if len(h.launcher.opened) != 0 {
		t.Errorf("--print should not open a browser, opened %v", h.launcher.opened)
	}
}

func TestRootInvalidLinkFlag(t *testing.T) {
	h := newHarness(t)
	err := h.run("serde", "-l", "x")
	if err == nil {
		t.Fatal("expected error")
	}
	if IsReported(err) {
		t.Error("flag errors are printed by main, not reported")
	}
	if !strings.Contains(err.Error(), `unknown link "x"`) {
		t.Errorf("error = %v", err)
	}
}

func TestRootTooManyArgs(t *testing.T) {
	h := newHarness(t)
	if err := h.run("serde", "tokio"); err == nil {
		t.Fatal("expected error for two crate arguments")
	}
}

func TestRootCrateFromManifest(t *testing.T) {
	h := newHarness(t)
	manifest := "[package]\nname = \"serde\"\nversion = \"1.0.0\"\n"
	if err := os.WriteFile(filepath.Join(h.cli.workDir, "Cargo.toml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := h.run("-l", "r"); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if len(h.launcher.opened) != 1 || h.launcher.opened[0] != "https://github.com/serde-rs/serde" {
		t.Errorf("opened = %v", h.launcher.opened)
	}
}

func TestRootNoCrateNoManifest(t *testing.T) {
	h := newHarness(t)
	err := h.run()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeManifestNotFound) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeManifestNotFound)
	}
}

func TestRootDefaultLinkFromConfig(t *testing.T) {
	h := newHarness(t)
	if err := os.WriteFile(h.config, []byte("default_link = \"d\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := h.run("serde"); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if err := h.run("serde", "-l", "crate"); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	want := []string{"https://docs.rs/serde", testSite + "/crates/serde"}
	if strings.Join(h.launcher.opened, " ") != strings.Join(want, " ") {
		t.Errorf("opened = %v, want %v", h.launcher.opened, want)
	}
}

func TestRootInvalidConfig(t *testing.T) {
	h := newHarness(t)
	if err := os.WriteFile(h.config, []byte("colour = \"red\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := h.run("serde")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestRootList(t *testing.T) {
	h := newHarness(t)
	if err := h.run("serde", "--list"); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	out := h.stdout.String()
	for _, want := range []string{"Crate", "https://serde.rs", "https://docs.rs/serde", "https://github.com/serde-rs/serde"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
	if len(h.launcher.opened) != 0 {
		t.Errorf("--list should not open anything, opened %v", h.launcher.opened)
	}
}

func TestRootListCanonicalOnly(t *testing.T) {
	h := newHarness(t)
	if err := h.run("bare", "--list"); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "No links found for crate 'bare'.") {
		t.Errorf("list output missing fallback summary:\n%s", h.stdout.String())
	}
}

func TestRootInteractive(t *testing.T) {
	h := newHarness(t)
	var offered LinkPickerModel
	h.cli.pick = func(m LinkPickerModel) (links.Link, error) {
		offered = m
		return m.Links[len(m.Links)-1], nil
	}

	if err := h.run("serde", "-i", "-l", "d"); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if offered.Crate != "serde" || len(offered.Links) != 4 {
		t.Fatalf("picker got crate %q with %d links", offered.Crate, len(offered.Links))
	}
	if offered.Links[offered.Cursor].Destination != links.Documentation {
		t.Errorf("cursor on %v, want documentation", offered.Links[offered.Cursor].Destination)
	}
	if len(h.launcher.opened) != 1 || h.launcher.opened[0] != "https://github.com/serde-rs/serde" {
		t.Errorf("opened = %v", h.launcher.opened)
	}
}

func TestRootInteractiveCancelled(t *testing.T) {
	h := newHarness(t)
	h.cli.pick = func(LinkPickerModel) (links.Link, error) {
		return links.Link{}, errors.New(errors.ErrCodeInvalidInput, "No link selected.")
	}
	err := h.run("serde", "-i")
	if err == nil || !IsReported(err) {
		t.Fatalf("err = %v, want reported error", err)
	}
	if len(h.launcher.opened) != 0 {
		t.Errorf("opened = %v", h.launcher.opened)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			h := newHarness(t)
			if err := h.run("completion", shell); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(h.stdout.String(), "cratelink") {
				t.Errorf("completion script should mention cratelink")
			}
		})
	}
}

func TestCompleteLinks(t *testing.T) {
	got, _ := completeLinks(nil, nil, "")
	if len(got) != len(links.Destinations) {
		t.Fatalf("got %d completions, want %d", len(got), len(links.Destinations))
	}
	if !strings.HasPrefix(got[0], "crate\t") {
		t.Errorf("first completion = %q", got[0])
	}
}
