package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/haivivi/pluck/pkg/audio/wav"
	"github.com/haivivi/pluck/pkg/bank"
)

// testEnv is an isolated config file and note bank directory.
type testEnv struct {
	config string
	dir    string
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	root := t.TempDir()
	return testEnv{
		config: filepath.Join(root, "config", "config.yaml"),
		dir:    filepath.Join(root, "notes"),
	}
}

// run executes pluck with the environment's config and bank directory.
func (e testEnv) run(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	return runCmd(t, append([]string{"--config", e.config, "--dir", e.dir}, args...)...)
}

func runCmd(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	var outBuf, errBuf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); io.Copy(&outBuf, rOut) }()
	go func() { defer wg.Done(); io.Copy(&errBuf, rErr) }()

	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())

	wOut.Close()
	wErr.Close()
	wg.Wait()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	stdout = outBuf.String()
	stderr = errBuf.String()
	if err != nil {
		exitCode = 1
		stderr += err.Error()
	}

	resetFlags(rootCmd)
	return
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Changed = false
		f.Value.Set(f.DefValue)
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestVersion(t *testing.T) {
	env := setupTestEnv(t)
	stdout, _, code := env.run(t, "version")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout, "pluck") {
		t.Fatalf("expected 'pluck', got: %s", stdout)
	}
}

func TestVersionJSON(t *testing.T) {
	env := setupTestEnv(t)
	stdout, _, code := env.run(t, "version", "--json")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout, `"version"`) {
		t.Fatalf("expected JSON, got: %s", stdout)
	}
}

func TestConfigContexts(t *testing.T) {
	env := setupTestEnv(t)

	if _, stderr, code := env.run(t, "config", "add-context", "studio", "--samples", "441", "--seed", "3"); code != 0 {
		t.Fatalf("add-context: %s", stderr)
	}
	if _, stderr, code := env.run(t, "config", "add-context", "cloud", "--s3-bucket", "notes"); code != 0 {
		t.Fatalf("add-context: %s", stderr)
	}
	if _, stderr, code := env.run(t, "config", "use-context", "studio"); code != 0 {
		t.Fatalf("use-context: %s", stderr)
	}

	stdout, _, _ := env.run(t, "config", "list-contexts")
	if !strings.Contains(stdout, "  cloud") || !strings.Contains(stdout, "* studio") {
		t.Fatalf("list-contexts = %q", stdout)
	}
	stdout, _, _ = env.run(t, "config", "get-context")
	if strings.TrimSpace(stdout) != "studio" {
		t.Fatalf("get-context = %q", stdout)
	}

	stdout, _, _ = env.run(t, "config", "view", "--json")
	var view struct {
		Contexts map[string]struct {
			SampleCount int     `json:"SampleCount"`
			Seed        *uint64 `json:"Seed"`
		}
	}
	if err := json.Unmarshal([]byte(stdout), &view); err != nil {
		t.Fatalf("view: %v\n%s", err, stdout)
	}
	if c := view.Contexts["studio"]; c.SampleCount != 441 || c.Seed == nil || *c.Seed != 3 {
		t.Fatalf("studio = %+v", c)
	}

	if _, _, code := env.run(t, "config", "delete-context", "studio"); code != 0 {
		t.Fatal("delete-context failed")
	}
	stdout, _, _ = env.run(t, "config", "get-context")
	if !strings.Contains(stdout, "No current context") {
		t.Fatalf("get-context after delete = %q", stdout)
	}
	if _, _, code := env.run(t, "config", "use-context", "missing"); code == 0 {
		t.Fatal("use-context of a missing context should fail")
	}
}

func TestGenerateSkipAndReplay(t *testing.T) {
	env := setupTestEnv(t)

	decode := func(stdout string) []bank.Result {
		t.Helper()
		var results []bank.Result
		if err := json.Unmarshal([]byte(stdout), &results); err != nil {
			t.Fatalf("decode results: %v\n%s", err, stdout)
		}
		return results
	}

	stdout, stderr, code := env.run(t, "generate", "--samples", "441", "--json")
	if code != 0 {
		t.Fatalf("generate: %s", stderr)
	}
	results := decode(stdout)
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	for _, r := range results {
		if r.Status != bank.StatusGenerated {
			t.Fatalf("%s: status %s", r.Note, r.Status)
		}
		if _, err := os.Stat(filepath.Join(env.dir, r.Path)); err != nil {
			t.Fatal(err)
		}
	}

	stdout, _, _ = env.run(t, "generate", "--samples", "441", "--json")
	for _, r := range decode(stdout) {
		if r.Status != bank.StatusSkipped {
			t.Fatalf("second run %s: status %s, want skipped", r.Note, r.Status)
		}
	}

	stdout, _, _ = env.run(t, "generate", "--samples", "441", "--replay", "--json")
	for _, r := range decode(stdout) {
		if r.Status != bank.StatusGenerated {
			t.Fatalf("replay %s: status %s, want generated", r.Note, r.Status)
		}
	}

	stdout, stderr, code = env.run(t, "list", "--json")
	if code != 0 {
		t.Fatalf("list: %s", stderr)
	}
	var entries []bank.Entry
	if err := json.Unmarshal([]byte(stdout), &entries); err != nil {
		t.Fatalf("decode entries: %v\n%s", err, stdout)
	}
	if len(entries) != 5 {
		t.Fatalf("got %d manifest entries, want 5", len(entries))
	}
	for _, e := range entries {
		if e.SampleCount != 441 || e.Scale != "pentatonic-minor" {
			t.Fatalf("entry = %+v", e)
		}
	}
}

func TestGenerateScaleFile(t *testing.T) {
	env := setupTestEnv(t)
	scale := filepath.Join(t.TempDir(), "duo.yaml")
	os.WriteFile(scale, []byte("name: duo\nnotes:\n  - {name: A4, freq: 440}\n  - {name: A3, freq: 220}\n"), 0644)

	_, stderr, code := env.run(t, "generate", "-f", scale, "--samples", "100")
	if code != 0 {
		t.Fatalf("generate: %s", stderr)
	}
	for _, name := range []string{"A4.wav", "A3.wav"} {
		if _, err := os.Stat(filepath.Join(env.dir, name)); err != nil {
			t.Fatal(err)
		}
	}
}

func TestClean(t *testing.T) {
	env := setupTestEnv(t)
	if _, stderr, code := env.run(t, "generate", "--samples", "100"); code != 0 {
		t.Fatalf("generate: %s", stderr)
	}
	if _, stderr, code := env.run(t, "clean", "G"); code != 0 {
		t.Fatalf("clean: %s", stderr)
	}
	if _, err := os.Stat(filepath.Join(env.dir, "G.wav")); !os.IsNotExist(err) {
		t.Fatalf("G.wav still present: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.dir, "C4.wav")); err != nil {
		t.Fatalf("C4.wav removed: %v", err)
	}
}

func TestSynthToFile(t *testing.T) {
	env := setupTestEnv(t)
	out := filepath.Join(t.TempDir(), "a4.wav")

	_, stderr, code := env.run(t, "synth", "440", "-o", out, "--samples", "441", "--seed", "1")
	if code != 0 {
		t.Fatalf("synth: %s", stderr)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	asset, err := wav.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if asset.Header.Frames != 441 || asset.Header.SampleRate != 44100 {
		t.Fatalf("header = %+v", asset.Header)
	}
}

func TestSynthStdout(t *testing.T) {
	env := setupTestEnv(t)
	stdout, stderr, code := env.run(t, "synth", "G", "--samples", "100", "--seed", "1")
	if code != 0 {
		t.Fatalf("synth: %s", stderr)
	}
	asset, err := wav.Decode(strings.NewReader(stdout))
	if err != nil {
		t.Fatal(err)
	}
	if asset.Header.Frames != 100 {
		t.Fatalf("frames = %d, want 100", asset.Header.Frames)
	}
}

func TestSynthErrors(t *testing.T) {
	env := setupTestEnv(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero frequency", []string{"synth", "0"}, "invalid frequency"},
		{"unknown note", []string{"synth", "Q9"}, "neither a frequency nor a note"},
		{"bad attenuation", []string{"synth", "440", "--attenuation", "2"}, "invalid attenuation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := env.run(t, tt.args...)
			if code == 0 {
				t.Fatal("expected failure")
			}
			if !strings.Contains(stderr, tt.want) {
				t.Fatalf("stderr = %q, want %q", stderr, tt.want)
			}
		})
	}
}

func TestPlayEmptyBank(t *testing.T) {
	env := setupTestEnv(t)
	_, stderr, code := env.run(t, "play")
	if code == 0 {
		t.Fatal("expected failure on empty bank")
	}
	if !strings.Contains(stderr, "no notes in the bank") {
		t.Fatalf("stderr = %q", stderr)
	}
}
