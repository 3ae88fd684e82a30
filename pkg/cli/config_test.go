package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoadConfigWithPath_NewConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "testapp", "config.yaml")

	cfg, err := LoadConfigWithPath("testapp", configPath)
	if err != nil {
		t.Fatalf("LoadConfigWithPath error: %v", err)
	}

	if cfg.AppName != "testapp" {
		t.Errorf("AppName = %q, want %q", cfg.AppName, "testapp")
	}

	if cfg.Contexts == nil {
		t.Error("Contexts should be initialized")
	}

	// Verify config file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file should be created")
	}
}

func TestConfig_AddContext_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg, err := LoadConfigWithPath("testapp", configPath)
	if err != nil {
		t.Fatalf("LoadConfigWithPath error: %v", err)
	}

	seed := uint64(42)
	err = cfg.AddContext("studio", &Context{
		SampleRate:  48000,
		Attenuation: 0.99,
		Seed:        &seed,
		S3:          &S3Config{Bucket: "notes", Prefix: "pluck"},
	})
	if err != nil {
		t.Fatalf("AddContext error: %v", err)
	}
	if err := cfg.UseContext("studio"); err != nil {
		t.Fatalf("UseContext error: %v", err)
	}

	reloaded, err := LoadConfigWithPath("testapp", configPath)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	ctx, err := reloaded.GetCurrentContext()
	if err != nil {
		t.Fatalf("GetCurrentContext error: %v", err)
	}
	if ctx.Name != "studio" {
		t.Errorf("Name = %q, want %q", ctx.Name, "studio")
	}
	if ctx.SampleRate != 48000 || ctx.Attenuation != 0.99 {
		t.Errorf("SampleRate = %d, Attenuation = %v", ctx.SampleRate, ctx.Attenuation)
	}
	if ctx.Seed == nil || *ctx.Seed != 42 {
		t.Errorf("Seed = %v, want 42", ctx.Seed)
	}
	if ctx.S3 == nil || ctx.S3.Bucket != "notes" || ctx.S3.Prefix != "pluck" {
		t.Errorf("S3 = %+v", ctx.S3)
	}
}

func TestConfig_DeleteContext(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg, err := LoadConfigWithPath("testapp", configPath)
	if err != nil {
		t.Fatalf("LoadConfigWithPath error: %v", err)
	}

	cfg.AddContext("ctx1", &Context{SampleRate: 16000})
	cfg.AddContext("ctx2", &Context{SampleRate: 24000})
	cfg.UseContext("ctx1")

	// Delete non-current context
	if err := cfg.DeleteContext("ctx2"); err != nil {
		t.Fatalf("DeleteContext error: %v", err)
	}
	if _, ok := cfg.Contexts["ctx2"]; ok {
		t.Error("Context should be deleted")
	}

	// Delete current context
	if err := cfg.DeleteContext("ctx1"); err != nil {
		t.Fatalf("DeleteContext error: %v", err)
	}
	if cfg.CurrentContext != "" {
		t.Errorf("CurrentContext should be cleared, got %q", cfg.CurrentContext)
	}

	if err := cfg.DeleteContext("nonexistent"); err == nil {
		t.Error("DeleteContext should fail for nonexistent context")
	}
}

func TestConfig_ResolveContext(t *testing.T) {
	cfg, err := LoadConfigWithPath("testapp", filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	// No context at all: an empty profile.
	ctx, err := cfg.ResolveContext("")
	if err != nil {
		t.Fatalf("ResolveContext(\"\") error: %v", err)
	}
	if ctx.SampleRate != 0 || ctx.Name != "" {
		t.Errorf("expected empty context, got %+v", ctx)
	}

	if _, err := cfg.ResolveContext("missing"); err == nil {
		t.Error("ResolveContext(missing) should fail")
	}

	cfg.AddContext("b", &Context{SampleCount: 100})
	cfg.AddContext("a", &Context{SampleCount: 200})
	cfg.UseContext("b")

	ctx, err = cfg.ResolveContext("")
	if err != nil || ctx.SampleCount != 100 {
		t.Errorf("current context = %+v, %v", ctx, err)
	}
	ctx, err = cfg.ResolveContext("a")
	if err != nil || ctx.SampleCount != 200 {
		t.Errorf("named context = %+v, %v", ctx, err)
	}

	if got := cfg.ListContexts(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("ListContexts() = %v", got)
	}
}

func TestConfig_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(configPath, []byte("contexts: [unclosed"), 0600)

	if _, err := LoadConfigWithPath("testapp", configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_PathAndDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	cfg, err := LoadConfigWithPath("testapp", configPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q", cfg.Path())
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q", cfg.Dir())
	}
}
