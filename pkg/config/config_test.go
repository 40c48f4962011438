package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultsWhenNoArgs(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Errorf("Parse(nil) = %+v, want defaults %+v", cfg, want)
	}
}

func TestParseFlagsOverrideDefaults(t *testing.T) {
	cfg, err := Parse([]string{"-width=800", "-height=600", "-workers=4", "-scene=foo.yaml"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 600 || cfg.Workers != 4 || cfg.ScenePath != "foo.yaml" {
		t.Errorf("Parse = %+v, want width=800 height=600 workers=4 scene=foo.yaml", cfg)
	}
}

func TestParseFileLayerThenFlagOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "image_width: 1024\nimage_height: 768\nworker_count: 8\nscene_path: cornell.yaml\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg, err := Parse([]string{"-config=" + path, "-width=1920"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Width != 1920 {
		t.Errorf("Width = %d, want 1920 (flag overrides file)", cfg.Width)
	}
	if cfg.Height != 768 {
		t.Errorf("Height = %d, want 768 (from file)", cfg.Height)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8 (from file)", cfg.Workers)
	}
	if cfg.ScenePath != "cornell.yaml" {
		t.Errorf("ScenePath = %q, want cornell.yaml (from file)", cfg.ScenePath)
	}
}

func TestParseMissingConfigFileIsError(t *testing.T) {
	if _, err := Parse([]string{"-config=/nonexistent/config.yaml"}); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
