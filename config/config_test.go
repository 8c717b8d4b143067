package config

import (
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Suffix != "_modus" {
		t.Errorf("default suffix = %q, want _modus", cfg.Suffix)
	}
	if cfg.Jobs != 0 || cfg.Debug || cfg.Copyright != "" {
		t.Errorf("unexpected non-zero defaults: %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Copyright = "2020 STS"
	cfg.Text = []string{"converted for Modus"}
	cfg.Jobs = 4
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.Copyright != cfg.Copyright || got.Jobs != cfg.Jobs {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.Text) != 1 || got.Text[0] != cfg.Text[0] {
		t.Errorf("text round trip mismatch: %v", got.Text)
	}
	// Defaults still apply to fields absent from the file.
	if got.Suffix != "_modus" {
		t.Errorf("suffix = %q, want default", got.Suffix)
	}
}
