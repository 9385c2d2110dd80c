package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"foodctl/internal/api"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParseDefaults(t *testing.T) {
	home := t.TempDir()
	config, err := parse(nil, envMap(nil), home)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if config.APIBaseURL != "" {
		t.Errorf("APIBaseURL = %q, want empty so onboarding can decide", config.APIBaseURL)
	}
	if want := filepath.Join(home, ".foodctl", "foodctl.db"); config.DBPath != want {
		t.Errorf("DBPath = %q, want %q", config.DBPath, want)
	}
	if want := filepath.Join(home, ".foodctl", "foodctl.log"); config.LogFile != want {
		t.Errorf("LogFile = %q, want %q", config.LogFile, want)
	}
	if config.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", config.Timeout, defaultTimeout)
	}
	if config.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", config.LogLevel)
	}
}

func TestParsePrecedence(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".foodctl")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	yml := "api_url: https://file.example.com/\nasset_url: https://cdn.file.example.com\nlog_level: warn\ntimeout: 3s\ndb: ~/meals.db\n"
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(yml), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		args      []string
		env       map[string]string
		wantAPI   string
		wantAsset string
		wantLevel string
	}{
		{
			name:      "file only",
			wantAPI:   "https://file.example.com",
			wantAsset: "https://cdn.file.example.com",
			wantLevel: "warn",
		},
		{
			name:      "env beats file",
			env:       map[string]string{envAPIURL: "https://env.example.com", envLogLevel: "DEBUG"},
			wantAPI:   "https://env.example.com",
			wantAsset: "https://cdn.file.example.com",
			wantLevel: "debug",
		},
		{
			name:      "flag beats env",
			args:      []string{"-api", "https://flag.example.com", "-assets", "https://cdn.flag.example.com", "-log-level", "error"},
			env:       map[string]string{envAPIURL: "https://env.example.com", envAssetURL: "https://cdn.env.example.com"},
			wantAPI:   "https://flag.example.com",
			wantAsset: "https://cdn.flag.example.com",
			wantLevel: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := parse(tt.args, envMap(tt.env), home)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if config.APIBaseURL != tt.wantAPI {
				t.Errorf("APIBaseURL = %q, want %q", config.APIBaseURL, tt.wantAPI)
			}
			if config.AssetBaseURL != tt.wantAsset {
				t.Errorf("AssetBaseURL = %q, want %q", config.AssetBaseURL, tt.wantAsset)
			}
			if config.LogLevel != tt.wantLevel {
				t.Errorf("LogLevel = %q, want %q", config.LogLevel, tt.wantLevel)
			}
			if config.Timeout != 3*time.Second {
				t.Errorf("Timeout = %v, want 3s", config.Timeout)
			}
			if want := filepath.Join(home, "meals.db"); config.DBPath != want {
				t.Errorf("DBPath = %q, want %q", config.DBPath, want)
			}
		})
	}
}

func TestParseTimeoutFlag(t *testing.T) {
	config, err := parse([]string{"-timeout", "250ms", "-demo"}, envMap(nil), t.TempDir())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if config.Timeout != 250*time.Millisecond {
		t.Errorf("Timeout = %v, want 250ms", config.Timeout)
	}
	if !config.Demo {
		t.Error("Demo should be set")
	}
}

func TestParseErrors(t *testing.T) {
	home := t.TempDir()

	if _, err := parse([]string{"-config", filepath.Join(home, "missing.yaml")}, envMap(nil), home); err == nil {
		t.Error("expected error for a missing explicit config file")
	}

	bad := filepath.Join(home, "bad.yaml")
	if err := os.WriteFile(bad, []byte("timeout: soon\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := parse([]string{"-config", bad}, envMap(nil), home); err == nil {
		t.Error("expected error for an invalid timeout")
	}

	if _, err := parse([]string{"-unknown"}, envMap(nil), home); err == nil {
		t.Error("expected error for an unknown flag")
	}
}

func TestOnboardingSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	settings, err := loadOnboardingSettings(dir)
	if err != nil {
		t.Fatalf("load of missing settings failed: %v", err)
	}
	if settings.Completed {
		t.Error("missing settings should not be completed")
	}

	want := OnboardingSettings{Completed: true, APIBaseURL: "https://meals.example.com"}
	if err := saveOnboardingSettings(dir, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := loadOnboardingSettings(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestValidateAPIURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "https://meals.example.com/", want: "https://meals.example.com"},
		{in: "  http://localhost:8080  ", want: "http://localhost:8080"},
		{in: "meals.example.com", wantErr: true},
		{in: "ftp://meals.example.com", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := validateAPIURL(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateAPIURL(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("validateAPIURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOnboardingCustomURL(t *testing.T) {
	var m tea.Model = newOnboardingModel()

	m, _ = m.Update(keyRunes("j"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.(onboardingModel).step; got != stepURL {
		t.Fatalf("step = %v, want stepURL", got)
	}

	m, _ = m.Update(keyRunes("not a url"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if ob := m.(onboardingModel); ob.step != stepURL || ob.inputErr == "" {
		t.Fatalf("invalid URL should keep the step and show an error, got step %v err %q", ob.step, ob.inputErr)
	}

	ob := m.(onboardingModel)
	ob.urlInput.SetValue("https://meals.example.com/")
	m, cmd := ob.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	ob = m.(onboardingModel)
	if ob.step != stepDone || ob.settings.APIBaseURL != "https://meals.example.com" {
		t.Errorf("got step %v url %q", ob.step, ob.settings.APIBaseURL)
	}
	if !ob.settings.Completed {
		t.Error("settings should be marked completed")
	}
}

func TestOnboardingHostedDefault(t *testing.T) {
	var m tea.Model = newOnboardingModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	ob := m.(onboardingModel)
	if ob.step != stepDone || ob.settings.APIBaseURL != api.DefaultBaseURL {
		t.Errorf("got step %v url %q", ob.step, ob.settings.APIBaseURL)
	}
}
