package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aidanlsb/agendalink/internal/config"
)

func TestConfigInitSetUnset(t *testing.T) {
	resetCLIState(t)
	cfgPath := filepath.Join(t.TempDir(), "agendalink", "config.toml")

	out, err := executeCLI(t, "--json", "--config", cfgPath, "config", "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	env := decodeEnvelope(t, out)
	if !env.OK {
		t.Fatalf("init failed: %s", out)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("config not created: %v", err)
	}

	resetCLIState(t)
	out, err = executeCLI(t, "--json", "--config", cfgPath, "config", "set", "agenda.date_format", "yyyymmdd")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	env = decodeEnvelope(t, out)
	var data struct {
		Changed   []string       `json:"changed"`
		Effective map[string]any `json:"effective"`
		Agenda    map[string]any `json:"agenda"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode: %v; out=%s", err, out)
	}
	if len(data.Changed) != 1 || data.Changed[0] != "agenda.date_format" {
		t.Fatalf("changed = %v", data.Changed)
	}
	if data.Agenda["date_format"] != "YYYYMMDD" || data.Effective["date_format"] != "YYYYMMDD" {
		t.Fatalf("date_format not canonicalized: agenda=%v effective=%v", data.Agenda, data.Effective)
	}

	loaded, err := config.LoadFrom(cfgPath)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Agenda.DateFormat != "YYYYMMDD" {
		t.Fatalf("saved date_format = %q", loaded.Agenda.DateFormat)
	}

	resetCLIState(t)
	out, err = executeCLI(t, "--json", "--config", cfgPath, "config", "unset", "agenda.date_format")
	if err != nil {
		t.Fatalf("unset: %v", err)
	}
	if env := decodeEnvelope(t, out); !env.OK {
		t.Fatalf("unset failed: %s", out)
	}
	loaded, err = config.LoadFrom(cfgPath)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Agenda.DateFormat != "" {
		t.Fatalf("date_format after unset = %q", loaded.Agenda.DateFormat)
	}
}

func TestConfigSetRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"agenda.replacement_char", "/"},
		{"agenda.max_filename_length", "zero"},
		{"agenda.date_format", "DD/MM"},
		{"agenda.nope", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			resetCLIState(t)
			cfgPath := filepath.Join(t.TempDir(), "config.toml")

			out, err := executeCLI(t, "--json", "--config", cfgPath, "config", "set", tt.key, tt.value)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			env := decodeEnvelope(t, out)
			if env.OK || env.Error == nil || env.Error.Code != ErrInvalidInput {
				t.Fatalf("expected INVALID_INPUT, got %s", out)
			}
			if _, err := os.Stat(cfgPath); !os.IsNotExist(err) {
				t.Fatalf("expected no config file to be written, stat err = %v", err)
			}
		})
	}
}

func TestConfigUnsetNeedsFile(t *testing.T) {
	resetCLIState(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	out, err := executeCLI(t, "--json", "--config", cfgPath, "config", "unset", "agenda.user_name")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	env := decodeEnvelope(t, out)
	if env.Error == nil || env.Error.Code != ErrFileNotFound {
		t.Fatalf("expected FILE_NOT_FOUND, got %s", out)
	}
}

func TestConfigShowAppliesEnv(t *testing.T) {
	resetCLIState(t)
	cfgPath := writeTestConfig(t, "[agenda]\nuser_name = \"Shawn\"\n")
	t.Setenv(config.EnvUserName, "Maria")

	out, err := executeCLI(t, "--json", "--config", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	env := decodeEnvelope(t, out)
	var data struct {
		Exists    bool           `json:"exists"`
		Agenda    map[string]any `json:"agenda"`
		Effective map[string]any `json:"effective"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !data.Exists {
		t.Fatal("expected exists=true")
	}
	if data.Agenda["user_name"] != "Shawn" {
		t.Fatalf("file user_name = %v", data.Agenda["user_name"])
	}
	if data.Effective["user_name"] != "Maria" {
		t.Fatalf("effective user_name = %v", data.Effective["user_name"])
	}
}

func TestConfigShowWorksWithBrokenConfig(t *testing.T) {
	resetCLIState(t)
	cfgPath := writeTestConfig(t, "[agenda]\nreplacement_char = \"/\"\n")

	out, err := executeCLI(t, "--json", "--config", cfgPath, "config")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	env := decodeEnvelope(t, out)
	if !env.OK {
		t.Fatalf("expected show to succeed, got %s", out)
	}
	if !strings.Contains(string(env.Data), "effective_error") {
		t.Fatalf("expected effective_error in %s", env.Data)
	}
}

func TestConfigPath(t *testing.T) {
	resetCLIState(t)
	cfgPath := filepath.Join(t.TempDir(), "custom.toml")

	out, err := executeCLI(t, "--config", cfgPath, "config", "path")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out) != cfgPath {
		t.Fatalf("path = %q, want %q", out, cfgPath)
	}
}
