package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dd0wney/graphlens/pkg/simulation"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graphlens.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config is invalid: %v", err)
	}
	if cfg.Source.Kind != "demo" {
		t.Errorf("Default source kind = %q, want demo", cfg.Source.Kind)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}
	if cfg != Default() {
		t.Error("Missing file must yield the default config")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
viewport:
  width: 1280
  height: 720
simulation:
  linkDistance: 150
source:
  kind: file
  path: graph.json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Viewport.Width != 1280 || cfg.Viewport.Height != 720 {
		t.Errorf("Viewport = %+v, want 1280x720", cfg.Viewport)
	}
	if cfg.Simulation.LinkDistance != 150 {
		t.Errorf("LinkDistance = %f, want 150", cfg.Simulation.LinkDistance)
	}
	// Untouched fields keep their defaults.
	if cfg.Simulation.VelocityDecay != simulation.DefaultVelocityDecay {
		t.Errorf("VelocityDecay = %f, want default", cfg.Simulation.VelocityDecay)
	}
	if cfg.Source.Kind != "file" || cfg.Source.Path != "graph.json" {
		t.Errorf("Source = %+v, want file source", cfg.Source)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bad source kind",
			content: "source:\n  kind: carrier-pigeon\n",
			want:    "Kind",
		},
		{
			name:    "viewport too small",
			content: "viewport:\n  width: 10\n",
			want:    "Width",
		},
		{
			name:    "positive charge",
			content: "simulation:\n  chargeStrength: 40\n",
			want:    "ChargeStrength",
		},
		{
			name:    "file source without path",
			content: "source:\n  kind: file\n",
			want:    "Path",
		},
		{
			name:    "feed source without url",
			content: "source:\n  kind: feed\n",
			want:    "FeedURL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Error %q does not mention %s", err, tt.want)
			}
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "viewport: [not a map"))
	if err == nil {
		t.Fatal("Expected parse error")
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := Default()
	cfg.Simulation.LinkDistance = 200
	cfg.Simulation.ChargeStrength = -800

	eng := cfg.EngineConfig()
	if eng.LinkDistance != 200 {
		t.Errorf("LinkDistance = %f, want 200", eng.LinkDistance)
	}
	if eng.ChargeStrength != -800 {
		t.Errorf("ChargeStrength = %f, want -800", eng.ChargeStrength)
	}
	if eng.AlphaDecay != simulation.DefaultConfig().AlphaDecay {
		t.Errorf("AlphaDecay = %f, want default", eng.AlphaDecay)
	}
}

func TestEngineConfigRecomputesAlphaDecay(t *testing.T) {
	cfg := Default()
	cfg.Simulation.AlphaMin = 0.01

	eng := cfg.EngineConfig()
	if want := simulation.AlphaDecayFor(0.01); eng.AlphaDecay != want {
		t.Errorf("AlphaDecay = %f, want %f for alphaMin 0.01", eng.AlphaDecay, want)
	}
	if eng.AlphaDecay == simulation.DefaultConfig().AlphaDecay {
		t.Error("Overriding alphaMin must not keep the default decay rate")
	}
}
