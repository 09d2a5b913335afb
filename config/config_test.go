package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Agent.Mass != 10 {
		t.Errorf("agent.mass = %v, want 10", cfg.Agent.Mass)
	}
	if cfg.Agent.Wander.Tolerance != 0.5 {
		t.Errorf("wander tolerance = %v, want 0.5", cfg.Agent.Wander.Tolerance)
	}
	if cfg.Agent.SlowingRadius != 8 || cfg.Agent.StopThreshold != 2 {
		t.Errorf("radii = %v/%v, want 8/2", cfg.Agent.SlowingRadius, cfg.Agent.StopThreshold)
	}
	if len(cfg.Targets) == 0 {
		t.Error("no default targets")
	}
	if cfg.Derived.HalfWidth != cfg.World.Width/2 {
		t.Errorf("HalfWidth = %v", cfg.Derived.HalfWidth)
	}
	if i, ok := cfg.Derived.AgentIndex["perrito"]; !ok || cfg.Agents[i].Mass != cfg.Agent.Mass {
		t.Errorf("agent spawn not indexed or mass not defaulted: %+v", cfg.Agents)
	}
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
agent:
  slowing_radius: 12
physics:
  fixed_dt: 0.01
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Agent.SlowingRadius != 12 {
		t.Errorf("slowing_radius = %v, want 12", cfg.Agent.SlowingRadius)
	}
	if cfg.Agent.StopThreshold != 2 {
		t.Errorf("stop_threshold = %v, want default 2", cfg.Agent.StopThreshold)
	}
	if cfg.Derived.FixedHz != 100 {
		t.Errorf("FixedHz = %v, want 100", cfg.Derived.FixedHz)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"zero dt", "physics:\n  fixed_dt: 0\n", "fixed_dt"},
		{"massless target", "targets:\n  - name: ghost\n    mass: 0\n", "ghost"},
		{"massless anchor", "triggers:\n  - name: gate\n    agent: perrito\n    radius: 3\n", "anchor_kg"},
		{"negative agent mass", "agent:\n  mass: -1\n", "agent.mass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestMisconfiguredRadiiAccepted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	data := "agent:\n  slowing_radius: 1\n  stop_threshold: 3\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("slowing < stop should load, got %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.Agent != cfg.Agent {
		t.Errorf("agent section changed: %+v vs %+v", back.Agent, cfg.Agent)
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
