package simconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConf(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoad_缺省字段保留默认值(t *testing.T) {
	path := writeConf(t, `
sim:
  capture_ratio: 1.5
  rules:
    - name: capitulation
      when: "DefenderEffectiveness < 20"
storage:
  driver: mongodb
  mongodb:
    uri: mongodb://localhost:27017
    conn_timeout: 3s
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sim.CaptureRatio != 1.5 {
		t.Fatalf("capture_ratio = %v", cfg.Sim.CaptureRatio)
	}
	if cfg.Sim.DamageScale != Default().Sim.DamageScale {
		t.Fatalf("damage_scale = %v, want default", cfg.Sim.DamageScale)
	}
	if len(cfg.Sim.Rules) != 1 || cfg.Sim.Rules[0].Name != "capitulation" {
		t.Fatalf("rules = %+v", cfg.Sim.Rules)
	}
	if cfg.Storage.Driver != DriverMongoDB || cfg.Storage.MongoDB.ConnTimeout.Seconds() != 3 {
		t.Fatalf("storage = %+v", cfg.Storage)
	}
	if cfg.HTTPServer.Port != 8090 {
		t.Fatalf("httpserver.port = %d", cfg.HTTPServer.Port)
	}
}

func TestLoad_非法参数回退(t *testing.T) {
	path := writeConf(t, `
sim:
  damage_scale: -1
  capture_ratio: 0.5
  militia_defense: -3
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := Default().Sim
	if cfg.Sim.DamageScale != d.DamageScale || cfg.Sim.CaptureRatio != d.CaptureRatio {
		t.Fatalf("sim = %+v", cfg.Sim)
	}
	if cfg.Sim.MilitiaDefense != 0 {
		t.Fatalf("militia_defense = %v, want 0", cfg.Sim.MilitiaDefense)
	}
}

func TestLoad_文件不存在(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("expected error")
	}
}
