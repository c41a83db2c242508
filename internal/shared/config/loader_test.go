package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ArmsDealer/modules/kit/errx"
)

type sample struct {
	Name  string        `mapstructure:"name"`
	Every time.Duration `mapstructure:"every"`
	Tags  []string      `mapstructure:"tags"`
	Level int           `mapstructure:"level"`
}

func TestLoad_读取yaml并应用解码钩子(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.yml")
	body := "name: warsim\nevery: 3s\ntags: a,b\nlevel: 2\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	var out sample
	if err := Load(path, &out); err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if out.Name != "warsim" || out.Every != 3*time.Second || out.Level != 2 {
		t.Fatalf("解码结果不符: %+v", out)
	}
	if len(out.Tags) != 2 || out.Tags[1] != "b" {
		t.Fatalf("tags=%v", out.Tags)
	}
}

func TestLoad_文件不存在返回配置错误(t *testing.T) {
	var out sample
	err := Load(filepath.Join(t.TempDir(), "missing.yml"), &out)
	if !errors.Is(err, errx.ErrInvalidConfig) {
		t.Fatalf("期望 ErrInvalidConfig, got=%v", err)
	}
}

func TestLoadBytes_json(t *testing.T) {
	var out sample
	if err := LoadBytes([]byte(`{"name":"atlas","level":5}`), "json", &out); err != nil {
		t.Fatalf("err=%v", err)
	}
	if out.Name != "atlas" || out.Level != 5 {
		t.Fatalf("out=%+v", out)
	}
}

func TestResolve_向上查找默认配置(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, defaultConfigRelPath)
	if err := os.WriteFile(want, []byte("name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(deep)

	got, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve err=%v", err)
	}
	// macOS 上 TempDir 可能带 /private 前缀，这里只比较文件是否相同
	gi, _ := os.Stat(got)
	wi, _ := os.Stat(want)
	if !os.SameFile(gi, wi) {
		t.Fatalf("got=%s want=%s", got, want)
	}
}
