package config

import (
	"os"
	"path/filepath"

	"ArmsDealer/modules/kit/errx"
)

const defaultConfigRelPath = "configs/conf.yml"

// Load 读取配置到 out。
//
// 约定：
//  1. 传入 cfgName（相对/绝对路径）则优先使用；
//  2. 否则从当前目录开始向上查找 `configs/conf.yml`。
func Load(cfgName string, out any) error {
	path, err := Resolve(cfgName)
	if err != nil {
		return err
	}
	return load(path, out)
}

// Resolve 按 Load 的约定把 cfgName 解析成绝对路径。
func Resolve(cfgName string) (string, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return "", errx.ErrInvalidConfig.WithCause(err)
	}
	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			return cfgName, nil
		}
		return filepath.Join(curDir, cfgName), nil
	}
	return findConfigUpward(curDir)
}

func findConfigUpward(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errx.ErrInvalidConfig.WithData("searched_from", startDir).WithData("want", defaultConfigRelPath)
		}
		dir = parent
	}
}
