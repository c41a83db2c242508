package simconfig

import (
	"ArmsDealer/internal/shared/config"
)

// Default 未配置时使用的结算参数。
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Sim: SimConfig{
			DamageScale:     0.1,
			CaptureRatio:    1.2,
			MilitiaDefense:  10,
			DefeatSeverity:  10,
			VictoryMomentum: 10,
		},
		Storage:    StorageConfig{Driver: DriverMemory},
		HTTPServer: HTTPServerConfig{Host: "127.0.0.1", Port: 8090},
		Logic:      LogicConfig{ServerID: 1},
	}
}

// Load path 为空时向上查找 configs/conf.yml。文件里缺省的字段保留 Default 的值。
func Load(path string) (Config, error) {
	cfg := Default()
	if err := config.Load(path, &cfg); err != nil {
		return Config{}, err
	}
	cfg.Sim.normalize()
	return cfg, nil
}

// WatchSim 监听 sim 子树，回调拿到的是补齐默认值的新配置。
func WatchSim(path string, onChange func(SimConfig, error)) (*config.Watcher, error) {
	resolved, err := config.Resolve(path)
	if err != nil {
		return nil, err
	}
	return config.Watch(resolved, "sim", func() any {
		s := Default().Sim
		return &s
	}, func(out any, err error) {
		if err != nil {
			onChange(SimConfig{}, err)
			return
		}
		s := out.(*SimConfig)
		s.normalize()
		onChange(*s, nil)
	})
}

// normalize 非正数回退默认值。
func (s *SimConfig) normalize() {
	d := Default().Sim
	if s.DamageScale <= 0 {
		s.DamageScale = d.DamageScale
	}
	if s.CaptureRatio < 1 {
		s.CaptureRatio = d.CaptureRatio
	}
	if s.MilitiaDefense < 0 {
		s.MilitiaDefense = 0
	}
	if s.DefeatSeverity <= 0 {
		s.DefeatSeverity = d.DefeatSeverity
	}
	if s.VictoryMomentum <= 0 {
		s.VictoryMomentum = d.VictoryMomentum
	}
}
