package config

import (
	"bytes"
	"os"
	"sync"

	"ArmsDealer/modules/kit/errx"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// decodeHook 统一的字符串转换：time.Duration、逗号切片、实现了 encoding.TextUnmarshaler 的枚举（如 geo.Direction）。
func decodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	))
}

func load(configPath string, out any) error {
	if !fileExist(configPath) {
		return errx.ErrInvalidConfig.WithData("path", configPath)
	}
	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return errx.ErrInvalidConfig.WithData("path", configPath).WithCause(err)
	}
	if err := v.Unmarshal(out, decodeHook()); err != nil {
		return errx.ErrInvalidConfig.WithData("path", configPath).WithCause(err)
	}
	return nil
}

// LoadBytes 从内存读取配置，configType 取 viper 支持的扩展名（json/yaml/...）。
func LoadBytes(data []byte, configType string, out any) error {
	v := viper.New()
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return errx.ErrInvalidConfig.WithData("type", configType).WithCause(err)
	}
	if err := v.Unmarshal(out, decodeHook()); err != nil {
		return errx.ErrInvalidConfig.WithData("type", configType).WithCause(err)
	}
	return nil
}

// Watcher 监听配置文件变更，变更后把子树 key 重新解码并回调。
type Watcher struct {
	mu sync.Mutex
	v  *viper.Viper
}

// Watch 对 configPath 建立监听。key 为空时解码整个文件。
// onChange 在 fsnotify 的 goroutine 里执行，调用方自己保证并发安全。
func Watch(configPath, key string, newOut func() any, onChange func(out any, err error)) (*Watcher, error) {
	if !fileExist(configPath) {
		return nil, errx.ErrInvalidConfig.WithData("path", configPath)
	}
	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, errx.ErrInvalidConfig.WithData("path", configPath).WithCause(err)
	}
	w := &Watcher{v: v}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		out := newOut()
		w.mu.Lock()
		var err error
		if key == "" {
			err = v.Unmarshal(out, decodeHook())
		} else {
			err = v.UnmarshalKey(key, out, decodeHook())
		}
		w.mu.Unlock()
		if err != nil {
			onChange(nil, errx.ErrInvalidConfig.WithData("path", configPath).WithCause(err))
			return
		}
		onChange(out, nil)
	})
	v.WatchConfig()
	return w, nil
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
