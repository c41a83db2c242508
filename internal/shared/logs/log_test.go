package logs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	glogger "gorm.io/gorm/logger"

	"ArmsDealer/internal/shared/simconfig"
	"ArmsDealer/modules/kit/logx"
	"ArmsDealer/modules/kit/tracex"
)

func TestLogger_未初始化时为Nop(t *testing.T) {
	if Logger() == nil {
		t.Fatalf("Logger() should never be nil")
	}
	Info("no panic before Init")
}

func TestInit_输出到文件(t *testing.T) {
	file := filepath.Join(t.TempDir(), "warsim.log")
	l, err := Init("warsim-test", simconfig.LogConfig{FileDir: file, Level: "DEBUG"})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Logger() != l {
		t.Fatalf("Init should replace process logger")
	}
	if !l.Core().Enabled(-1) {
		t.Fatalf("debug level should be enabled")
	}
}

func TestGormLogger_LogMode不修改原实例(t *testing.T) {
	base := NewGormLogger(glogger.Warn, 100*time.Millisecond).(*GormLogger)
	changed := base.LogMode(glogger.Info).(*GormLogger)
	if base.level != glogger.Warn || changed.level != glogger.Info {
		t.Fatalf("levels = %v/%v", base.level, changed.level)
	}
	ctx := tracex.WithTurn(tracex.WithTraceID(context.Background(), "t1"), 3)
	if got := len(logx.ContextFields(ctx)); got != 2 {
		t.Fatalf("ctx fields = %d, want 2", got)
	}
	// 只要不 panic
	changed.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))
}
