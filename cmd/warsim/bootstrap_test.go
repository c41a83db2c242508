package main

import (
	"context"
	"errors"
	"testing"
)

type fakeMigrator struct{ err error }

func (m fakeMigrator) Migrate(context.Context) error { return m.err }

func TestMigrateOrClose_建表失败断开连接(t *testing.T) {
	closed := 0
	closer := func() { closed++ }

	boom := errors.New("access denied")
	if err := migrateOrClose(context.Background(), fakeMigrator{err: boom}, closer); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if closed != 1 {
		t.Fatalf("closed = %d, want 1", closed)
	}

	if err := migrateOrClose(context.Background(), fakeMigrator{}, closer); err != nil {
		t.Fatalf("err = %v", err)
	}
	if closed != 1 {
		t.Fatalf("connection closed after successful migrate")
	}
}

func TestOpenRepository_未知驱动(t *testing.T) {
	a := &app{}
	a.cfg.Storage.Driver = "sqlite"
	if _, _, err := a.openRepository(context.Background()); err == nil {
		t.Fatalf("want error for unknown driver")
	}
}
