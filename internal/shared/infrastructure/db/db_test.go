package db

import (
	"testing"

	"ArmsDealer/internal/shared/simconfig"
)

func TestDSN_默认字符集(t *testing.T) {
	got := DSN(simconfig.MySQLConfig{User: "root", Password: "pw", Host: "127.0.0.1", Port: 3306, DBName: "war"})
	want := "root:pw@tcp(127.0.0.1:3306)/war?charset=utf8mb4&parseTime=True&loc=Local"
	if got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}
