package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PREPIZ_BACKEND", "PREPIZ_DB", "PREPIZ_USER", "PREPIZ_DAILY_GOAL"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want sqlite", cfg.Backend)
	}
	if cfg.UserKey != "default" {
		t.Errorf("UserKey = %q, want default", cfg.UserKey)
	}
	if cfg.DailyGoal != DefaultDailyGoal {
		t.Errorf("DailyGoal = %d, want %d", cfg.DailyGoal, DefaultDailyGoal)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PREPIZ_BACKEND", "Redis")
	t.Setenv("PREPIZ_USER", "learner-7")
	t.Setenv("PREPIZ_DAILY_GOAL", "35")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != BackendRedis {
		t.Errorf("Backend = %q, want redis", cfg.Backend)
	}
	if cfg.UserKey != "learner-7" {
		t.Errorf("UserKey = %q, want learner-7", cfg.UserKey)
	}
	if cfg.DailyGoal != 35 {
		t.Errorf("DailyGoal = %d, want 35", cfg.DailyGoal)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown backend", "PREPIZ_BACKEND", "etcd"},
		{"bad goal", "PREPIZ_DAILY_GOAL", "many"},
		{"zero goal", "PREPIZ_DAILY_GOAL", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PREPIZ_BACKEND", "")
			t.Setenv("PREPIZ_DAILY_GOAL", "")
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Load with %s=%q: expected error", tt.key, tt.val)
			}
		})
	}
}
