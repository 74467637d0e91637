package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVs_HashesUserID(t *testing.T) {
	got := sanitizeKVs([]any{"user_id", "alice", "topic", "kinematics"})
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	hashed, ok := got[1].(string)
	if !ok || !strings.HasPrefix(hashed, "hash:") {
		t.Errorf("user_id value = %v, want hash: prefix", got[1])
	}
	if hashed == "hash:alice" {
		t.Error("user_id was not hashed")
	}
	if got[3] != "kinematics" {
		t.Errorf("topic = %v, want kinematics", got[3])
	}
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	got := sanitizeKVs([]any{"key", 1, "dangling"})
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[2] != "dangling" {
		t.Errorf("last = %v, want dangling", got[2])
	}
}

func TestHashValue_Stable(t *testing.T) {
	if hashValue("u1") != hashValue("u1") {
		t.Error("hash not stable")
	}
	if hashValue("") != "" {
		t.Error("empty value should hash to empty")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("hello", "k", "v")
	l.With("user_id", "x").Warn("warn")
}
