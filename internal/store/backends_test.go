package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRedisKV(t *testing.T) {
	addr := os.Getenv("PREPIZ_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PREPIZ_TEST_REDIS_ADDR not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	kv, err := OpenRedis(ctx, addr, fmt.Sprintf("prepiz-test-%s:", uuid.NewString()))
	require.NoError(t, err)
	defer kv.Close()
	kvContract(t, kv)
}

func TestMongoKV(t *testing.T) {
	uri := os.Getenv("PREPIZ_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PREPIZ_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	kv, err := OpenMongo(ctx, uri, "prepiz_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	defer func() {
		_ = kv.collection.Database().Drop(context.Background())
		kv.Close()
	}()
	kvContract(t, kv)
}

func TestOpenRedis_EmptyAddr(t *testing.T) {
	if _, err := OpenRedis(context.Background(), "  ", "p:"); err == nil {
		t.Error("expected error for empty address")
	}
}

func TestEscapeGlob(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"progress:a:backup:", "progress:a:backup:"},
		{"progress:*:backup:", `progress:\*:backup:`},
		{"p?[x]", `p\?\[x\]`},
		{`a\b`, `a\\b`},
	}
	for _, tt := range tests {
		if got := escapeGlob(tt.in); got != tt.want {
			t.Errorf("escapeGlob(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
