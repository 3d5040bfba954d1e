package logger

import (
	"context"
	"errors"
	"testing"

	ctxutil "github.com/Payphone-Digital/dashboard/pkg/context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfoWithContext_ExtractsContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	ctx := ctxutil.WithRequestID(context.Background(), "req-1")
	ctx = ctxutil.WithUserID(ctx, uint(7))
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "user_service")
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "List")

	InfoWithContext(ctx, "Listing users").String("query", "q=alice").Err(errors.New("boom")).Log()

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	for key, want := range map[string]interface{}{
		"request_id": "req-1",
		"user_id":    uint64(7),
		"module":     "user_service",
		"function":   "List",
		"query":      "q=alice",
		"error":      "boom",
	} {
		if fields[key] != want {
			t.Errorf("Expected %s=%v, got %v", key, want, fields[key])
		}
	}
}

func TestDebugWithContext_RespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	DebugWithContext(context.Background(), "hidden").String("k", "v").Log()
	WarnWithContext(context.Background(), "shown").Log()

	if logs.Len() != 1 || logs.All()[0].Message != "shown" {
		t.Errorf("Expected only the warn entry, got %v", logs.All())
	}
}
