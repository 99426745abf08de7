package state

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"docxgen/config"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Log == nil {
		t.Error("Default logger not set")
	}
	// no-op logger must be usable before configuration is loaded
	env.Log.Info("early message")
}

func TestEnvFromContextPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := &LocalEnv{start: time.Now().Add(-time.Second)}
	if uptime := env.Uptime(); uptime < time.Second {
		t.Errorf("Uptime() = %v, expected at least 1s", uptime)
	}
}

func TestLocalEnv_RedirectStdLog(t *testing.T) {
	t.Run("with logger", func(t *testing.T) {
		env := &LocalEnv{
			Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
		}
		for i := range 3 {
			env.RedirectStdLog()
			if env.restoreStdLog == nil {
				t.Errorf("Iteration %d: restoreStdLog not set", i)
			}
			env.RestoreStdLog()
		}
	})

	t.Run("without logger", func(t *testing.T) {
		env := &LocalEnv{}
		env.RedirectStdLog()
		if env.restoreStdLog != nil {
			t.Error("Expected restoreStdLog to remain nil")
		}
		env.RestoreStdLog()
	})
}

func TestLocalEnv_Integration(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)

	env.Cfg = &config.Config{Version: 1}
	env.Log = zaptest.NewLogger(t)
	env.Rpt = &config.Report{}
	env.Overwrite = true

	env.RedirectStdLog()
	defer env.RestoreStdLog()

	again := EnvFromContext(ctx)
	if again != env || !again.Overwrite || again.Cfg.Version != 1 {
		t.Error("Environment is not shared through context")
	}
}

func TestLocalEnv_Named(t *testing.T) {
	if (&LocalEnv{}).Named("build") == nil {
		t.Error("Named() without logger returned nil")
	}
	env := &LocalEnv{Log: zaptest.NewLogger(t)}
	env.Named("build").Debug("component message")
}
