package state

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"boxy/config"
	"boxy/css"
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
	if !bytes.Equal(env.DefaultStyle, css.DefaultStylesheet) {
		t.Error("Default stylesheet not set")
	}
	if env.Overwrite {
		t.Error("Overwrite must be off by default")
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	uptime := env.Uptime()

	if uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
	if uptime > 10*time.Second {
		t.Errorf("Uptime() = %v, unexpectedly large", uptime)
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
			log.Print("standard log line goes to zap")
			env.RestoreStdLog()
			if env.restoreStdLog != nil {
				t.Errorf("Iteration %d: restoreStdLog not cleared", i)
			}
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

func TestLocalEnv_Fields(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)

	env.Cfg = &config.Config{Version: 1}
	env.Rpt = &config.Report{}
	env.Log = zaptest.NewLogger(t)
	env.Overwrite = true

	again := EnvFromContext(ctx)
	if again.Cfg.Version != 1 || again.Rpt == nil || again.Log == nil || !again.Overwrite {
		t.Error("Environment changes are not visible through context")
	}
}
