package logger

import (
	"bytes"
	"context"
	"testing"

	kit "pontual/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "pontual-ingest")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	o := FromEnv()
	if o.Level != "warn" || o.Console || o.Service != "pontual-ingest" {
		t.Fatalf("FromEnv = %+v", o)
	}
	if !o.Caller || o.SampleEvery != 5 {
		t.Fatalf("caller/sample not read: %+v", o)
	}

	t.Setenv("LOG_FORMAT", "")
	if !FromEnv().Console {
		t.Fatalf("console is the default format")
	}
}

func TestBuild_LevelFallsBackToDebug(t *testing.T) {
	for in, want := range map[string]zerolog.Level{
		"INFO":     zerolog.InfoLevel,
		"error":    zerolog.ErrorLevel,
		"":         zerolog.DebugLevel,
		"nonsense": zerolog.DebugLevel,
	} {
		l := Build(Options{Level: in, Writer: &bytes.Buffer{}})
		if l.GetLevel() != want {
			t.Fatalf("Build(%q) level = %v, want %v", in, l.GetLevel(), want)
		}
	}
}

func TestBuild_JSONCarriesServiceAndComponent(t *testing.T) {
	var buf bytes.Buffer
	l := Build(Options{Level: "info", Service: "pontual-api", Component: "audit", Writer: &buf})
	l.Info().Msg("report built")
	l.Debug().Msg("hidden")

	out := buf.String()
	kit.MustContain(t, out, `"service":"pontual-api"`)
	kit.MustContain(t, out, `"component":"audit"`)
	kit.MustContain(t, out, `"message":"report built"`)
	if bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Fatalf("debug line leaked at info level: %s", out)
	}
}

func TestContextFields_Accumulate(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-123", "b-abc")
	ctx = WithDocument(ctx, "ponto-07.xlsx")
	// a later request id keeps the batch and document already recorded
	ctx = WithRequest(ctx, "req-456", "")

	f := fieldsOf(ctx)
	if f.requestID != "req-456" || f.batchID != "b-abc" || f.sourceFile != "ponto-07.xlsx" {
		t.Fatalf("fields = %+v", f)
	}
}

func TestContextFields_EmptyValuesDoNotWrap(t *testing.T) {
	bg := context.Background()
	if WithDocument(WithRequest(bg, "", ""), "") != bg {
		t.Fatalf("empty values should not wrap ctx")
	}
	if C(bg) == nil || Named("records") == nil {
		t.Fatalf("loggers should never be nil")
	}
}
