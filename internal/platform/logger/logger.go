// Package logger owns the process-wide zerolog logger and the context fields
// (request, batch, source document) that follow an ingestion through it
package logger

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the logging type used across the module
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level       string // zerolog level name; unknown names mean debug
	Console     bool   // human readable output instead of JSON lines
	Service     string
	Component   string
	Caller      bool
	SampleEvery int
	Writer      io.Writer // defaults to stdout
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT, LOG_CALLER and
// LOG_SAMPLE_EVERY. It reads the environment directly because config logs through us
func FromEnv() Options {
	env := func(k string) string { return strings.TrimSpace(os.Getenv("LOG_" + k)) }
	o := Options{
		Level:     env("LEVEL"),
		Console:   !strings.EqualFold(env("FORMAT"), "json"),
		Service:   env("SERVICE"),
		Component: env("COMPONENT"),
	}
	o.Caller, _ = strconv.ParseBool(env("CALLER"))
	o.SampleEvery, _ = strconv.Atoi(env("SAMPLE_EVERY"))
	return o
}

// Build returns a logger for o without touching the process root
func Build(o Options) Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(o.Level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.DebugLevel
	}
	w := o.Writer
	if w == nil {
		w = os.Stdout
	}
	if o.Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	zc := zerolog.New(w).Level(lvl).With().Timestamp()
	if o.Service != "" {
		zc = zc.Str("service", o.Service)
	}
	if o.Component != "" {
		zc = zc.Str("component", o.Component)
	}
	if o.Caller {
		zc = zc.Caller()
	}
	l := zc.Logger()
	if o.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(o.SampleEvery)})
	}
	return l
}

var (
	rootOnce sync.Once
	root     Logger
)

// Init sets the root logger. Only the first call (or first Get) wins
func Init(o Options) {
	rootOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		root = Build(o)
	})
}

// Get returns the root logger, initialising it from the environment on first use
func Get() *Logger {
	Init(FromEnv())
	return &root
}

// Named returns a child of the root tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

type fieldsKey struct{}

// fields rides on the context; each With* copies it so parents stay untouched
type fields struct {
	requestID, batchID, sourceFile string
}

func fieldsOf(ctx context.Context) fields {
	f, _ := ctx.Value(fieldsKey{}).(fields)
	return f
}

// WithRequest records the request id and, for ingestion, the batch id
func WithRequest(ctx context.Context, reqID, batchID string) context.Context {
	if reqID == "" && batchID == "" {
		return ctx
	}
	f := fieldsOf(ctx)
	if reqID != "" {
		f.requestID = reqID
	}
	if batchID != "" {
		f.batchID = batchID
	}
	return context.WithValue(ctx, fieldsKey{}, f)
}

// WithDocument records the source document being processed
func WithDocument(ctx context.Context, sourceFile string) context.Context {
	if sourceFile == "" {
		return ctx
	}
	f := fieldsOf(ctx)
	f.sourceFile = sourceFile
	return context.WithValue(ctx, fieldsKey{}, f)
}

// C returns the root logger with whatever fields ctx carries
func C(ctx context.Context) *Logger {
	f := fieldsOf(ctx)
	zc := Get().With()
	for _, kv := range [][2]string{
		{"request_id", f.requestID},
		{"batch_id", f.batchID},
		{"source_file", f.sourceFile},
	} {
		if kv[1] != "" {
			zc = zc.Str(kv[0], kv[1])
		}
	}
	l := zc.Logger()
	return &l
}
