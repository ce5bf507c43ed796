package logger

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/videolibre/vault-ms-go/internal/api_context"
)

var std *slog.Logger

// --- handler that appends the requester id as an attribute ---

type requesterAttrHandler struct{ h slog.Handler }

func (u requesterAttrHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return u.h.Enabled(ctx, lvl)
}

func (u requesterAttrHandler) Handle(ctx context.Context, r slog.Record) error {
	if uid, ok := api_context.RequesterIDFromContext(ctx); ok {
		r.AddAttrs(slog.String("requester", uid.String()))
	} else {
		r.AddAttrs(slog.String("requester", "system"))
	}
	return u.h.Handle(ctx, r)
}

func (u requesterAttrHandler) WithAttrs(a []slog.Attr) slog.Handler {
	return requesterAttrHandler{h: u.h.WithAttrs(a)}
}
func (u requesterAttrHandler) WithGroup(n string) slog.Handler {
	return requesterAttrHandler{h: u.h.WithGroup(n)}
}

// --- public API ---

// Init
// ENV:
//
//	LOG_FORMAT    json|text (default: json)
//	LOG_LEVEL     debug|info|warn|error (default: info)
//	LOG_SOURCE    true|false (default: false)
func Init() {
	level := parseLevel(getEnv("LOG_LEVEL", "info"))
	addSource := parseBool(getEnv("LOG_SOURCE", "false"))
	format := strings.ToLower(getEnv("LOG_FORMAT", "json"))

	opts := &slog.HandlerOptions{Level: level, AddSource: addSource}

	var base slog.Handler
	if format == "text" {
		base = slog.NewTextHandler(os.Stdout, opts)
	} else {
		base = slog.NewJSONHandler(os.Stdout, opts)
	}

	// Chain: add svc first (so it prints before requester in TextHandler), then wrap.
	logger := slog.New(requesterAttrHandler{h: base}).With("svc", "vault-ms")

	std = logger
	slog.SetDefault(std)

	// Keep legacy log.Printf visible (no ctx → no requester).
	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(base, slog.LevelInfo).Writer())
}

// --- small helpers ---

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) slog.Leveler {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func activeLogger() *slog.Logger {
	if std != nil {
		return std
	}
	return slog.Default()
}

// --- convenience wrappers ---

func Info(ctx context.Context, msg string, attrs ...any) {
	activeLogger().InfoContext(ctx, msg, attrs...)
}
func Warn(ctx context.Context, msg string, attrs ...any) {
	activeLogger().WarnContext(ctx, msg, attrs...)
}
func Error(ctx context.Context, msg string, attrs ...any) {
	activeLogger().ErrorContext(ctx, msg, attrs...)
}
func Debug(ctx context.Context, msg string, attrs ...any) {
	activeLogger().DebugContext(ctx, msg, attrs...)
}

func Infof(ctx context.Context, format string, args ...any) {
	activeLogger().InfoContext(ctx, fmt.Sprintf(format, args...))
}
func Warnf(ctx context.Context, format string, args ...any) {
	activeLogger().WarnContext(ctx, fmt.Sprintf(format, args...))
}
func Errorf(ctx context.Context, format string, args ...any) {
	activeLogger().ErrorContext(ctx, fmt.Sprintf(format, args...))
}
func Debugf(ctx context.Context, format string, args ...any) {
	activeLogger().DebugContext(ctx, fmt.Sprintf(format, args...))
}
