package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand LogType = "CMD"
	TypeDB      LogType = "DB"
	TypeLevel   LogType = "LVL"
	TypeVoice   LogType = "VOICE"
	TypeSystem  LogType = "SYS"
	TypeHTTP    LogType = "HTTP"
	TypeError   LogType = "ERR"
)

var typeColors = map[LogType]string{
	TypeCommand: colorCyan,
	TypeDB:      colorBlue,
	TypeLevel:   colorGreen,
	TypeVoice:   colorPurple,
	TypeSystem:  colorWhite,
	TypeHTTP:    colorYellow,
	TypeError:   colorRed,
}

// CustomHandler prints one colored line per record:
//
//	[App] [15:04:05] [INFO] [LVL] message [cmd by user] [Status: x] key=value
type CustomHandler struct {
	app    string
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

type Option func(*CustomHandler)

func WithOutput(w io.Writer) Option {
	return func(h *CustomHandler) {
		h.out = w
	}
}

func NewHandler(app string, level slog.Leveler, opts ...Option) *CustomHandler {
	h := &CustomHandler{
		app:   app,
		level: level,
		out:   os.Stdout,
		mu:    &sync.Mutex{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &c
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.groups = append(append([]string{}, h.groups...), name)
	return &c
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(r.Message) {
		return nil
	}

	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelText = colorGreen, "INFO"
	default:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	f := collectFields(h.attrs, r)

	message := r.Message
	if r.Level >= slog.LevelError {
		location := f.location
		if location == "" {
			location = sourceLocation(r.PC)
		}
		if location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
		if f.err != "" {
			message = fmt.Sprintf("%s: %s", message, f.err)
		}
	}
	if f.name != "" && f.userName != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, f.name, f.userName)
	}
	if f.status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, f.status)
	}

	var sb strings.Builder
	prefix := strings.Join(h.groups, ".")
	for _, a := range f.rest {
		key := a.Key
		if prefix != "" {
			key = prefix + "." + key
		}
		fmt.Fprintf(&sb, " %s=%v", key, a.Value)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "%s[%s] [%s] [%s%s%s] [%s%s%s] %s%s%s\n",
		colorWhite,
		h.app,
		r.Time.Format("15:04:05"),
		levelColor, levelText, colorWhite,
		typeColors[f.logType], f.logType, colorWhite,
		message,
		sb.String(),
		colorReset,
	)
	return err
}

type fields struct {
	logType  LogType
	name     string
	userName string
	status   string
	err      string
	location string
	rest     []slog.Attr
}

func collectFields(handlerAttrs []slog.Attr, r slog.Record) fields {
	f := fields{logType: TypeSystem}
	visit := func(a slog.Attr) bool {
		switch a.Key {
		case "type":
			f.logType = parseType(a.Value.String())
		case "name":
			f.name = a.Value.String()
		case "user_name":
			f.userName = a.Value.String()
		case "status":
			f.status = a.Value.String()
		case "error":
			f.err = fmt.Sprintf("%v", a.Value)
		case "error_location":
			f.location = a.Value.String()
		default:
			f.rest = append(f.rest, a)
		}
		return true
	}
	for _, a := range handlerAttrs {
		visit(a)
	}
	r.Attrs(visit)
	return f
}

func parseType(s string) LogType {
	switch s {
	case "cmd":
		return TypeCommand
	case "db":
		return TypeDB
	case "lvl":
		return TypeLevel
	case "voice":
		return TypeVoice
	case "http", "audit":
		return TypeHTTP
	case "error":
		return TypeError
	default:
		return TypeSystem
	}
}

// Gateway and rest bucket chatter from disgo.
var skippedMessages = []string{
	"locking buckets",
	"unlocking buckets",
	"gateway event",
	"cleaning up bucket",
	"cleaned up rate limit buckets",
	"binary message received",
	"received gateway message",
	"opening gateway connection",
	"locking gateway rate limiter",
	"unlocking gateway rate limiter",
	"sending gateway command",
	"new request",
	"new response",
	"locking rest bucket",
	"unlocking rest bucket",
	"rate limit response headers",
	"sending heartbeat",
}

func shouldSkipLog(message string) bool {
	lower := strings.ToLower(message)
	for _, skip := range skippedMessages {
		if strings.Contains(lower, skip) {
			return true
		}
	}
	return false
}

func sourceLocation(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}
