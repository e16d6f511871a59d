package logger

import (
	"io"
	"os"

	"github.com/MrSnakeDoc/listsite/internal/printer"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level string    // "debug","info","warn","error"
	JSON  bool      // JSON output (scheduled runs)
	Color bool      // colorize (console)
	Out   io.Writer // default os.Stdout
}

// Logger is created once per process and handed to every component that logs.
type Logger struct {
	zlog  *zap.SugaredLogger
	out   io.Writer
	p     *printer.ColorPrinter
	level zapcore.Level
	emoji bool
}

// New builds a Logger from opts.
func New(opts Options) *Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.LevelKey = ""
	encCfg.CallerKey = ""
	encCfg.MessageKey = "msg"

	var enc zapcore.Encoder
	if opts.JSON {
		encCfg.LevelKey = "level"
		encCfg.TimeKey = "ts"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "msg"})
	}

	level := parseLevel(opts.Level)
	core := zapcore.NewCore(enc, zapcore.AddSync(writerAdapter{out}), level)

	p := printer.NewPlainPrinter()
	if opts.Color && !opts.JSON {
		p = printer.NewColorPrinter()
	}

	return &Logger{
		zlog:  zap.New(core).Sugar(),
		out:   out,
		p:     p,
		level: level,
		emoji: !opts.JSON,
	}
}

// Nop discards everything. Tests use it.
func Nop() *Logger {
	return New(Options{Level: "error", Out: io.Discard})
}

// With returns a child logger that adds key/value fields to every entry.
func (l *Logger) With(args ...interface{}) *Logger {
	child := *l
	child.zlog = l.zlog.With(args...)
	return &child
}

// Sync flushes buffered entries.
func (l *Logger) Sync() {
	_ = l.zlog.Sync()
}

// Out returns the output writer (for tables).
func (l *Logger) Out() io.Writer {
	return l.out
}

// DebugEnabled reports whether debug entries are written.
func (l *Logger) DebugEnabled() bool {
	return l.level <= zapcore.DebugLevel
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.zlog.Info(l.p.Info(l.prefix("✨ ")+msg, args...))
}

func (l *Logger) Success(msg string, args ...interface{}) {
	l.zlog.Info(l.p.Success(l.prefix("✅ ")+msg, args...))
}

func (l *Logger) LogError(msg string, args ...interface{}) {
	l.zlog.Error(l.p.Error(l.prefix("❌ ")+msg, args...))
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.zlog.Warn(l.p.Warning(l.prefix("⚠️ ")+msg, args...))
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	if !l.DebugEnabled() {
		return
	}
	l.zlog.Debug(l.p.Debug(l.prefix("🛠️ ")+msg, args...))
}

// ---- Tables ----

func (l *Logger) CreateTable(headers []string) *tablewriter.Table {
	t := tablewriter.NewTable(l.out)
	t.Header(headers)
	return t
}

// ---- internals ----

type writerAdapter struct{ w io.Writer }

func (wa writerAdapter) Write(p []byte) (int, error) { return wa.w.Write(p) }

func (l *Logger) prefix(emoji string) string {
	if l.emoji {
		return emoji
	}
	return ""
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
