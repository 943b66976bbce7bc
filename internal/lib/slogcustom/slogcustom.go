package slogcustom

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
)

// CustomHandler prints one colored line per record:
// time LEVEL: message key=value ...
type CustomHandler struct {
	l      *log.Logger
	level  slog.Level
	attrs  []slog.Attr
	prefix string
}

func NewCustomHandler(out io.Writer, level slog.Level) *CustomHandler {
	return &CustomHandler{
		l:     log.New(out, "", 0),
		level: level,
	}
}

func (c *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"

	switch r.Level {
	case slog.LevelDebug:
		level = color.MagentaString(level)
	case slog.LevelInfo:
		level = color.HiBlueString(level)
	case slog.LevelWarn:
		level = color.YellowString(level)
	case slog.LevelError:
		level = color.RedString(level)
	}

	var sb strings.Builder
	write := func(key string, v slog.Value) {
		sb.WriteString(color.GreenString(key))
		sb.WriteString("=")
		sb.WriteString(fmt.Sprint(v.Resolve().Any()))
		sb.WriteString(" ")
	}
	// attrs from WithAttrs already carry their group prefix
	for _, a := range c.attrs {
		write(a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(c.prefix+a.Key, a.Value)
		return true
	})

	c.l.Println(
		r.Time.Format("15:04:05.000"),
		level,
		r.Message,
		strings.TrimSpace(sb.String()),
	)
	return nil
}

func (c *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *c
	cp.attrs = make([]slog.Attr, 0, len(c.attrs)+len(attrs))
	cp.attrs = append(cp.attrs, c.attrs...)
	for _, a := range attrs {
		a.Key = c.prefix + a.Key
		cp.attrs = append(cp.attrs, a)
	}
	return &cp
}

func (c *CustomHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return c
	}
	cp := *c
	cp.prefix = c.prefix + name + "."
	return &cp
}

func (c *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level
}

// ParseLevel maps debug|info|warn|error to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// New builds the process logger: "json" for machine-readable output, anything
// else for the colored terminal format.
func New(format, level string) *slog.Logger {
	lvl := ParseLevel(level)
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	}
	return slog.New(NewCustomHandler(os.Stdout, lvl))
}
