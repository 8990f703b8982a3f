package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
)

// consoleHandler writes one line per record:
//
//	15:04:05 INFO  message key=value key="quoted value"
type consoleHandler struct {
	mu     *sync.Mutex
	writer io.Writer
	level  slog.Leveler
	color  bool
	attrs  []slog.Attr
	groups []string
}

func newConsoleHandler(w io.Writer, level slog.Leveler, color bool) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, writer: w, level: level, color: color}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var buf bytes.Buffer
	buf.WriteString(ts.Format(time.TimeOnly))
	buf.WriteByte(' ')
	buf.WriteString(h.badge(record.Level))
	buf.WriteByte(' ')
	buf.WriteString(record.Message)

	for _, attr := range h.attrs {
		h.writeAttr(&buf, nil, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		h.writeAttr(&buf, h.groups, attr)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		if len(h.groups) > 0 {
			attr.Key = strings.Join(h.groups, ".") + "." + attr.Key
		}
		clone.attrs = append(clone.attrs, attr)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func (h *consoleHandler) badge(level slog.Level) string {
	label := fmt.Sprintf("%-5s", level.String())
	if !h.color {
		return label
	}
	switch {
	case level >= slog.LevelError:
		return errorStyle.Render(label)
	case level >= slog.LevelWarn:
		return warnStyle.Render(label)
	case level >= slog.LevelInfo:
		return infoStyle.Render(label)
	default:
		return debugStyle.Render(label)
	}
}

func (h *consoleHandler) writeAttr(buf *bytes.Buffer, groups []string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	if attr.Value.Kind() == slog.KindGroup {
		nested := groups
		if attr.Key != "" {
			nested = append(append([]string{}, groups...), attr.Key)
		}
		for _, a := range attr.Value.Group() {
			h.writeAttr(buf, nested, a)
		}
		return
	}

	key := attr.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	if h.color {
		key = keyStyle.Render(key)
	}

	buf.WriteByte(' ')
	buf.WriteString(key)
	buf.WriteByte('=')
	buf.WriteString(formatValue(attr.Value))
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindString:
		s = v.String()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = v.String()
		}
	default:
		return v.String()
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
