package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	consoleTimeLayout = "15:04:05"
	// shortSessionLen is how much of the session id the console shows.
	shortSessionLen = 8
)

// consoleHandler writes one line per record for an operator watching a rip:
//
//	14:02:11 INFO [1f0c2a9e ep 2/3] session: episode ripped file="..." elapsed=41m2s
//
// The component, session id and episode position are lifted out of the
// attributes into the prefix; everything else follows as key=value pairs.
type consoleHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     *slog.LevelVar
	attrs     []slog.Attr
	group     string
	addSource bool
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if !h.Enabled(context.Background(), record.Level) {
		return nil
	}

	line := consoleLine{}
	for _, attr := range h.attrs {
		line.add("", attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		line.add(h.group, attr)
		return true
	})

	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var buf bytes.Buffer
	buf.WriteString(timestamp.Format(consoleTimeLayout))
	buf.WriteByte(' ')
	buf.WriteString(levelLabel(record.Level))
	buf.WriteByte(' ')
	if prefix := line.prefix(); prefix != "" {
		buf.WriteString("[")
		buf.WriteString(prefix)
		buf.WriteString("] ")
	}
	if line.component != "" {
		buf.WriteString(line.component)
		buf.WriteString(": ")
	}
	if msg := strings.TrimSpace(record.Message); msg != "" {
		buf.WriteString(msg)
	} else {
		buf.WriteString("(no message)")
	}
	if h.addSource {
		if src := record.Source(); src != nil {
			fmt.Fprintf(&buf, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	for _, field := range line.fields {
		buf.WriteByte(' ')
		buf.WriteString(field.key)
		buf.WriteByte('=')
		buf.WriteString(formatValue(field.value))
	}
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
		if h.group != "" {
			attr.Key = h.group + "." + attr.Key
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
	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}
	return &clone
}

type field struct {
	key   string
	value slog.Value
}

// consoleLine collects one record's attributes, setting aside the ones the
// prefix shows.
type consoleLine struct {
	component    string
	session      string
	episodeIndex int64
	episodeCount int64
	fields       []field
}

func (l *consoleLine) add(group string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	value := attr.Value.Resolve()
	key := attr.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	if value.Kind() == slog.KindGroup {
		for _, nested := range value.Group() {
			l.add(key, nested)
		}
		return
	}

	switch key {
	case FieldComponent:
		if l.component == "" {
			l.component = attrText(value)
		}
		return
	case FieldSessionID:
		l.session = attrText(value)
		return
	case FieldEpisodeIndex:
		if value.Kind() == slog.KindInt64 {
			l.episodeIndex = value.Int64()
			return
		}
	case FieldEpisodeCount:
		if value.Kind() == slog.KindInt64 {
			l.episodeCount = value.Int64()
			return
		}
	}
	if key != "" {
		l.fields = append(l.fields, field{key: key, value: value})
	}
}

func (l *consoleLine) prefix() string {
	var parts []string
	if l.session != "" {
		session := l.session
		if len(session) > shortSessionLen {
			session = session[:shortSessionLen]
		}
		parts = append(parts, session)
	}
	switch {
	case l.episodeIndex > 0 && l.episodeCount > 0:
		parts = append(parts, fmt.Sprintf("ep %d/%d", l.episodeIndex, l.episodeCount))
	case l.episodeIndex > 0:
		parts = append(parts, fmt.Sprintf("ep %d", l.episodeIndex))
	case l.episodeCount > 0:
		parts = append(parts, fmt.Sprintf("%d eps", l.episodeCount))
	}
	return strings.Join(parts, " ")
}

func attrText(v slog.Value) string {
	if v.Kind() == slog.KindString {
		return v.String()
	}
	return formatValue(v)
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().Round(time.Second).String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if needsQuotes(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return true
		}
	}
	return false
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
