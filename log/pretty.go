package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handler, bound to a renderer
// that inspects the handler's output for color support.
type palette struct {
	key, str, num, dur, time, ok, bad lipgloss.Style
	level                             map[Level]lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return palette{
		key:  fg("8"),
		str:  fg("6"),
		num:  fg("3"),
		dur:  fg("5"),
		time: fg("4"),
		ok:   fg("2"),
		bad:  fg("1"),
		level: map[Level]lipgloss.Style{
			LevelTrace: fg("8"),
			LevelDebug: fg("4"),
			LevelInfo:  fg("2").Bold(true),
			LevelWarn:  fg("3").Bold(true),
			LevelError: fg("1").Bold(true),
		},
	}
}

func (p palette) forLevel(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.level[LevelError]
	case l >= slog.LevelWarn:
		return p.level[LevelWarn]
	case l >= slog.LevelInfo:
		return p.level[LevelInfo]
	case l >= slog.LevelDebug:
		return p.level[LevelDebug]
	default:
		return p.level[LevelTrace]
	}
}

// prettyHandler writes one colorized key=value line per record.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	style  palette
	attrs  []byte
	prefix string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts:  *opts,
		mu:    &sync.Mutex{},
		w:     w,
		style: newPalette(w),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeAttr(buf, h.replace(slog.Time(slog.TimeKey, r.Time)), "")
	}

	if lv := h.replace(slog.Any(slog.LevelKey, r.Level)); lv.Key != "" {
		sep(buf)
		buf.WriteString(h.style.forLevel(r.Level).Render(lv.Value.String()))
	}

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeAttr(buf, slog.String(slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line)), "")
		}
	}

	sep(buf)
	buf.WriteString(r.Message)

	if len(h.attrs) > 0 {
		buf.Write(h.attrs)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, h.replace(a), h.prefix)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	buf := bytes.NewBuffer(append([]byte(nil), h.attrs...))
	for _, a := range attrs {
		h.writeAttr(buf, h.replace(a), h.prefix)
	}

	c := *h
	c.attrs = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

// replace applies the configured ReplaceAttr to top-level attrs.
func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil || a.Value.Kind() == slog.KindGroup {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func sep(buf *bytes.Buffer) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, a slog.Attr, prefix string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			h.writeAttr(buf, g, prefix)
		}

		return
	}

	sep(buf)
	buf.WriteString(h.style.key.Render(prefix + a.Key))
	buf.WriteByte('=')
	buf.WriteString(h.value(a.Value))
}

func (h *prettyHandler) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			s = strconv.Quote(s)
		}

		return h.style.str.Render(s)

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.num.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.style.ok.Render("true")
		}

		return h.style.bad.Render("false")

	case slog.KindDuration:
		return h.style.dur.Render(v.Duration().String())

	case slog.KindTime:
		return h.style.time.Render(v.Time().Format(DefaultTimeLayout))

	default:
		if err, ok := v.Any().(error); ok {
			return h.style.bad.Render(strconv.Quote(err.Error()))
		}

		return h.style.str.Render(fmt.Sprint(v.Any()))
	}
}
