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

// palette holds the styles used by prettyTextHandler. Styles are bound to a
// renderer for the handler's writer, so color is dropped when the writer is
// not a terminal.
type palette struct {
	key, str, num, dur, boolTrue, boolFalse lipgloss.Style
	level                                   map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:       fg("8"),
		str:       fg("6"),
		num:       fg("3"),
		dur:       fg("5"),
		boolTrue:  fg("2"),
		boolFalse: fg("1"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("8").Bold(true),
			slog.LevelDebug:        fg("4").Bold(true),
			slog.LevelInfo:         fg("2").Bold(true),
			slog.LevelWarn:         fg("3").Bold(true),
			slog.LevelError:        fg("1").Bold(true),
		},
	}
}

func (p palette) levelStyle(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.level[slog.LevelError]
	case l >= slog.LevelWarn:
		return p.level[slog.LevelWarn]
	case l >= slog.LevelInfo:
		return p.level[slog.LevelInfo]
	case l >= slog.LevelDebug:
		return p.level[slog.LevelDebug]
	default:
		return p.level[slog.Level(LevelTrace)]
	}
}

// prettyTextHandler writes one colorized line per record:
//
//	[time] LEVEL message key=value ...
type prettyTextHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	palette    palette
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
	groups     []string
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts:       *opts,
		formatTime: formatTime,
		palette:    newPalette(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() && h.formatTime != nil {
		if ts := h.formatTime(r.Time); ts != "" {
			buf.WriteString(h.palette.key.Render(ts))
			buf.WriteByte(' ')
		}
	}

	label := fmt.Sprintf("%-5s", strings.ToUpper(Level(r.Level).String()))
	buf.WriteString(h.palette.levelStyle(r.Level).Render(label))
	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			h.writeAttr(buf, nil, slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	for _, a := range h.attrs {
		h.writeAttr(buf, h.groups, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, h.groups, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &c
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

func (h *prettyTextHandler) writeAttr(
	buf *bytes.Buffer,
	groups []string,
	a slog.Attr,
) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		nested := append(groups[:len(groups):len(groups)], a.Key)
		if a.Key == "" {
			nested = groups
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, nested, ga)
		}

		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	buf.WriteByte(' ')
	buf.WriteString(h.palette.key.Render(key + "="))
	h.writeValue(buf, a.Value)
}

func (h *prettyTextHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		buf.WriteString(h.palette.str.Render(v.String()))

	case slog.KindInt64:
		buf.WriteString(h.palette.num.Render(strconv.FormatInt(v.Int64(), 10)))

	case slog.KindUint64:
		buf.WriteString(h.palette.num.Render(strconv.FormatUint(v.Uint64(), 10)))

	case slog.KindFloat64:
		buf.WriteString(h.palette.num.Render(
			strconv.FormatFloat(v.Float64(), 'g', -1, 64)))

	case slog.KindBool:
		if v.Bool() {
			buf.WriteString(h.palette.boolTrue.Render("true"))
		} else {
			buf.WriteString(h.palette.boolFalse.Render("false"))
		}

	case slog.KindDuration:
		buf.WriteString(h.palette.dur.Render(v.Duration().String()))

	case slog.KindTime:
		buf.WriteString(h.palette.dur.Render(v.Time().String()))

	default:
		buf.WriteString(h.palette.str.Render(v.String()))
	}
}
