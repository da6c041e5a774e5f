// Package templates renders the HTML views of the web service as templ components.
package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so view code can stay linear.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, part := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, part)
	}
}

func (h *htmlWriter) text(value string) {
	h.raw(templ.EscapeString(value))
}

func (h *htmlWriter) attr(name string, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (h *htmlWriter) intAttr(name string, value int) {
	h.attr(name, strconv.Itoa(value))
}

func (h *htmlWriter) flag(name string, on bool) {
	if on {
		h.raw(" ", name)
	}
}

func (h *htmlWriter) render(ctx context.Context, component templ.Component) {
	if h.err != nil || component == nil {
		return
	}
	h.err = component.Render(ctx, h.w)
}

func component(fn func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		fn(ctx, h)
		return h.err
	})
}
