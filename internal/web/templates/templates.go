// Package templates holds the HTML views of the web UI as templ components.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// SheetInfo describes one expected sheet on the upload page.
type SheetInfo struct {
	Name     string   `json:"name"`
	Columns  []string `json:"columns"`
	Optional bool     `json:"optional"`
}

// htmlWriter keeps the first write error so views can be written linearly.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) rawf(format string, args ...any) {
	h.raw(fmt.Sprintf(format, args...))
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err == nil {
		h.err = c.Render(ctx, h.w)
	}
}

const styles = `body{font-family:system-ui,sans-serif;margin:2rem auto;max-width:60rem;color:#222}
h1{font-size:1.5rem}table{border-collapse:collapse;width:100%}td,th{border:1px solid #ddd;padding:.4rem;text-align:left;vertical-align:top}
.ok{color:#1a7f37}.fail{color:#cf222e}.warn{color:#9a6700}.alert{border:1px solid #cf222e;padding:1rem;border-radius:.3rem}
ul.findings{margin:.2rem 0;padding-left:1.2rem}code{font-size:.85rem}`

// Layout wraps body in the page shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(title)
		h.raw(`</title><style>` + styles + `</style></head><body><main>`)
		h.component(ctx, body)
		h.raw(`</main></body></html>`)
		return h.err
	})
}

// ErrorAlert renders an error message with its suggested action and code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="alert" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(`<p>`)
			h.text(action)
			h.raw(`</p>`)
		}
		h.raw(`<small>Code: <code>`)
		h.text(code)
		h.raw(`</code></small></div>`)
		return h.err
	})
}

// ErrorPage is a full page around ErrorAlert.
func ErrorPage(message, action, code string) templ.Component {
	return Layout("seedcheck: error", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<h1>Validation failed to run</h1>`)
		h.component(ctx, ErrorAlert(message, action, code))
		h.raw(`<p><a href="/">Back</a></p>`)
		return h.err
	}))
}
