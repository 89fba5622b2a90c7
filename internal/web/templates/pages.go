package templates

import (
	"context"
	"io"
	"strings"

	"github.com/JonMunkholm/seedcheck/internal/core"
	"github.com/a-h/templ"
)

// UploadPage is the landing page: the upload form and the expected layout.
func UploadPage(sheets []SheetInfo, maxSizeMB int64, allowForce bool) templ.Component {
	return Layout("seedcheck", templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<h1>Seed workbook validation</h1>`)
		h.raw(`<form method="post" action="/validate" enctype="multipart/form-data">`)
		h.raw(`<input type="file" name="file" accept=".xlsx" required> `)
		h.raw(`<button type="submit">Validate</button>`)
		h.rawf(`<p><small>Maximum size: %d MB</small></p></form>`, maxSizeMB)

		h.raw(`<h2>Export</h2><form method="post" action="/api/export" enctype="multipart/form-data">`)
		h.raw(`<input type="file" name="file" accept=".xlsx" required> `)
		if allowForce {
			h.raw(`<label><input type="checkbox" name="force" value="true"> export even with errors</label> `)
		}
		h.raw(`<button type="submit">Validate and export</button></form>`)

		h.raw(`<h2>Expected sheets</h2><table><thead><tr><th>Sheet</th><th>Columns</th></tr></thead><tbody>`)
		for _, s := range sheets {
			h.raw(`<tr><td>`)
			h.text(s.Name)
			if s.Optional {
				h.raw(` <small>(may be empty)</small>`)
			}
			h.raw(`</td><td>`)
			h.text(strings.Join(s.Columns, ", "))
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
		return h.err
	}))
}

// ResultPage renders a run summary.
func ResultPage(s core.RunSummary) templ.Component {
	return Layout("seedcheck: "+s.Workbook, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<h1>`)
		h.text(s.Workbook)
		h.raw(`</h1>`)
		if s.Valid {
			h.raw(`<p class="ok"><strong>Valid</strong>`)
		} else {
			h.raw(`<p class="fail"><strong>Invalid</strong>`)
		}
		h.rawf(`: %d errors, %d warnings</p>`, s.TotalErrors, s.TotalWarnings)
		h.raw(`<p><small>Run <code>`)
		h.text(s.RunID)
		h.raw(`</code></small></p>`)

		if len(s.Structure.Errors)+len(s.Structure.Warnings) > 0 {
			h.raw(`<h2>Workbook</h2>`)
			findingList(h, s.Structure)
		}

		h.raw(`<h2>Sheets</h2><table><thead><tr><th>Sheet</th><th>Rows</th><th>Findings</th></tr></thead><tbody>`)
		for _, r := range s.Sheets {
			class := "ok"
			if len(r.Result.Errors) > 0 {
				class = "fail"
			}
			h.rawf(`<tr><td class="%s">`, class)
			h.text(r.Sheet)
			h.rawf(`</td><td>%d</td><td>`, r.Rows)
			findingList(h, r.Result)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table><p><a href="/">Validate another workbook</a></p>`)
		return h.err
	}))
}

func findingList(h *htmlWriter, res core.ValidationResult) {
	if len(res.Errors)+len(res.Warnings) == 0 {
		h.raw(`<span class="ok">no findings</span>`)
		return
	}
	h.raw(`<ul class="findings">`)
	for _, m := range res.Errors {
		h.raw(`<li class="fail">`)
		h.text(m)
		h.raw(`</li>`)
	}
	for _, m := range res.Warnings {
		h.raw(`<li class="warn">`)
		h.text(m)
		h.raw(`</li>`)
	}
	h.raw(`</ul>`)
}
