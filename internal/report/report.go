// Package report renders a summary of a patch run as Markdown or HTML,
// including a unified diff for every page that changed.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/open-unicorn/uws-sidebar/internal/patcher"
)

// Report is the data behind a run report.
type Report struct {
	RunID       string
	StaticDir   string
	DryRun      bool
	GeneratedAt time.Time
	Changes     []*patcher.Change
	Missing     []string
}

// UnifiedDiff returns a unified diff between before and after, labelled
// with name. It returns an empty string when the texts are equal.
func UnifiedDiff(name, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diffing %s: %w", name, err)
	}
	return diff, nil
}

// Markdown renders the report as GitHub-flavored Markdown.
func (r *Report) Markdown() (string, error) {
	var b strings.Builder

	b.WriteString("# Sidebar run report\n\n")
	if r.RunID != "" {
		fmt.Fprintf(&b, "- Run: `%s`\n", r.RunID)
	}
	fmt.Fprintf(&b, "- Static directory: `%s`\n", r.StaticDir)
	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "- Generated: %s\n", r.GeneratedAt.UTC().Format(time.RFC3339))
	}
	if r.DryRun {
		b.WriteString("- Mode: dry run, no files were written\n")
	}
	b.WriteString("\n## Pages\n\n")
	b.WriteString("| Page | Outcome | Edits | Missing anchors |\n")
	b.WriteString("|------|---------|-------|-----------------|\n")
	for _, c := range r.Changes {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			c.Result.Filename, c.Result.Outcome, joinEdits(c.Result.Applied), joinEdits(c.Result.MissingAnchors))
	}
	for _, name := range r.Missing {
		fmt.Fprintf(&b, "| %s | %s | - | - |\n", name, patcher.OutcomeMissing)
	}

	wroteHeading := false
	for _, c := range r.Changes {
		if !c.Changed() {
			continue
		}
		diff, err := UnifiedDiff(c.Result.Filename, c.Before, c.After)
		if err != nil {
			return "", err
		}
		if !wroteHeading {
			b.WriteString("\n## Changes\n")
			wroteHeading = true
		}
		fmt.Fprintf(&b, "\n### %s\n\n```diff\n%s", c.Result.Filename, diff)
		if !strings.HasSuffix(diff, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("```\n")
	}

	return b.String(), nil
}

// HTML renders the report as a standalone HTML page.
func (r *Report) HTML() ([]byte, error) {
	source, err := r.Markdown()
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	var body bytes.Buffer
	if err := md.Convert([]byte(source), &body); err != nil {
		return nil, fmt.Errorf("rendering report markdown: %w", err)
	}

	tmpl, err := template.New("report").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, struct {
		Title   string
		Content template.HTML
	}{
		Title:   "Sidebar run report",
		Content: template.HTML(body.String()),
	}); err != nil {
		return nil, fmt.Errorf("executing report template: %w", err)
	}
	return out.Bytes(), nil
}

// WriteFile writes the report to path. Files ending in .md get Markdown,
// everything else gets HTML.
func (r *Report) WriteFile(path string) error {
	var data []byte
	if strings.EqualFold(filepath.Ext(path), ".md") {
		md, err := r.Markdown()
		if err != nil {
			return err
		}
		data = []byte(md)
	} else {
		var err error
		if data, err = r.HTML(); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	return nil
}

func joinEdits(edits []patcher.Edit) string {
	if len(edits) == 0 {
		return "-"
	}
	parts := make([]string, len(edits))
	for i, e := range edits {
		parts[i] = string(e)
	}
	return strings.Join(parts, ", ")
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; max-width: 1100px; margin: 2rem auto; padding: 0 1rem; color: #24292f; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d0d7de; padding: 0.3rem 0.7rem; }
pre { overflow-x: auto; padding: 1rem; border-radius: 6px; }
code { font-size: 0.85rem; }
</style>
</head>
<body>
{{.Content}}
</body>
</html>
`
