// Package patcher splices the UWS navigation sidebar into service pages.
//
// Every edit is a plain text search guarded by a marker, so patching an
// already patched page is a no-op.
package patcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/open-unicorn/uws-sidebar/internal/pages"
)

// Markers that show an edit has already been applied.
const (
	SidebarMarker     = `class="sidebar"`
	CSSMarker         = "/* Sidebar Styles */"
	ScriptMarker      = "// Sidebar functionality"
	OverflowMarker    = "overflow-x: hidden"
	fontAwesomeMarker = "font-awesome"
	fontAwesomeAlt    = "fontawesome"
)

// Anchors the edits are inserted relative to.
const (
	bootstrapLink   = `<link href="https://cdn.jsdelivr.net/npm/bootstrap@5.1.3/dist/css/bootstrap.min.css" rel="stylesheet">`
	fontAwesomeLink = `<link href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.0.0/css/all.min.css" rel="stylesheet">`
	bodyOpen        = "<body>"
	bodyClose       = "</body>"
	styleClose      = "</style>"
	scriptClose     = "</script>"
	minHeightRule   = "min-height: 100vh;"
)

var bodyRuleRe = regexp.MustCompile(`body\s*\{[^}]*\}`)

// Edit names one of the textual insertions.
type Edit string

const (
	EditStylesheet Edit = "stylesheet"
	EditOverflow   Edit = "overflow"
	EditCSS        Edit = "css"
	EditBody       Edit = "body"
	EditScript     Edit = "script"
)

// Outcome summarizes what happened to one page.
type Outcome string

const (
	OutcomePatched   Outcome = "patched"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeMissing   Outcome = "missing"
)

// Result describes the edits made to one document.
type Result struct {
	Filename string
	Title    string
	Outcome  Outcome
	Applied  []Edit
	// MissingAnchors lists edits that were needed but whose insertion
	// point could not be found.
	MissingAnchors []Edit
}

// HasSidebar reports whether content already carries the sidebar marker.
func HasSidebar(content string) bool {
	return strings.Contains(content, SidebarMarker)
}

// Patch applies the sidebar edits to content. The page title injected into
// the top navbar is looked up from filename.
func Patch(content, filename string) (string, Result, error) {
	res := Result{
		Filename: filename,
		Title:    pages.Title(filename),
	}

	if HasSidebar(content) {
		res.Outcome = OutcomeSkipped
		return content, res, nil
	}

	record := func(edit Edit, applied bool) {
		if applied {
			res.Applied = append(res.Applied, edit)
		} else {
			res.MissingAnchors = append(res.MissingAnchors, edit)
		}
	}

	if !strings.Contains(content, fontAwesomeMarker) && !strings.Contains(content, fontAwesomeAlt) {
		var ok bool
		content, ok = insertStylesheet(content)
		record(EditStylesheet, ok)
	}

	if !strings.Contains(content, OverflowMarker) {
		var ok bool
		content, ok = hideBodyOverflow(content)
		record(EditOverflow, ok)
	}

	if !strings.Contains(content, CSSMarker) {
		var ok bool
		content, ok = insertBefore(content, styleClose, sidebarCSS+"\n        ")
		record(EditCSS, ok)
	}

	if !HasSidebar(content) {
		fragment, err := renderSidebar(res.Title)
		if err != nil {
			return "", res, err
		}
		var ok bool
		content, ok = wrapBody(content, fragment)
		record(EditBody, ok)
	}

	if !strings.Contains(content, ScriptMarker) {
		var ok bool
		content, ok = insertBefore(content, scriptClose, "\n\n        "+sidebarJS+"\n    ")
		record(EditScript, ok)
	}

	if len(res.Applied) > 0 {
		res.Outcome = OutcomePatched
	} else {
		res.Outcome = OutcomeUnchanged
	}
	return content, res, nil
}

func insertStylesheet(content string) (string, bool) {
	if !strings.Contains(content, bootstrapLink) {
		return content, false
	}
	return strings.ReplaceAll(content, bootstrapLink, bootstrapLink+"\n    "+fontAwesomeLink), true
}

func hideBodyOverflow(content string) (string, bool) {
	out := bodyRuleRe.ReplaceAllStringFunc(content, func(rule string) string {
		return strings.ReplaceAll(rule, minHeightRule, minHeightRule+"\n            overflow-x: hidden;")
	})
	return out, out != content
}

// insertBefore places text immediately before the last occurrence of anchor.
func insertBefore(content, anchor, text string) (string, bool) {
	i := strings.LastIndex(content, anchor)
	if i == -1 {
		return content, false
	}
	return content[:i] + text + content[i:], true
}

// wrapBody puts fragment at the top of the body, followed by the original
// body content with surrounding whitespace trimmed.
func wrapBody(content, fragment string) (string, bool) {
	start := strings.Index(content, bodyOpen)
	end := strings.Index(content, bodyClose)
	if start == -1 || end == -1 || end < start+len(bodyOpen) {
		return content, false
	}

	inner := strings.TrimSpace(content[start+len(bodyOpen) : end])

	var b strings.Builder
	b.Grow(len(content) + len(fragment) + 16)
	b.WriteString(content[:start+len(bodyOpen)])
	b.WriteString("\n")
	b.WriteString(fragment)
	b.WriteString("\n\n        ")
	b.WriteString(inner)
	b.WriteString("\n    ")
	b.WriteString(content[end:])
	return b.String(), true
}

func renderSidebar(title string) (string, error) {
	var b strings.Builder
	if err := sidebarTemplate.Execute(&b, struct{ Title string }{title}); err != nil {
		return "", fmt.Errorf("rendering sidebar for %q: %w", title, err)
	}
	return b.String(), nil
}
