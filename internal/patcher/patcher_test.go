package patcher

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
)

const minimalPage = `<html>
<head>
    <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.1.3/dist/css/bootstrap.min.css" rel="stylesheet">
    <style>
        body {
            min-height: 100vh;
        }
    </style>
</head>
<body>
    <div class="container">hello</div>
    <script>
        function logout() {}
    </script>
</body>
</html>
`

// staticDir returns the absolute path to testdata/static at the repo root.
func staticDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("unable to determine test file location")
	}
	dir, err := filepath.Abs(filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "static"))
	if err != nil {
		t.Fatalf("resolve testdata path: %v", err)
	}
	return dir
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(staticDir(t), name))
	if err != nil {
		t.Fatalf("reading fixture %s: %v", name, err)
	}
	return string(data)
}

func mustPatch(t *testing.T, content, filename string) (string, Result) {
	t.Helper()
	out, res, err := Patch(content, filename)
	if err != nil {
		t.Fatalf("Patch(%s) error: %v", filename, err)
	}
	return out, res
}

func TestPatch_AllEdits(t *testing.T) {
	out, res := mustPatch(t, minimalPage, "uws-s3.html")

	if res.Outcome != OutcomePatched {
		t.Fatalf("outcome = %q, want %q", res.Outcome, OutcomePatched)
	}
	want := []Edit{EditStylesheet, EditOverflow, EditCSS, EditBody, EditScript}
	if !slices.Equal(res.Applied, want) {
		t.Errorf("applied = %v, want %v", res.Applied, want)
	}
	if len(res.MissingAnchors) != 0 {
		t.Errorf("missing anchors = %v, want none", res.MissingAnchors)
	}

	for _, marker := range []string{SidebarMarker, CSSMarker, ScriptMarker, OverflowMarker, fontAwesomeLink} {
		if n := strings.Count(out, marker); n != 1 {
			t.Errorf("marker %q appears %d times, want 1", marker, n)
		}
	}
	if !strings.Contains(out, `<h4 class="mb-0">UWS-S3 Cloud Storage</h4>`) {
		t.Error("page title not injected into top navbar")
	}
}

func TestPatch_Title(t *testing.T) {
	_, res := mustPatch(t, minimalPage, "uws-s3.html")
	if res.Title != "UWS-S3 Cloud Storage" {
		t.Errorf("title = %q, want %q", res.Title, "UWS-S3 Cloud Storage")
	}

	out, res := mustPatch(t, minimalPage, "other.html")
	if res.Title != "UWS Service" {
		t.Errorf("fallback title = %q, want %q", res.Title, "UWS Service")
	}
	if !strings.Contains(out, `<h4 class="mb-0">UWS Service</h4>`) {
		t.Error("fallback title not injected")
	}
}

func TestPatch_Placement(t *testing.T) {
	out, _ := mustPatch(t, minimalPage, "uws-s3.html")

	if !strings.Contains(out, bootstrapLink+"\n    "+fontAwesomeLink) {
		t.Error("font awesome link should follow the bootstrap link")
	}
	if !strings.Contains(out, "min-height: 100vh;\n            overflow-x: hidden;") {
		t.Error("overflow rule should follow min-height in body rule")
	}
	if !strings.Contains(out, sidebarCSS+"\n        </style>") {
		t.Error("sidebar CSS should sit right before </style>")
	}
	if !strings.Contains(out, "<body>\n    <!-- Sidebar -->") {
		t.Error("sidebar fragment should open the body")
	}
	if !strings.Contains(out, "</div>\n\n        <div class=\"container\">hello</div>") {
		t.Error("original body should follow the sidebar fragment")
	}
	if !strings.Contains(out, sidebarJS+"\n    </script>") {
		t.Error("sidebar JS should sit right before </script>")
	}
	if !strings.HasSuffix(out, "\n    </body>\n</html>\n") {
		t.Errorf("body close not preserved, tail = %q", out[len(out)-40:])
	}
}

func TestPatch_Idempotent(t *testing.T) {
	for _, name := range []string{"uws-s3.html", "uws-billing.html", "uws-dns.html"} {
		t.Run(name, func(t *testing.T) {
			original := readFixture(t, name)
			once, _ := mustPatch(t, original, name)
			twice, _ := mustPatch(t, once, name)
			if once != twice {
				t.Error("patching twice should equal patching once")
			}
		})
	}
}

func TestPatch_SkipsPatchedPage(t *testing.T) {
	once, _ := mustPatch(t, minimalPage, "uws-s3.html")
	again, res := mustPatch(t, once, "uws-s3.html")

	if res.Outcome != OutcomeSkipped {
		t.Errorf("outcome = %q, want %q", res.Outcome, OutcomeSkipped)
	}
	if again != once {
		t.Error("skipped page content should be returned untouched")
	}
	if len(res.Applied) != 0 {
		t.Errorf("applied = %v, want none", res.Applied)
	}
}

func TestPatch_MissingBodyAnchor(t *testing.T) {
	page := readFixture(t, "uws-dns.html")
	out, res := mustPatch(t, page, "uws-dns.html")

	if res.Outcome != OutcomePatched {
		t.Fatalf("outcome = %q, want %q", res.Outcome, OutcomePatched)
	}
	if !slices.Equal(res.MissingAnchors, []Edit{EditBody}) {
		t.Errorf("missing anchors = %v, want [body]", res.MissingAnchors)
	}
	if strings.Contains(out, SidebarMarker) {
		t.Error("sidebar fragment should not be inserted without <body>")
	}
	for _, marker := range []string{fontAwesomeLink, OverflowMarker, CSSMarker, ScriptMarker} {
		if !strings.Contains(out, marker) {
			t.Errorf("edit for %q should apply independently of the body edit", marker)
		}
	}

	again, res := mustPatch(t, out, "uws-dns.html")
	if again != out {
		t.Error("second run should not change a page without body anchors")
	}
	if res.Outcome != OutcomeUnchanged {
		t.Errorf("second run outcome = %q, want %q", res.Outcome, OutcomeUnchanged)
	}
}

func TestPatch_NoAnchors(t *testing.T) {
	page := "<html><p>plain</p></html>"
	out, res := mustPatch(t, page, "uws-ai.html")

	if out != page {
		t.Errorf("content changed without anchors: %q", out)
	}
	if res.Outcome != OutcomeUnchanged {
		t.Errorf("outcome = %q, want %q", res.Outcome, OutcomeUnchanged)
	}
	want := []Edit{EditStylesheet, EditOverflow, EditCSS, EditBody, EditScript}
	if !slices.Equal(res.MissingAnchors, want) {
		t.Errorf("missing anchors = %v, want %v", res.MissingAnchors, want)
	}
}

func TestPatch_ExistingFontAwesome(t *testing.T) {
	page := strings.Replace(minimalPage, "<style>",
		`<link href="https://use.fontawesome.com/releases/v5.15.4/css/all.css" rel="stylesheet">
    <style>`, 1)
	out, res := mustPatch(t, page, "uws-rdb.html")

	if slices.Contains(res.Applied, EditStylesheet) {
		t.Error("stylesheet edit should not run when font awesome is already linked")
	}
	if strings.Contains(out, fontAwesomeLink) {
		t.Error("second font awesome link inserted")
	}
}

func TestPatch_UsesLastStyleAndScript(t *testing.T) {
	page := `<head><style>a{}</style><style>b{}</style></head>
<body>
x
<script src="a.js"></script>
<script>go()</script>
</body>`
	out, _ := mustPatch(t, page, "uws-sqs.html")

	if !strings.HasPrefix(out, "<head><style>a{}</style><style>b{}") {
		t.Error("first style block should be untouched")
	}
	if !strings.Contains(out, `<script src="a.js"></script>`) {
		t.Error("first script tag should be untouched")
	}
	if !strings.Contains(out, "<script>go()\n\n        "+sidebarJS) {
		t.Error("sidebar JS should be appended to the last script block")
	}
}

func TestPatch_BodyCloseBeforeOpen(t *testing.T) {
	page := "</body><body>"
	out, res := mustPatch(t, page, "uws-iam.html")
	if out != page {
		t.Errorf("content changed: %q", out)
	}
	if !slices.Contains(res.MissingAnchors, EditBody) {
		t.Error("body edit should be reported as missing its anchor")
	}
}

func TestHasSidebar(t *testing.T) {
	if HasSidebar(`<div class="sidebar-header">`) {
		t.Error("sidebar-header should not count as the sidebar marker")
	}
	if !HasSidebar(`<div class="sidebar" id="sidebar">`) {
		t.Error("sidebar marker not detected")
	}
}
