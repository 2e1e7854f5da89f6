package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewReporterDisabled(t *testing.T) {
	if _, ok := NewReporter(false).(NopReporter); !ok {
		t.Error("disabled reporter should be a NopReporter")
	}
}

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter(true).(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf}
	r.Start(2)
	r.Update(1, "uws-s3.html")
	r.Update(2, "uws-dns.html")
	r.Finish()

	out := buf.String()
	for _, want := range []string{"Patching 2 pages", "[1/2] uws-s3.html", "[2/2] uws-dns.html", "Patching complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTerminalReporterWritesToOut(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{Out: &buf}
	r.Start(3)
	r.Update(1, "uws-ai.html")
	r.Finish()
	if buf.Len() == 0 {
		t.Error("expected progress bar output")
	}
}
