package pdfdoc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildPDF writes a minimal PDF with one page per entry of texts.
// An empty entry produces a page without a text object.
func buildPDF(t *testing.T, texts ...string) string {
	t.Helper()
	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	var kids []string
	for k := range texts {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*k))
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(texts)))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	for k, text := range texts {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*k))
		content := "q Q"
		if text != "" {
			content = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

var engines = []Engine{EngineLedongthuc, EngineRSC}

func TestOpenAndReadPages(t *testing.T) {
	path := buildPDF(t, "Hello World", "", "Second page text")

	for _, engine := range engines {
		t.Run(string(engine), func(t *testing.T) {
			doc, err := NewOpener(engine).Open(path)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer doc.Close()

			if doc.Path() != path {
				t.Errorf("Path() = %q", doc.Path())
			}
			if n := doc.NumPages(); n != 3 {
				t.Fatalf("NumPages() = %d, want 3", n)
			}
			text, err := doc.PageText(1)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(text, "Hello") {
				t.Errorf("page 1 text = %q", text)
			}
			text, err = doc.PageText(2)
			if err != nil {
				t.Fatal(err)
			}
			if strings.TrimSpace(text) != "" {
				t.Errorf("page 2 should be empty, got %q", text)
			}
			if _, err := doc.PageText(4); err == nil {
				t.Error("expected out-of-range error")
			}
		})
	}
}

func TestOpenFailures(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.pdf")
	if err := os.WriteFile(garbage, []byte("this is not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, engine := range engines {
		t.Run(string(engine), func(t *testing.T) {
			if _, err := NewOpener(engine).Open(garbage); err == nil {
				t.Error("expected error for garbage input")
			}
			if _, err := NewOpener(engine).Open(filepath.Join(dir, "missing.pdf")); err == nil {
				t.Error("expected error for missing input")
			}
		})
	}
}

func TestCloseTwice(t *testing.T) {
	path := buildPDF(t, "Hello")
	doc, err := OpenLedongthuc(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := doc.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestParseEngine(t *testing.T) {
	tests := []struct {
		in   string
		want Engine
		ok   bool
	}{
		{"", EngineLedongthuc, true},
		{"ledongthuc", EngineLedongthuc, true},
		{" RSC ", EngineRSC, true},
		{"pdfium", "", false},
	}
	for _, tt := range tests {
		got, err := ParseEngine(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseEngine(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEngine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func openFDs(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skip("no /proc/self/fd on this platform")
	}
	return len(entries)
}

func TestFailedOpenReleasesFile(t *testing.T) {
	full, err := os.ReadFile(buildPDF(t, "Hello World"))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	var broken []string
	for k, data := range [][]byte{
		[]byte("%PDF-1.4\nnot really"),
		full[:len(full)/2],
		bytes.Replace(full, []byte("/Root 1 0 R"), []byte("/Root 9 0 R"), 1),
	} {
		p := filepath.Join(dir, fmt.Sprintf("broken%d.pdf", k))
		if err := os.WriteFile(p, data, 0o644); err != nil {
			t.Fatal(err)
		}
		broken = append(broken, p)
	}

	for _, engine := range engines {
		t.Run(string(engine), func(t *testing.T) {
			before := openFDs(t)
			for range 20 {
				for _, p := range broken {
					if doc, err := NewOpener(engine).Open(p); err == nil {
						doc.Close()
					}
				}
			}
			if after := openFDs(t); after > before {
				t.Errorf("open descriptors grew from %d to %d", before, after)
			}
		})
	}
}
