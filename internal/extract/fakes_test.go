package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/syllabushack/contenttools/internal/pdfdoc"
)

type fakeDoc struct {
	path    string
	pages   []string
	errPage map[int]bool
	closed  bool
	// reads counts PageText calls per page; shared by the opener's copies.
	reads map[int]int
}

func (d *fakeDoc) Path() string  { return d.path }
func (d *fakeDoc) NumPages() int { return len(d.pages) }
func (d *fakeDoc) Close() error  { d.closed = true; return nil }

func (d *fakeDoc) PageText(i int) (string, error) {
	if i < 1 || i > len(d.pages) {
		return "", fmt.Errorf("page %d out of range", i)
	}
	if d.reads != nil {
		d.reads[i]++
	}
	if d.errPage[i] {
		return "", errors.New("broken content stream")
	}
	return d.pages[i-1], nil
}

// fakeOpener serves in-memory documents for files that exist on disk.
type fakeOpener struct {
	docs map[string]*fakeDoc
}

func (o *fakeOpener) Open(path string) (pdfdoc.Document, error) {
	d, ok := o.docs[filepath.Base(path)]
	if !ok {
		return nil, errors.New("not a pdf")
	}
	cp := *d
	cp.path = path
	return &cp, nil
}

type fakeRenderer struct {
	fail map[int]bool
}

func (r *fakeRenderer) RenderPage(ctx context.Context, path string, page int, scale float64) ([]byte, error) {
	if r.fail[page] {
		return nil, errors.New("render failed")
	}
	return []byte(fmt.Sprintf("page-%d@%v", page, scale)), nil
}

// fakeRecognizer maps rendered payloads to text and records call times.
type fakeRecognizer struct {
	mu    sync.Mutex
	text  map[string]string
	fail  map[string]bool
	calls []time.Time
	seen  []string
}

func (r *fakeRecognizer) RecognizeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := string(data)
	r.calls = append(r.calls, time.Now())
	r.seen = append(r.seen, key)
	if r.fail[key] {
		return "", errors.New("429 quota exceeded")
	}
	return r.text[key], nil
}

type countingThrottle struct{ waits int }

func (c *countingThrottle) Wait(ctx context.Context) error {
	c.waits++
	return ctx.Err()
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}
