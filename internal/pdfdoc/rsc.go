package pdfdoc

import (
	"math"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	rpdf "rsc.io/pdf"
)

type rscDoc struct {
	path string
	f    *os.File
	r    *rpdf.Reader
}

// OpenRSC opens path with rsc.io/pdf.
func OpenRSC(path string) (doc Document, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "pdfdoc: open %s", path)
	}
	defer func() {
		if r := recover(); r != nil {
			f.Close()
			doc, err = nil, recovered(path, r)
		}
	}()
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, eris.Wrapf(err, "pdfdoc: stat %s", path)
	}
	r, err := rpdf.NewReader(f, st.Size())
	if err != nil {
		f.Close()
		return nil, eris.Wrapf(err, "pdfdoc: open %s", path)
	}
	return &rscDoc{path: path, f: f, r: r}, nil
}

func (d *rscDoc) Path() string  { return d.path }
func (d *rscDoc) NumPages() int { return d.r.NumPage() }

// PageText joins the positioned text runs of the page. A change in baseline
// starts a new line; a horizontal gap wider than a space inserts one.
func (d *rscDoc) PageText(i int) (text string, err error) {
	if err := checkPage(d.path, i, d.NumPages()); err != nil {
		return "", err
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", recovered(d.path, r)
		}
	}()
	p := d.r.Page(i)
	if p.V.IsNull() {
		return "", nil
	}
	var b strings.Builder
	var lastY, lastEnd float64
	for k, t := range p.Content().Text {
		if k > 0 {
			switch {
			case math.Abs(t.Y-lastY) > t.FontSize/2:
				b.WriteByte('\n')
			case t.X-lastEnd > t.FontSize/4:
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
		lastY, lastEnd = t.Y, t.X+t.W
	}
	return b.String(), nil
}

func (d *rscDoc) Close() error {
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}
