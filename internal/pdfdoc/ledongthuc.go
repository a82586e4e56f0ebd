package pdfdoc

import (
	"os"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"
)

type ledongthucDoc struct {
	path string
	f    *os.File
	r    *lpdf.Reader
}

// OpenLedongthuc opens path with github.com/ledongthuc/pdf.
func OpenLedongthuc(path string) (doc Document, err error) {
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
	r, err := lpdf.NewReader(f, st.Size())
	if err != nil {
		f.Close()
		return nil, eris.Wrapf(err, "pdfdoc: open %s", path)
	}
	return &ledongthucDoc{path: path, f: f, r: r}, nil
}

func (d *ledongthucDoc) Path() string  { return d.path }
func (d *ledongthucDoc) NumPages() int { return d.r.NumPage() }

func (d *ledongthucDoc) PageText(i int) (text string, err error) {
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
	fonts := make(map[string]*lpdf.Font)
	for _, name := range p.Fonts() {
		if _, ok := fonts[name]; !ok {
			f := p.Font(name)
			fonts[name] = &f
		}
	}
	text, err = p.GetPlainText(fonts)
	if err != nil {
		return "", eris.Wrapf(err, "pdfdoc: %s: page %d", d.path, i)
	}
	return text, nil
}

func (d *ledongthucDoc) Close() error {
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}
