package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

var ErrExists = eris.New("file already exists")

// ReadRows returns the cell values of the first sheet in path.
func ReadRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, eris.Errorf("%s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, eris.Wrapf(err, "read sheet %s", sheets[0])
	}
	return rows, nil
}

// Marshal renders items the way the site expects: 4-space indent, no HTML
// or non-ASCII escaping.
func Marshal(items []Item) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return nil, eris.Wrap(err, "encode items")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// FileName maps a category to its JSON file name. Characters that cannot
// appear in a file name become hyphens; other text, Japanese included, is kept.
func FileName(category string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, strings.ContainsRune(`/\:*?"<>|`, r):
			return '-'
		}
		return r
	}, strings.TrimSpace(category))
	s = strings.Trim(s, "-. ")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	if s == "" {
		s = "uncategorized"
	}
	return s + ".json"
}

// Converter writes one JSON file per category.
type Converter struct {
	OutputDir string
	Logger    *slog.Logger
	Out       io.Writer
}

func (c *Converter) defaults() {
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.Out == nil {
		c.Out = io.Discard
	}
}

// Result lists what a conversion produced.
type Result struct {
	Written  []string
	Failed   map[string]error
	Warnings []Warning
}

// Convert reads the workbook at input and writes the category files. Errors
// reading the workbook abort; a failed category write is recorded and the
// remaining categories are still written.
func (c *Converter) Convert(input string) (Result, error) {
	c.defaults()
	res := Result{Failed: map[string]error{}}

	if _, err := os.Stat(input); err != nil {
		return res, eris.Wrapf(err, "%s not found", input)
	}
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return res, eris.Wrapf(err, "create %s", c.OutputDir)
	}

	fmt.Fprintf(c.Out, "Reading %s...\n", input)
	rows, err := ReadRows(input)
	if err != nil {
		return res, err
	}
	categories, warnings, err := Parse(rows)
	if err != nil {
		return res, err
	}
	res.Warnings = warnings
	for _, w := range warnings {
		c.Logger.Warn("suspicious row", "row", w.Row, "category", w.Category, "id", w.ID, "problem", w.Msg)
	}

	for _, cat := range categories {
		fmt.Fprintf(c.Out, "Processing category: %s (%d items)\n", cat.Name, len(cat.Items))
		path := filepath.Join(c.OutputDir, FileName(cat.Name))
		if err := writeCategory(path, cat.Items); err != nil {
			fmt.Fprintf(c.Out, "  -> Error saving %s: %v\n", filepath.Base(path), err)
			res.Failed[cat.Name] = err
			continue
		}
		fmt.Fprintf(c.Out, "  -> Saved %s\n", path)
		res.Written = append(res.Written, path)
	}
	fmt.Fprintln(c.Out, "Conversion complete.")
	return res, nil
}

func writeCategory(path string, items []Item) error {
	b, err := Marshal(items)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	return nil
}

// sample is the example row shipped with a fresh template.
var sample = []any{
	"AP-SEC-001",
	"AP",
	"security",
	"1",
	"security,cia",
	"情報セキュリティの3要素（CIA）に含まれないものはどれか？",
	"機密性",
	"完全性",
	"可用性",
	"脆弱性",
	3,
	"脆弱性はセキュリティ上の欠陥を指します。3要素は機密性・完全性・可用性です。",
	"英語でいうと...?",
}

// WriteTemplate creates an empty master workbook with the header row and
// one sample question. An existing file is kept unless force is set.
func WriteTemplate(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return eris.Wrapf(ErrExists, "%s (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "create %s", filepath.Dir(path))
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return eris.Wrap(err, "write header")
	}
	row := append([]any(nil), sample...)
	if err := f.SetSheetRow(sheet, "A2", &row); err != nil {
		return eris.Wrap(err, "write sample row")
	}
	if err := f.SaveAs(path); err != nil {
		return eris.Wrapf(err, "save %s", path)
	}
	return nil
}
