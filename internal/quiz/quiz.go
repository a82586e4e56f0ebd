// Package quiz turns the master question workbook into the per-category
// JSON files served by the site.
package quiz

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Columns is the header row of the master workbook, in template order.
var Columns = []string{
	"ID",
	"exam_type",
	"category",
	"difficulty",
	"tags",
	"question",
	"options_1",
	"options_2",
	"options_3",
	"options_4",
	"answer_index",
	"explanation",
	"ai_hint",
}

// Required lists the columns a workbook must carry to be converted.
var Required = []string{"question", "options_1", "options_2", "options_3", "options_4", "answer_index", "category"}

var ErrMissingColumns = eris.New("missing required columns")

// Item is one question as the quiz front end consumes it.
type Item struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
	Tags        []string `json:"tags"`
	Difficulty  int      `json:"difficulty"`
}

type Category struct {
	Name  string
	Items []Item
}

// Warning flags a row that was converted but looks wrong.
type Warning struct {
	Row      int
	Category string
	ID       string
	Msg      string
}

func (w Warning) String() string {
	return "row " + strconv.Itoa(w.Row) + " (" + w.Category + "/" + w.ID + "): " + w.Msg
}

// Parse groups the data rows under header into categories, sorted by name.
// Rows with a blank category or question are skipped. Row numbers in ids and
// warnings count data rows from 0.
func Parse(rows [][]string) ([]Category, []Warning, error) {
	if len(rows) == 0 {
		return nil, nil, eris.Wrapf(ErrMissingColumns, "empty sheet; expected at least %v", Required)
	}
	col := map[string]int{}
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if _, dup := col[h]; h != "" && !dup {
			col[h] = i
		}
	}
	var missing []string
	for _, name := range Required {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, eris.Wrapf(ErrMissingColumns, "%v; expected at least %v", missing, Required)
	}

	get := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	groups := map[string][]Item{}
	var warnings []Warning
	for n, row := range rows[1:] {
		category := get(row, "category")
		question := get(row, "question")
		if category == "" || question == "" {
			continue
		}
		item := Item{
			ID:          get(row, "ID"),
			Question:    question,
			Options:     make([]string, 4),
			Explanation: get(row, "explanation"),
			Tags:        []string{},
			Difficulty:  1,
		}
		if item.ID == "" {
			item.ID = "q_" + strconv.Itoa(n)
		}
		warn := func(msg string) {
			warnings = append(warnings, Warning{Row: n, Category: category, ID: item.ID, Msg: msg})
		}
		for k := range item.Options {
			item.Options[k] = get(row, "options_"+strconv.Itoa(k+1))
		}
		if tags := get(row, "tags"); tags != "" {
			for _, t := range strings.Split(tags, ",") {
				item.Tags = append(item.Tags, strings.TrimSpace(t))
			}
		}
		if v := get(row, "answer_index"); v != "" {
			idx, err := parseInt(v)
			if err != nil {
				warn("answer_index " + strconv.Quote(v) + " is not a number")
			}
			item.AnswerIndex = idx
		}
		if v := get(row, "difficulty"); v != "" {
			d, err := parseInt(v)
			if err != nil {
				warn("difficulty " + strconv.Quote(v) + " is not a number")
				d = 1
			}
			item.Difficulty = d
		}
		if choices := filled(item.Options); item.AnswerIndex < 0 || item.AnswerIndex >= choices {
			warn("answer_index " + strconv.Itoa(item.AnswerIndex) + " outside the " + strconv.Itoa(choices) + " non-empty options")
		}
		groups[category] = append(groups[category], item)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Category, 0, len(names))
	for _, name := range names {
		out = append(out, Category{Name: name, Items: groups[name]})
	}
	return out, warnings, nil
}

// parseInt accepts spreadsheet numbers such as "3" and "3.0".
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, eris.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

func filled(options []string) int {
	n := 0
	for _, o := range options {
		if o != "" {
			n++
		}
	}
	return n
}
