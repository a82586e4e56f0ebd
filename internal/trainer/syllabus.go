package trainer

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/rotisserie/eris"
)

// Question is one essay prompt from the local syllabus file.
type Question struct {
	Question string `json:"question"`
	Theme    string `json:"theme"`
}

// Syllabus maps a category name to its prepared questions.
type Syllabus map[string][]Question

// LoadSyllabus reads path. A missing file yields an empty syllabus.
func LoadSyllabus(path string) (Syllabus, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Syllabus{}, nil
	}
	if err != nil {
		return Syllabus{}, eris.Wrapf(err, "read %s", path)
	}
	var s Syllabus
	if err := json.Unmarshal(b, &s); err != nil {
		return Syllabus{}, eris.Wrapf(err, "parse %s", path)
	}
	return s, nil
}
