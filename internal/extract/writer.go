package extract

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// maxBaseName bounds output file names derived from long input names.
const maxBaseName = 100

// OutputPath derives the Markdown path for input. With outputDir set the file
// goes there under the (truncated) input base name; otherwise it sits next to
// the input with its extension replaced.
func OutputPath(input, outputDir string) string {
	ext := filepath.Ext(input)
	if outputDir == "" {
		return strings.TrimSuffix(input, ext) + ".md"
	}
	base := strings.TrimSuffix(filepath.Base(input), ext)
	if r := []rune(base); len(r) > maxBaseName {
		base = string(r[:maxBaseName])
	}
	return filepath.Join(outputDir, base+".md")
}

// WriteFile writes content to a temporary file in the destination directory
// and renames it into place, so a failed write never leaves a partial file.
func WriteFile(path string, content []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "create %s", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return eris.Wrapf(err, "create temp file in %s", dir)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(content); err != nil {
		return eris.Wrapf(err, "write %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return eris.Wrapf(err, "close %s", tmp.Name())
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return eris.Wrapf(err, "chmod %s", tmp.Name())
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrapf(err, "rename to %s", path)
	}
	return nil
}
