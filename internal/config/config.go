// Package config loads credentials and tool settings.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// command-line flags (applied by each command). Credentials come from the
// process environment, optionally populated from a .env file first.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

const (
	// Placeholder is the value shipped in the sample .env; it counts as unset.
	Placeholder = "YOUR_API_KEY_HERE"

	GoogleAPIKeyEnv = "GOOGLE_API_KEY"
	GeminiAPIKeyEnv = "GEMINI_API_KEY"

	// FileName is looked up in the project root when no --config is given.
	FileName = "contenttools.yaml"
)

type Models struct {
	OCR     string `yaml:"ocr"`
	Trainer string `yaml:"trainer"`
	Cover   string `yaml:"cover"`
}

type OCR struct {
	Engine            string        `yaml:"engine"`
	Delay             time.Duration `yaml:"delay"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	Scale             float64       `yaml:"scale"`
	SamplePages       int           `yaml:"sample_pages"`
	MinCharsPerPage   int           `yaml:"min_chars_per_page"`
	Language          string        `yaml:"language"`
	MaxImagePx        int           `yaml:"max_image_px"`
	Pdftoppm          string        `yaml:"pdftoppm"`
}

type Quiz struct {
	Input     string `yaml:"input"`
	OutputDir string `yaml:"output_dir"`
}

type Trainer struct {
	SyllabusFile string `yaml:"syllabus_file"`
}

// Config is the resolved configuration for one process run.
type Config struct {
	Models  Models  `yaml:"models"`
	OCR     OCR     `yaml:"ocr"`
	Quiz    Quiz    `yaml:"quiz"`
	Trainer Trainer `yaml:"trainer"`

	// Root is the directory holding the .env file, or the working directory.
	Root string `yaml:"-"`
	// EnvFile is the .env path that was looked up; EnvLoaded reports whether it was read.
	EnvFile   string `yaml:"-"`
	EnvLoaded bool   `yaml:"-"`
	// File is the YAML file that was applied, if any.
	File string `yaml:"-"`
}

// Options tells Load where to look.
type Options struct {
	EnvFile    string
	ConfigFile string
	// WorkDir overrides the working directory used for .env discovery.
	WorkDir string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Models: Models{
			OCR:     "gemini-2.0-flash",
			Trainer: "gemini-2.0-flash",
			Cover:   "imagen-4.0-generate-001",
		},
		OCR: OCR{
			Engine:          "gemini",
			Delay:           500 * time.Millisecond,
			Scale:           2,
			SamplePages:     3,
			MinCharsPerPage: 50,
			Language:        "jpn+eng",
			Pdftoppm:        "pdftoppm",
		},
		Quiz: Quiz{
			Input:     filepath.Join("tools", "master_data.xlsx"),
			OutputDir: filepath.Join("static", "data"),
		},
		Trainer: Trainer{
			SyllabusFile: "syllabus_data.json",
		},
	}
}

// Load resolves the .env file and the optional YAML file.
// A missing .env is not an error; a malformed one is.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	wd := opts.WorkDir
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return nil, eris.Wrap(err, "config: working directory")
		}
	}

	cfg.Root = wd
	cfg.EnvFile = filepath.Join(wd, ".env")
	if opts.EnvFile != "" {
		abs, err := filepath.Abs(opts.EnvFile)
		if err != nil {
			return nil, eris.Wrapf(err, "config: env file %s", opts.EnvFile)
		}
		cfg.EnvFile = abs
		cfg.Root = filepath.Dir(abs)
	} else if found := findUp(wd, ".env"); found != "" {
		cfg.EnvFile = found
		cfg.Root = filepath.Dir(found)
	}

	if _, err := os.Stat(cfg.EnvFile); err == nil {
		if err := godotenv.Overload(cfg.EnvFile); err != nil {
			return nil, eris.Wrapf(err, "config: load %s", cfg.EnvFile)
		}
		cfg.EnvLoaded = true
	} else if opts.EnvFile != "" {
		return nil, eris.Wrapf(err, "config: env file %s", opts.EnvFile)
	}

	file := opts.ConfigFile
	if file == "" {
		candidate := filepath.Join(cfg.Root, FileName)
		if _, err := os.Stat(candidate); err == nil {
			file = candidate
		}
	}
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, eris.Wrapf(err, "config: read %s", file)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, eris.Wrapf(err, "config: parse %s", file)
		}
		cfg.File = file
	}
	return &cfg, nil
}

// Credential returns the first usable value among the named environment
// variables. Blank values and the placeholder are skipped.
func Credential(names ...string) (string, bool) {
	for _, name := range names {
		v := strings.TrimSpace(os.Getenv(name))
		if Usable(v) {
			return v, true
		}
	}
	return "", false
}

// Usable reports whether v looks like a real credential.
func Usable(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != Placeholder
}

// Resolve makes p absolute relative to the project root.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

func findUp(dir, name string) string {
	for {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
