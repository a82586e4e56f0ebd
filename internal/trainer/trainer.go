// Package trainer runs the interactive essay practice loop: pick a
// category, answer a question, get it graded by the model.
package trainer

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/fatih/color"
	"github.com/rotisserie/eris"

	"github.com/syllabushack/contenttools/internal/ai"
)

// Categories are offered in menu order, numbered from 1.
var Categories = []string{
	"System Architecture",
	"Network",
	"Information Security",
	"Project Management",
	"IT Service Management",
}

const (
	generatedTheme = "AI Generated"
	defaultTheme   = "General"
	rule           = "--------------------------------------------------"
)

var (
	cyan    = color.New(color.FgCyan)
	yellow  = color.New(color.FgYellow)
	green   = color.New(color.FgGreen)
	red     = color.New(color.FgRed)
	magenta = color.New(color.FgMagenta)
	white   = color.New(color.FgWhite)
	bold    = color.New(color.Bold)
)

type Config struct {
	Model    ai.Generator
	Syllabus Syllabus
	In       io.Reader
	Out      io.Writer
	Logger   *slog.Logger
	// Pick returns a random index below n; defaults to math/rand.
	Pick func(n int) int
}

func (c *Config) defaults() {
	if c.Syllabus == nil {
		c.Syllabus = Syllabus{}
	}
	if c.Out == nil {
		c.Out = io.Discard
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.Pick == nil {
		c.Pick = rand.IntN
	}
}

type Trainer struct {
	cfg Config
	in  *bufio.Reader
}

// New reuses cfg.In when it is already a *bufio.Reader, so input buffered
// by an earlier PromptKey is not lost.
func New(cfg Config) *Trainer {
	cfg.defaults()
	in, ok := cfg.In.(*bufio.Reader)
	if !ok {
		in = bufio.NewReader(cfg.In)
	}
	return &Trainer{cfg: cfg, in: in}
}

// Run shows the menu until the user quits or input ends. Model failures
// are reported and the menu is shown again.
func (t *Trainer) Run(ctx context.Context) error {
	out := t.cfg.Out
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		cyan.Fprintln(out, "\n--- Menu ---")
		for i, c := range Categories {
			io.WriteString(out, string(rune('1'+i))+". "+c+"\n")
		}
		io.WriteString(out, "q. Quit\n")
		yellow.Fprintf(out, "Select a category (1-%d): ", len(Categories))

		choice, err := t.readLine()
		if err != nil {
			return t.eof(err)
		}
		choice = strings.ToLower(strings.TrimSpace(choice))
		if choice == "q" {
			io.WriteString(out, "Goodbye!\n")
			return nil
		}
		category, ok := categoryFor(choice)
		if !ok {
			io.WriteString(out, "Invalid selection.\n")
			continue
		}

		if err := t.round(ctx, category); err != nil {
			return t.eof(err)
		}
	}
}

// round asks one question. It only returns input errors.
func (t *Trainer) round(ctx context.Context, category string) error {
	out := t.cfg.Out
	q, ok := t.question(ctx, category)
	if !ok {
		return nil
	}

	white.Fprintln(out, "\n"+rule)
	magenta.Fprintf(out, "[Theme: %s]\n", q.Theme)
	bold.Fprint(out, "Problem:")
	io.WriteString(out, "\n"+q.Question+"\n")
	white.Fprintln(out, rule)

	yellow.Fprintln(out, "\nYour Answer (Input text, then press Enter twice to submit):")
	answer, err := t.readAnswer()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if strings.TrimSpace(answer) == "" {
		io.WriteString(out, "No answer provided. Skipping grading.\n")
		return err
	}

	green.Fprintln(out, "\nGrading your answer... please wait...")
	result, gerr := t.cfg.Model.Generate(ctx, gradingPrompt(q.Question, q.Theme, answer))
	if gerr != nil {
		t.cfg.Logger.Debug("grading failed", "category", category, "err", gerr)
		red.Fprintf(out, "Error grading answer: %v\n", gerr)
	} else {
		white.Fprintln(out, "\n================ Result ================")
		io.WriteString(out, result+"\n")
		white.Fprintln(out, "========================================")
	}
	if err != nil {
		return err
	}

	cyan.Fprint(out, "\nPress Enter to return to menu...")
	_, err = t.readLine()
	return err
}

func (t *Trainer) question(ctx context.Context, category string) (Question, bool) {
	out := t.cfg.Out
	if local := t.cfg.Syllabus[category]; len(local) > 0 {
		green.Fprintf(out, "\nFetching a %s question from local dataset...\n", category)
		q := local[t.cfg.Pick(len(local))]
		if q.Theme == "" {
			q.Theme = defaultTheme
		}
		return q, true
	}

	yellow.Fprintf(out, "\nLocal data not found for %s. Generating via AI...\n", category)
	text, err := t.cfg.Model.Generate(ctx, questionPrompt(category))
	if err != nil {
		t.cfg.Logger.Debug("question generation failed", "category", category, "err", err)
		red.Fprintf(out, "Error generating question: %v\n", err)
		return Question{}, false
	}
	return Question{Question: text, Theme: generatedTheme}, true
}

// readAnswer collects lines until the first empty one.
func (t *Trainer) readAnswer() (string, error) {
	var lines []string
	for {
		line, err := t.readLine()
		if line != "" {
			lines = append(lines, line)
		}
		if err != nil {
			return strings.Join(lines, "\n"), err
		}
		if line == "" {
			return strings.Join(lines, "\n"), nil
		}
	}
}

func (t *Trainer) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if errors.Is(err, io.EOF) && line != "" {
		return line, nil
	}
	return line, err
}

// eof turns the end of input into a clean exit.
func (t *Trainer) eof(err error) error {
	if errors.Is(err, io.EOF) {
		io.WriteString(t.cfg.Out, "\nGoodbye!\n")
		return nil
	}
	return eris.Wrap(err, "read input")
}

func categoryFor(choice string) (string, bool) {
	if len(choice) != 1 || choice[0] < '1' || int(choice[0]-'1') >= len(Categories) {
		return "", false
	}
	return Categories[choice[0]-'1'], true
}

// PromptKey asks for an API key on out and reads one line from in. Pass the
// same reader to New afterwards.
func PromptKey(in *bufio.Reader, out io.Writer) (string, error) {
	yellow.Fprint(out, "Please paste your Google Gemini API Key: ")
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", eris.Wrap(err, "read API key")
	}
	return strings.TrimSpace(line), nil
}

// Banner prints the greeting shown before the key is requested.
func Banner(out io.Writer) {
	cyan.Fprintln(out, "=== Syllabus Hack: Essay Trainer (BYOK Edition) ===")
}

// Fail prints a fatal message in red.
func Fail(out io.Writer, msg string) {
	red.Fprintln(out, msg)
}
