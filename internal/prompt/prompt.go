package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNoInput reports that the input stream closed before an answer arrived.
var ErrNoInput = errors.New("no input available")

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiCyan  = "\x1b[36m"
)

var confirmPattern = regexp.MustCompile(`(?i)^(y(es)?|no?)$`)

// Validator reports whether an answer is acceptable.
type Validator func(answer string) bool

// Pattern accepts answers matching re.
func Pattern(re *regexp.Regexp) Validator {
	return func(answer string) bool {
		return re.MatchString(answer)
	}
}

// NonEmpty accepts any non-blank answer.
func NonEmpty() Validator {
	return func(answer string) bool {
		return answer != ""
	}
}

// IntRange accepts integers between min and max inclusive.
func IntRange(min, max int) Validator {
	return func(answer string) bool {
		value, err := strconv.Atoi(answer)
		return err == nil && value >= min && value <= max
	}
}

// Prompter asks questions on a line-based terminal.
type Prompter struct {
	in    *bufio.Reader
	out   io.Writer
	color bool
}

// New returns a Prompter reading answers from in and writing prompts to out.
// Prompts are coloured when out is a terminal.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:    bufio.NewReader(in),
		out:   out,
		color: shouldColorize(out),
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *Prompter) style(code, text string) string {
	if !p.color {
		return text
	}
	return code + text + ansiReset
}

// Ask prints a question line.
func (p *Prompter) Ask(question string) {
	fmt.Fprintln(p.out, p.style(ansiBold, question))
}

// ReadLine reads answers until one satisfies valid. An empty answer selects
// def when def is not empty.
func (p *Prompter) ReadLine(valid Validator, def string) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(p.out, "[ %s ] ", def)
		}
		fmt.Fprint(p.out, p.style(ansiCyan, "> "))

		answer, err := p.readAnswer()
		if err != nil {
			return "", err
		}
		if answer == "" && def != "" {
			return def, nil
		}
		if valid == nil || valid(answer) {
			return answer, nil
		}
	}
}

func (p *Prompter) readAnswer() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return "", ErrNoInput
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Choose lists options and returns the 0-based index of the one picked. A
// negative def offers no default. With fewer than two options nothing is
// asked and 0 is returned.
func (p *Prompter) Choose(options []string, def int) (int, error) {
	if len(options) < 2 {
		return 0, nil
	}
	for i, option := range options {
		fmt.Fprintf(p.out, "%d) %s\n", i+1, option)
	}
	defText := ""
	if def >= 0 && def < len(options) {
		defText = strconv.Itoa(def + 1)
	}
	answer, err := p.ReadLine(IntRange(1, len(options)), defText)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("parse choice %q: %w", answer, err)
	}
	return value - 1, nil
}

// Confirm asks a yes/no question answered with y, yes, n or no in any case.
func (p *Prompter) Confirm(def bool) (bool, error) {
	defText := "N"
	if def {
		defText = "Y"
	}
	answer, err := p.ReadLine(Pattern(confirmPattern), defText)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer[:1], "y"), nil
}
