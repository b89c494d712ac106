package prompt_test

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"showbrake/internal/prompt"
)

func newPrompter(input string) (*prompt.Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return prompt.New(strings.NewReader(input), &out), &out
}

func TestReadLineRetriesUntilValid(t *testing.T) {
	p, out := newPrompter("abc\n0\n  42 \n")
	got, err := p.ReadLine(prompt.IntRange(1, 100), "")
	if err != nil {
		t.Fatalf("ReadLine returned error: %v", err)
	}
	if got != "42" {
		t.Fatalf("ReadLine = %q, want 42", got)
	}
	if strings.Count(out.String(), "> ") != 3 {
		t.Fatalf("expected three prompts, got %q", out.String())
	}
}

func TestReadLineUsesDefault(t *testing.T) {
	p, out := newPrompter("\n")
	got, err := p.ReadLine(prompt.NonEmpty(), "Bluey")
	if err != nil {
		t.Fatalf("ReadLine returned error: %v", err)
	}
	if got != "Bluey" {
		t.Fatalf("ReadLine = %q, want default", got)
	}
	if !strings.Contains(out.String(), "[ Bluey ] > ") {
		t.Fatalf("expected default shown in prompt, got %q", out.String())
	}
}

func TestReadLineWithoutDefaultRejectsEmpty(t *testing.T) {
	p, _ := newPrompter("\nThe Show\n")
	got, err := p.ReadLine(prompt.NonEmpty(), "")
	if err != nil {
		t.Fatalf("ReadLine returned error: %v", err)
	}
	if got != "The Show" {
		t.Fatalf("ReadLine = %q", got)
	}
}

func TestReadLineClosedInput(t *testing.T) {
	p, _ := newPrompter("nope\n")
	_, err := p.ReadLine(prompt.Pattern(regexp.MustCompile(`^\d+$`)), "")
	if !errors.Is(err, prompt.ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}

func TestReadLineAcceptsFinalLineWithoutNewline(t *testing.T) {
	p, _ := newPrompter("7")
	got, err := p.ReadLine(prompt.IntRange(1, 10), "")
	if err != nil || got != "7" {
		t.Fatalf("ReadLine = %q, %v", got, err)
	}
}

func TestChoose(t *testing.T) {
	p, out := newPrompter("5\n3\n")
	got, err := p.Choose([]string{"Off", "Automatic", "Upper field first (NTSC)"}, 1)
	if err != nil {
		t.Fatalf("Choose returned error: %v", err)
	}
	if got != 2 {
		t.Fatalf("Choose = %d, want 2", got)
	}
	for _, want := range []string{"1) Off\n", "2) Automatic\n", "[ 2 ] > "} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in output %q", want, out.String())
		}
	}
}

func TestChooseDefaultAndSingleOption(t *testing.T) {
	p, _ := newPrompter("\n")
	got, err := p.Choose([]string{"a", "b"}, 1)
	if err != nil || got != 1 {
		t.Fatalf("Choose default = %d, %v", got, err)
	}

	p, out := newPrompter("")
	got, err = p.Choose([]string{"only"}, -1)
	if err != nil || got != 0 {
		t.Fatalf("Choose single = %d, %v", got, err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing printed, got %q", out.String())
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"No\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"maybe\nye\ny\n", false, true},
	}
	for _, tc := range tests {
		p, _ := newPrompter(tc.input)
		got, err := p.Confirm(tc.def)
		if err != nil {
			t.Fatalf("Confirm(%q) returned error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("Confirm(%q, %v) = %v, want %v", tc.input, tc.def, got, tc.want)
		}
	}
}
