package episode

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"showbrake/internal/disc"
)

var (
	// ErrSyntax reports a descriptor string that does not match the grammar.
	ErrSyntax = errors.New("episode descriptor syntax")
	// ErrOutOfRange reports a token naming a title or chapter the disc lacks.
	ErrOutOfRange = errors.New("episode descriptor out of range")
)

var (
	descriptorPattern = regexp.MustCompile(`^[1-9]\d*(?:\.[1-9]\d*(?:-[1-9]\d*)?)?(?: [1-9]\d*(?:\.[1-9]\d*(?:-[1-9]\d*)?)?)*$`)
	tokenPattern      = regexp.MustCompile(`^(\d+)(?:\.(\d+)(?:-(\d+))?)?$`)
)

// ChapterKind says which part of a title a descriptor selects.
type ChapterKind int

const (
	// ChaptersAll selects the whole title.
	ChaptersAll ChapterKind = iota
	// ChapterSingle selects one chapter.
	ChapterSingle
	// ChapterRange selects an inclusive chapter range.
	ChapterRange
)

// Descriptor names one episode: a positional title number and an optional
// chapter or chapter range. Start and End are equal for ChapterSingle and
// zero for ChaptersAll.
type Descriptor struct {
	Title int
	Kind  ChapterKind
	Start int
	End   int
}

// String renders the descriptor in the form it was typed.
func (d Descriptor) String() string {
	switch d.Kind {
	case ChapterSingle:
		return fmt.Sprintf("%d.%d", d.Title, d.Start)
	case ChapterRange:
		return fmt.Sprintf("%d.%d-%d", d.Title, d.Start, d.End)
	default:
		return strconv.Itoa(d.Title)
	}
}

// ChapterArg returns the HandBrakeCLI --chapters value, or "" for a whole
// title.
func (d Descriptor) ChapterArg() string {
	switch d.Kind {
	case ChapterSingle:
		return strconv.Itoa(d.Start)
	case ChapterRange:
		return fmt.Sprintf("%d-%d", d.Start, d.End)
	default:
		return ""
	}
}

// TitleOn returns the disc title the descriptor addresses. It reports false
// when the position is outside the disc.
func (d Descriptor) TitleOn(dsc *disc.Disc) (disc.Title, bool) {
	if dsc == nil || d.Title < 1 || d.Title > len(dsc.Titles) {
		return disc.Title{}, false
	}
	return dsc.Titles[d.Title-1], true
}

// RangeError describes the first token that failed the bounds check.
type RangeError struct {
	Token  string
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %q: %s", ErrOutOfRange, e.Token, e.Reason)
}

// Unwrap lets errors.Is match ErrOutOfRange.
func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// ParseDescriptors checks the whole string against the descriptor grammar and
// then splits it into descriptors. No token is parsed unless the entire string
// is well formed.
func ParseDescriptors(input string) ([]Descriptor, error) {
	if !descriptorPattern.MatchString(input) {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, input)
	}

	tokens := strings.Split(input, " ")
	descriptors := make([]Descriptor, 0, len(tokens))
	for _, token := range tokens {
		descriptor, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, descriptor)
	}
	return descriptors, nil
}

func parseToken(token string) (Descriptor, error) {
	match := tokenPattern.FindStringSubmatch(token)
	if match == nil {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrSyntax, token)
	}
	numbers := make([]int, 0, 3)
	for _, group := range match[1:] {
		if group == "" {
			break
		}
		value, err := strconv.Atoi(group)
		if err != nil {
			return Descriptor{}, &RangeError{Token: token, Reason: "number too large"}
		}
		numbers = append(numbers, value)
	}

	descriptor := Descriptor{Title: numbers[0]}
	switch len(numbers) {
	case 2:
		descriptor.Kind = ChapterSingle
		descriptor.Start = numbers[1]
		descriptor.End = numbers[1]
	case 3:
		descriptor.Kind = ChapterRange
		descriptor.Start = numbers[1]
		descriptor.End = numbers[2]
	}
	return descriptor, nil
}

// Validate bounds-checks every descriptor against dsc and returns the first
// failure as a *RangeError. A range whose start exceeds its end is accepted as
// long as both ends address real chapters.
func Validate(descriptors []Descriptor, dsc *disc.Disc) error {
	for _, descriptor := range descriptors {
		title, ok := descriptor.TitleOn(dsc)
		if !ok {
			return &RangeError{
				Token:  descriptor.String(),
				Reason: fmt.Sprintf("title must be between 1 and %d", dsc.TitleCount()),
			}
		}
		if descriptor.Kind == ChaptersAll {
			continue
		}
		chapters := len(title.Chapters)
		for _, value := range []int{descriptor.Start, descriptor.End} {
			if value < 1 || value > chapters {
				return &RangeError{
					Token:  descriptor.String(),
					Reason: fmt.Sprintf("chapter must be between 1 and %d", chapters),
				}
			}
		}
	}
	return nil
}

// ParseAndValidate parses input and bounds-checks the result against dsc.
// The descriptors are returned only when every token is valid.
func ParseAndValidate(input string, dsc *disc.Disc) ([]Descriptor, error) {
	descriptors, err := ParseDescriptors(input)
	if err != nil {
		return nil, err
	}
	if err := Validate(descriptors, dsc); err != nil {
		return nil, err
	}
	return descriptors, nil
}
