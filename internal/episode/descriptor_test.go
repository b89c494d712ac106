package episode_test

import (
	"errors"
	"testing"

	"showbrake/internal/episode"
)

func TestParseDescriptorsRejectsMalformedInput(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"0",
		"01",
		"1.0",
		"1.2-0",
		"1 ",
		" 1",
		"1  2",
		"1..2",
		"1.2-",
		"1.2-3-4",
		"1,2",
		"1.2-3 abc",
		"a",
	}
	for _, input := range inputs {
		if _, err := episode.ParseDescriptors(input); !errors.Is(err, episode.ErrSyntax) {
			t.Errorf("ParseDescriptors(%q) error = %v, want ErrSyntax", input, err)
		}
	}
}

func TestParseDescriptors(t *testing.T) {
	got, err := episode.ParseDescriptors("1 2.3 10.4-12")
	if err != nil {
		t.Fatalf("ParseDescriptors returned error: %v", err)
	}
	want := []episode.Descriptor{
		{Title: 1, Kind: episode.ChaptersAll},
		{Title: 2, Kind: episode.ChapterSingle, Start: 3, End: 3},
		{Title: 10, Kind: episode.ChapterRange, Start: 4, End: 12},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d descriptors, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("descriptor %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDescriptorRendering(t *testing.T) {
	tests := []struct {
		descriptor episode.Descriptor
		text       string
		chapters   string
	}{
		{episode.Descriptor{Title: 3}, "3", ""},
		{episode.Descriptor{Title: 1, Kind: episode.ChapterSingle, Start: 4, End: 4}, "1.4", "4"},
		{episode.Descriptor{Title: 2, Kind: episode.ChapterRange, Start: 1, End: 5}, "2.1-5", "1-5"},
	}
	for _, tc := range tests {
		if got := tc.descriptor.String(); got != tc.text {
			t.Errorf("String() = %q, want %q", got, tc.text)
		}
		if got := tc.descriptor.ChapterArg(); got != tc.chapters {
			t.Errorf("ChapterArg() = %q, want %q", got, tc.chapters)
		}
	}
}

func TestParseAndValidate(t *testing.T) {
	oneTitle := discWithTitles([]int{600, 600, 600, 600, 600, 600})
	twoTitles := discWithTitles([]int{1300}, []int{700, 700})

	tests := []struct {
		name    string
		input   string
		wantErr error
		count   int
	}{
		{name: "whole title", input: "1", count: 1},
		{name: "title out of range", input: "2.1-5", wantErr: episode.ErrOutOfRange},
		{name: "reversed range accepted", input: "1.5-2", count: 1},
		{name: "chapter past end", input: "1.7", wantErr: episode.ErrOutOfRange},
		{name: "range end past end", input: "1.2-7", wantErr: episode.ErrOutOfRange},
		{name: "syntax checked first", input: "2 abc", wantErr: episode.ErrSyntax},
		{name: "overflowing number", input: "99999999999999999999999", wantErr: episode.ErrOutOfRange},
		{name: "all tokens valid", input: "1.1 1.2-3 1.6", count: 3},
		{name: "one bad token rejects all", input: "1.1 1.2 3", wantErr: episode.ErrOutOfRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := episode.ParseAndValidate(tc.input, oneTitle)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("error = %v, want %v", err, tc.wantErr)
				}
				if got != nil {
					t.Fatalf("expected no descriptors on failure, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tc.count {
				t.Fatalf("got %d descriptors, want %d", len(got), tc.count)
			}
		})
	}

	t.Run("whole title ignores chapter count", func(t *testing.T) {
		if _, err := episode.ParseAndValidate("1 2", twoTitles); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestRangeErrorDetails(t *testing.T) {
	d := discWithTitles([]int{600, 600})
	_, err := episode.ParseAndValidate("1.3", d)

	var rangeErr *episode.RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected *RangeError, got %T (%v)", err, err)
	}
	if rangeErr.Token != "1.3" {
		t.Fatalf("unexpected token %q", rangeErr.Token)
	}
	if rangeErr.Reason != "chapter must be between 1 and 2" {
		t.Fatalf("unexpected reason %q", rangeErr.Reason)
	}
}

func TestDescriptorTitleOn(t *testing.T) {
	d := discWithTitles([]int{600}, []int{700})
	d.Titles[1].Number = 9

	title, ok := episode.Descriptor{Title: 2}.TitleOn(d)
	if !ok {
		t.Fatal("expected title 2 to resolve")
	}
	if title.Number != 9 {
		t.Fatalf("expected tool number 9, got %d", title.Number)
	}
	if _, ok := (episode.Descriptor{Title: 3}).TitleOn(d); ok {
		t.Fatal("expected title 3 to be missing")
	}
}
