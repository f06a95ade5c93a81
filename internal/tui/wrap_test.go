package tui

import "testing"

func TestWrapTextBreaksAtSpaces(t *testing.T) {
	got := wrapText("one two three", 7)
	if got != "one two\nthree" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextSplitsLongWords(t *testing.T) {
	got := wrapText("abcdefgh", 3)
	if got != "abc\ndef\ngh" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextCountsWideRunes(t *testing.T) {
	got := wrapText("hi 🌿 there", 5)
	if got != "hi 🌿\nthere" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextKeepsNewlines(t *testing.T) {
	got := wrapText("a b\nc", 10)
	if got != "a b\nc" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextNoWidth(t *testing.T) {
	if got := wrapText("one two", 0); got != "one two" {
		t.Fatalf("expected text unchanged, got %q", got)
	}
}

func TestHangingIndent(t *testing.T) {
	got := hangingIndent("1. ", "read the chapter twice", 12)
	want := "1. read the\n   chapter\n   twice"
	if got != want {
		t.Fatalf("unexpected indent:\n%s\nwant:\n%s", got, want)
	}
}
