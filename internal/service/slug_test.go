package service

import (
	"errors"
	"strings"
	"testing"
)

func neverTaken(string) (bool, error) { return false, nil }

func TestGenerateSlugBasic(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Go!  Modules & You  ", "go-modules-you"},
		{"Already-Slugged", "already-slugged"},
		{"UPPER case 2024", "upper-case-2024"},
		{"trailing punctuation!!!", "trailing-punctuation"},
	}
	for _, c := range cases {
		got, err := GenerateSlug(c.title, neverTaken)
		if err != nil {
			t.Fatalf("GenerateSlug(%q) error: %v", c.title, err)
		}
		if got != c.want {
			t.Fatalf("GenerateSlug(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestGenerateSlugEmptyBase(t *testing.T) {
	for _, title := range []string{"", "!!!", "   ", "——中文标题——"} {
		if _, err := GenerateSlug(title, neverTaken); !errors.Is(err, ErrInvalidTitle) {
			t.Fatalf("GenerateSlug(%q) error = %v, want ErrInvalidTitle", title, err)
		}
	}
}

func TestGenerateSlugCollision(t *testing.T) {
	taken := map[string]bool{"hello-world": true, "hello-world-1": true}
	got, err := GenerateSlug("Hello World", func(s string) (bool, error) {
		return taken[s], nil
	})
	if err != nil {
		t.Fatalf("GenerateSlug error: %v", err)
	}
	if got != "hello-world-2" {
		t.Fatalf("GenerateSlug = %q, want hello-world-2", got)
	}
}

func TestGenerateSlugExistsError(t *testing.T) {
	boom := errors.New("db down")
	if _, err := GenerateSlug("Hello", func(string) (bool, error) {
		return false, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("GenerateSlug error = %v, want wrapped db error", err)
	}
}

func TestGenerateSlugTruncatesLongTitle(t *testing.T) {
	long := strings.Repeat("abcde ", 100)
	got, err := GenerateSlug(long, neverTaken)
	if err != nil {
		t.Fatalf("GenerateSlug error: %v", err)
	}
	if len(got) > 190 {
		t.Fatalf("slug length = %d, want <= 190", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Fatalf("slug %q ends with hyphen", got)
	}
}
