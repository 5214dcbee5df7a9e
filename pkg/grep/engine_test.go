package grep

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"regrep/pkg/rx"
)

const poemContents = `Rust:
safe, fast, productive.
Pick three.
Trust me.`

func TestSearchCaseSensitive(t *testing.T) {
	got, err := Search("duct", "Rust:\nsafe, fast, productive.\nPick three.\nDuct tape.", false)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []string{"safe, fast, productive."}
	if !equalLines(got, want) {
		t.Errorf("Search = %v, want %v", got, want)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	got, err := Search("rUsT", poemContents, true)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []string{"Rust:", "Trust me."}
	if !equalLines(got, want) {
		t.Errorf("Search = %v, want %v", got, want)
	}
}

func TestSearchAlternation(t *testing.T) {
	got, err := Search("(safe)|(three)", poemContents, false)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []string{"safe, fast, productive.", "Pick three."}
	if !equalLines(got, want) {
		t.Errorf("Search = %v, want %v", got, want)
	}
}

func TestSearchStar(t *testing.T) {
	got, err := Search("thre*", poemContents, false)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []string{"Pick three."}
	if !equalLines(got, want) {
		t.Errorf("Search = %v, want %v", got, want)
	}
}

func TestSearchPlus(t *testing.T) {
	contents := "Rust:\nsafe, fast, productive.\nPick three,\nTrust me."
	got, err := Search(",+", contents, false)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []string{"safe, fast, productive.", "Pick three,"}
	if !equalLines(got, want) {
		t.Errorf("Search = %v, want %v", got, want)
	}
}

func TestSearchOptional(t *testing.T) {
	contents := "Rust:\nsafe, fast, productive.\nPick three,\nTrust me."
	got, err := Search("e,?", contents, false)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []string{"safe, fast, productive.", "Pick three,", "Trust me."}
	if !equalLines(got, want) {
		t.Errorf("Search = %v, want %v", got, want)
	}
}

func TestCompileReportsPatternErrors(t *testing.T) {
	_, err := Compile("(a", false)
	if !errors.Is(err, rx.ErrUnbalancedParens) {
		t.Errorf("Compile(\"(a\") error = %v, want ErrUnbalancedParens", err)
	}
	if err != nil && !strings.Contains(err.Error(), "(a") {
		t.Errorf("error %q does not name the offending pattern", err)
	}
}

func TestMatchLinesParallelAgreesWithSequential(t *testing.T) {
	engine, err := Compile("(a|b)+c?", false)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	lines := make([]string, 500)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d abc tail %d", i, i%7)
		if i%3 == 0 {
			lines[i] = fmt.Sprintf("nothing here %d", i)
		}
	}
	sequential, err := engine.MatchLines(context.Background(), lines, 1)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	parallel, err := engine.MatchLines(context.Background(), lines, 8)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	for i := range lines {
		if sequential[i] != parallel[i] {
			t.Fatalf("line %d: sequential %v, parallel %v", i, sequential[i], parallel[i])
		}
	}
}

func TestFilterFilePlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poem.txt")
	if err := os.WriteFile(path, []byte(poemContents+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	engine, err := Compile("(safe)|(three)", false)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	var out bytes.Buffer
	matched, err := engine.FilterFile(context.Background(), path, &out, 2)
	if err != nil {
		t.Fatalf("FilterFile: %v", err)
	}
	if matched != 2 {
		t.Errorf("matched = %d, want 2", matched)
	}
	want := "safe, fast, productive.\nPick three.\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestFilterFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poem.txt.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(poemContents + "\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	engine, err := Compile("duct", false)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	var out bytes.Buffer
	matched, err := engine.FilterFile(context.Background(), path, &out, 1)
	if err != nil {
		t.Fatalf("FilterFile: %v", err)
	}
	if matched != 1 || out.String() != "safe, fast, productive.\n" {
		t.Errorf("matched = %d, output = %q", matched, out.String())
	}
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
