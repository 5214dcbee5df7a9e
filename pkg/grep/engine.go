// Package grep wires the pattern compiler and the DFA matcher into a
// line-filtering engine: compile once, match many lines.
package grep

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"regrep/pkg/automata"
	"regrep/pkg/rx"
)

// Engine holds a compiled pattern. The underlying DFA is immutable, so
// one Engine may serve any number of concurrent matches.
type Engine struct {
	pattern    string
	ignoreCase bool
	dfa        *automata.DFA
}

// Compile runs the full pipeline: format, postfix conversion, Thompson
// NFA, powerset DFA. The intermediate NFA is discarded once the DFA
// exists.
func Compile(pattern string, ignoreCase bool) (*Engine, error) {
	postfix, err := rx.Transform(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	nfa, err := automata.BuildNFA(postfix)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	return &Engine{
		pattern:    pattern,
		ignoreCase: ignoreCase,
		dfa:        automata.BuildDFA(nfa),
	}, nil
}

func (e *Engine) Pattern() string    { return e.pattern }
func (e *Engine) IgnoreCase() bool   { return e.ignoreCase }
func (e *Engine) DFA() *automata.DFA { return e.dfa }

// MatchLine reports whether the pattern occurs anywhere in line.
func (e *Engine) MatchLine(line string) bool {
	if e.ignoreCase {
		return e.dfa.MatchLineFold(line)
	}
	return e.dfa.MatchLine(line)
}

// MatchLines matches every line independently against the shared DFA
// and returns one result per line, in input order. With workers > 1 the
// lines are striped across that many goroutines; matching only reads
// the DFA, so no synchronization beyond the join is needed.
func (e *Engine) MatchLines(ctx context.Context, lines []string, workers int) ([]bool, error) {
	results := make([]bool, len(lines))
	if workers <= 1 || len(lines) < 2 {
		for i, line := range lines {
			results[i] = e.MatchLine(line)
		}
		return results, nil
	}
	if workers > len(lines) {
		workers = len(lines)
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := w; i < len(lines); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i] = e.MatchLine(lines[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// FilterFile reads path line by line and writes every matching line to
// out, preserving input order. It returns the number of matches.
func (e *Engine) FilterFile(ctx context.Context, path string, out io.Writer, workers int) (int, error) {
	rc, err := OpenLines(path)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	results, err := e.MatchLines(ctx, lines, workers)
	if err != nil {
		return 0, err
	}
	matched := 0
	for i, ok := range results {
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(out, lines[i]); err != nil {
			return matched, err
		}
		matched++
	}
	return matched, nil
}

// Search compiles pattern and returns the lines of contents that
// contain a match, in input order.
func Search(pattern, contents string, ignoreCase bool) ([]string, error) {
	engine, err := Compile(pattern, ignoreCase)
	if err != nil {
		return nil, err
	}
	var out []string
	sc := bufio.NewScanner(strings.NewReader(contents))
	for sc.Scan() {
		if engine.MatchLine(sc.Text()) {
			out = append(out, sc.Text())
		}
	}
	return out, sc.Err()
}
