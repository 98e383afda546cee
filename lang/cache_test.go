package lang

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestCanonical(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	ctx := context.Background()

	first, err := Canonical(ctx, "example.altc", exampleScript)
	if err != nil {
		t.Fatalf("Canonical() error = %v", err)
	}

	if first != exampleOutput {
		t.Errorf("Canonical() = %q, want %q", first, exampleOutput)
	}

	second, err := Canonical(ctx, "example.altc", exampleScript)
	if err != nil || second != first {
		t.Errorf("cached Canonical() = %q, %v", second, err)
	}

	indented, err := Canonical(ctx, "example.altc", exampleScript, WithIndent(2))
	if err != nil {
		t.Fatalf("Canonical(indent) error = %v", err)
	}

	if indented == first {
		t.Error("indent option shares a cache entry with default options")
	}

	_, err = Canonical(ctx, "a.altc", "write \"x\"\n")
	if !errors.Is(err, ErrStructure) {
		t.Errorf("Canonical() error = %v, want %v", err, ErrStructure)
	}

	_, again := Canonical(ctx, "b.altc", "write \"x\"\n")
	if !errors.Is(again, ErrStructure) {
		t.Errorf("cached error = %v, want %v", again, ErrStructure)
	}

	var e *Error
	if !errors.As(again, &e) || !slices.ContainsFunc(e.attrs, func(a slog.Attr) bool {
		return a.Equal(slog.String("script", "b.altc"))
	}) {
		t.Errorf("cached error %v does not name its script", again)
	}
}

func TestCompileReader(t *testing.T) {
	t.Parallel()

	res, err := CompileReader(context.Background(), "reader", strings.NewReader(exampleScript))
	if err != nil {
		t.Fatalf("CompileReader() error = %v", err)
	}

	if res.Text != exampleOutput {
		t.Errorf("CompileReader() = %q, want %q", res.Text, exampleOutput)
	}
}

func TestCacheKeyDependsOnBindings(t *testing.T) {
	t.Parallel()

	a := cacheKey("note X\n", NewUnit(""))
	b := cacheKey("note X\n", NewUnit("", WithBindings(Bindings{"X": "1"})))

	if a == b {
		t.Error("bindings do not affect cache key")
	}
}

func TestCacheKeyDistinguishesSource(t *testing.T) {
	t.Parallel()

	u := NewUnit("")

	seen := map[uint64]string{}
	for _, src := range []string{"", "0", "0\x00", "note\n", "note \n", "phrase\n"} {
		key := cacheKey(src, u)
		if prev, ok := seen[key]; ok {
			t.Errorf("cacheKey(%q) collides with cacheKey(%q)", src, prev)
		}

		seen[key] = src
	}
}
