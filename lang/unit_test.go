package lang

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// buildTree runs the stages that precede emission over src.
func buildTree(t *testing.T, src string) (*Unit, error) {
	t.Helper()

	u := NewUnit(t.Name())
	lines := Tokenize(SplitLines(src), u.ops)
	lines = Normalize(u.bindings.Resolve(lines, u.ops))

	return u, u.Build(context.Background(), lines)
}

// sk is shorthand for a skeleton node.
func sk(k Keyword, children ...Skeleton) Skeleton {
	return Skeleton{Keyword: k, Children: children}
}

var closeSk = sk(KeywordEnd)

func TestBuildParentResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want Skeleton
	}{
		{
			name: "cursor accepts",
			src:  "phrase\nnote\n",
			want: sk(KeywordRoot,
				sk(KeywordPhrase, sk(KeywordNote), closeSk),
				closeSk,
			),
		},
		{
			name: "consecutive siblings",
			src:  "section \"A\"\nsection \"B\"\n",
			want: sk(KeywordRoot,
				sk(KeywordSection), closeSk,
				sk(KeywordSection), closeSk,
			),
		},
		{
			name: "cursor parent accepts",
			src:  "phrase\nnote\nrepeat 2\nnote\n",
			want: sk(KeywordRoot,
				sk(KeywordPhrase,
					sk(KeywordNote), closeSk,
					sk(KeywordRepeat, sk(KeywordNote), closeSk), closeSk,
				),
				closeSk,
			),
		},
		{
			name: "nearest accepting ancestor",
			src:  "section\nphrase\nnote\nmeter 4, 4\nquantize on\n",
			want: sk(KeywordRoot,
				sk(KeywordSection,
					sk(KeywordPhrase, sk(KeywordNote), closeSk),
					closeSk,
				),
				closeSk,
				sk(KeywordMeter, sk(KeywordQuantize)),
				closeSk,
			),
		},
		{
			name: "ancestor walk skips non-accepting levels",
			src:  "section\nmeasure\nnote\ncopy_measure \"a\", \"b\"\n",
			want: sk(KeywordRoot,
				sk(KeywordSection,
					sk(KeywordMeasure, sk(KeywordNote), closeSk),
					closeSk,
					sk(KeywordCopyMeasure),
					closeSk,
				),
				closeSk,
			),
		},
		{
			name: "format has no close",
			src:  "write \"out\"\nformat midi\n",
			want: sk(KeywordRoot,
				sk(KeywordWrite, sk(KeywordFormat)),
				closeSk,
			),
		},
		{
			name: "orphan falls back to root",
			src:  "quantize on\n",
			want: sk(KeywordRoot, sk(KeywordQuantize)),
		},
		{
			name: "exhausted walk falls back to root",
			src:  "meter 4, 4\nquantize on\nformat csound\n",
			want: sk(KeywordRoot,
				sk(KeywordMeter, sk(KeywordQuantize)),
				closeSk,
				sk(KeywordFormat),
			),
		},
		{
			name: "attribute lines are ignored by shape",
			src:  "note\namplitude 0.5\n\n# rest\n",
			want: sk(KeywordRoot, sk(KeywordNote), closeSk),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u, err := buildTree(t, tt.src)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, u.Root().Shape()); diff != "" {
				t.Errorf("shape mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildAttributesStayUnderCursor(t *testing.T) {
	t.Parallel()

	u, err := buildTree(t, "note \"C4\"\namplitude 3\nduration 1\n")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	note := u.Root().Children()[0]

	var got []string
	for _, c := range note.Children() {
		got = append(got, c.Text)
	}

	want := []string{"amplitude 3\n", "duration 1\n"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("attributes mismatch (-want +got):\n%s", diff)
	}

	if note.Text != "note \"C4\" do\n" {
		t.Errorf("note text = %q", note.Text)
	}
}

func TestBuildCompletionNotRepeated(t *testing.T) {
	t.Parallel()

	u, err := buildTree(t, "note \"x\" do\nmeter 4, 4 do\nquantize on\n")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var got []string
	for n := range u.Root().All() {
		if n.Keyword == KeywordNote || n.Keyword == KeywordMeter {
			got = append(got, n.Text)
		}
	}

	want := []string{"note \"x\" do\n", "meter 4 , 4 do\n"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("opened lines mismatch (-want +got):\n%s", diff)
	}

	wantShape := sk(KeywordRoot,
		sk(KeywordNote), closeSk,
		sk(KeywordMeter, sk(KeywordQuantize)), closeSk,
	)
	if diff := cmp.Diff(wantShape, u.Root().Shape()); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildCloseFollowsOpen(t *testing.T) {
	t.Parallel()

	src := "tempo = 90\n" +
		"section \"A\":\n" +
		"phrase \"p\" :\n" +
		"repeat 4\n" +
		"note \"C4\"\n" +
		"measure\n" +
		"meter 3, 4\n" +
		"quantize off\n" +
		"write \"song\"\n" +
		"format csound\n" +
		"render \"song\"\n"

	u, err := buildTree(t, src)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	opened, closed := 0, 0

	for n := range u.Root().All() {
		if n.Keyword == KeywordEnd {
			closed++

			continue
		}

		if n.IsRoot() || !RuleOf(n.Keyword).Closes() {
			continue
		}

		opened++

		siblings := n.Parent().Children()
		for i, s := range siblings {
			if s != n {
				continue
			}

			if i+1 >= len(siblings) || siblings[i+1].Keyword != KeywordEnd {
				t.Errorf("%s on line %d is not followed by its close", n.Keyword, n.Line)
			}
		}
	}

	if opened != closed {
		t.Errorf("opened %d blocks, closed %d", opened, closed)
	}
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		sentinel error
		kind     Kind
		line     int
		keyword  Keyword
		children int
	}{
		{
			name:     "non-integer repeat",
			src:      "repeat \"three\"\n",
			sentinel: ErrArgument,
			kind:     KindArgument,
			line:     1,
			keyword:  KeywordRepeat,
		},
		{
			name:     "halts at first failure",
			src:      "note\nrepeat \"three\"\nnote\n",
			sentinel: ErrArgument,
			kind:     KindArgument,
			line:     2,
			keyword:  KeywordRepeat,
			children: 2,
		},
		{
			name:     "meter needs two integers",
			src:      "meter 4\n",
			sentinel: ErrArgument,
			kind:     KindArgument,
			line:     1,
			keyword:  KeywordMeter,
		},
		{
			name:     "root at top level",
			src:      "root\n",
			sentinel: ErrAttachment,
			kind:     KindAttachment,
			line:     1,
			keyword:  KeywordRoot,
		},
		{
			name:     "root is reserved",
			src:      "note\nroot\n",
			sentinel: ErrAttachment,
			kind:     KindAttachment,
			line:     2,
			keyword:  KeywordRoot,
			children: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := buildTree(t, tt.src)
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("Build() error = %v, want %v", err, tt.sentinel)
			}

			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("Build() error %T is not *Error", err)
			}

			if e.Kind != tt.kind || e.Line != tt.line || e.Keyword != tt.keyword {
				t.Errorf("got %s at line %d (%s), want %s at line %d (%s)",
					e.Kind, e.Line, e.Keyword, tt.kind, tt.line, tt.keyword)
			}

			if e.Partial == nil {
				t.Fatal("missing partial tree")
			}

			if got := len(e.Partial.Children()); got != tt.children {
				t.Errorf("partial tree has %d top-level nodes, want %d", got, tt.children)
			}
		})
	}
}
