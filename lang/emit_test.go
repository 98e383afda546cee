package lang

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestEmit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		want   string
		indent int
	}{
		{
			name: "write with format",
			src:  "write \"out\"\nformat csound\n",
			want: "write \"out\" do\nformat csound\nend\n",
		},
		{
			name: "repeat block parameter",
			src:  "repeat 2\nnote\n",
			want: "repeat 2 do|index|\nnote do\nend\nend\n",
		},
		{
			name: "blank and comment lines kept",
			src:  "note\n\n# rest\n",
			want: "note do\n\n# rest\nend\n",
		},
		{
			name:   "indented",
			src:    "section\nphrase\nnote\n",
			indent: 2,
			want: "section do\n" +
				"  phrase do\n" +
				"    note do\n" +
				"    end\n" +
				"  end\n" +
				"end\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u, err := buildTree(t, tt.src)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			u.indent = tt.indent

			var buf bytes.Buffer
			if err := u.Emit(context.Background(), &buf); err != nil {
				t.Fatalf("Emit() error = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("Emit() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestEmitWriteWithoutFormat(t *testing.T) {
	t.Parallel()

	u, err := buildTree(t, "note\nwrite \"out\"\n")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var buf bytes.Buffer

	err = u.Emit(context.Background(), &buf)
	if !errors.Is(err, ErrStructure) {
		t.Fatalf("Emit() error = %v, want %v", err, ErrStructure)
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("Emit() error %T is not *Error", err)
	}

	if e.Kind != KindStructure || e.Keyword != KeywordWrite || e.Line != 2 {
		t.Errorf("got %s on line %d (%s)", e.Kind, e.Line, e.Keyword)
	}

	if e.Partial != u.Root() {
		t.Error("partial tree is not the built tree")
	}

	if buf.Len() != 0 {
		t.Errorf("Emit() wrote %q on failure", buf.String())
	}
}

func TestEmitFormatOutsideWrite(t *testing.T) {
	t.Parallel()

	u, err := buildTree(t, "section\nformat csound\n")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var buf bytes.Buffer

	err = u.Emit(context.Background(), &buf)
	if !errors.Is(err, ErrStructure) {
		t.Fatalf("Emit() error = %v, want %v", err, ErrStructure)
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("Emit() error %T is not *Error", err)
	}

	if e.Kind != KindStructure || e.Keyword != KeywordFormat || e.Line != 2 {
		t.Errorf("got %s on line %d (%s)", e.Kind, e.Line, e.Keyword)
	}

	// section, its close, then format.
	if got := e.attrs[0]; got.Key != "node" || got.Value.Int64() != 3 {
		t.Errorf("first attr = %v, want node=3", got)
	}

	if buf.Len() != 0 {
		t.Errorf("Emit() wrote %q on failure", buf.String())
	}
}
