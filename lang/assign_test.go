package lang

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBindingsResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lines    [][]string
		want     [][]string
		bindings Bindings
	}{
		{
			name: "declarations then use",
			lines: [][]string{
				{"tempo", "=", "120"},
				{"beat", "=", "tempo"},
				{"note", "tempo", "beat"},
			},
			want: [][]string{
				{"tempo", "=", "120"},
				{"beat", "=", "120"},
				{"note", "120", "120"},
			},
			bindings: Bindings{NextName: NextValue, "tempo": "120", "beat": "120"},
		},
		{
			name: "right-hand side is concatenated",
			lines: [][]string{
				{"x", "=", "1", "+", "2"},
				{"note", "x"},
			},
			want: [][]string{
				{"x", "=", "1", "+", "2"},
				{"note", "1+2"},
			},
			bindings: Bindings{NextName: NextValue, "x": "1+2"},
		},
		{
			name: "assignment after first statement is not a binding",
			lines: [][]string{
				{"note", "v"},
				{"v", "=", "3"},
				{"note", "v"},
			},
			want: [][]string{
				{"note", "v"},
				{"v", "=", "3"},
				{"note", "v"},
			},
			bindings: Bindings{NextName: NextValue},
		},
		{
			name: "skipped lines keep declaring",
			lines: [][]string{
				{"#", "header"},
				{},
				{"v", "=", "3"},
				{"note", "v", "NEXT"},
			},
			want: [][]string{
				{"#", "header"},
				{},
				{"v", "=", "3"},
				{"note", "3", "@cur_start"},
			},
			bindings: Bindings{NextName: NextValue, "v": "3"},
		},
		{
			name: "skipped lines are never rewritten",
			lines: [][]string{
				{"note", "NEXT"},
				{"#", "NEXT"},
				{`"NEXT"`, "NEXT"},
				{"reset_script_state", "NEXT"},
			},
			want: [][]string{
				{"note", "@cur_start"},
				{"#", "NEXT"},
				{`"NEXT"`, "NEXT"},
				{"reset_script_state", "NEXT"},
			},
			bindings: Bindings{NextName: NextValue},
		},
		{
			name: "quoted identifier is not assignable",
			lines: [][]string{
				{`"x"`, "=", "3"},
				{"note", "x"},
			},
			want: [][]string{
				{`"x"`, "=", "3"},
				{"note", "x"},
			},
			bindings: Bindings{NextName: NextValue},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := NewBindings()
			got := b.Resolve(tt.lines, DefaultOperators())

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}

			if diff := cmp.Diff(tt.bindings, b); diff != "" {
				t.Errorf("bindings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBindingsResolveLeavesInputUnchanged(t *testing.T) {
	t.Parallel()

	lines := [][]string{{"v", "=", "3"}, {"note", "v"}}

	NewBindings().Resolve(lines, DefaultOperators())

	if lines[1][1] != "v" {
		t.Errorf("input rewritten: %q", lines[1])
	}
}
