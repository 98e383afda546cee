package lang

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line []string
		want []string
	}{
		{
			name: "trailing head",
			line: []string{"phrase", `"melody"`, ":"},
			want: []string{"phrase", `"melody"`, "(", ")"},
		},
		{
			name: "leading head declares",
			line: []string{"swing:", "1"},
			want: []string{"def", "swing(", "1", ")"},
		},
		{
			name: "scope operator untouched",
			line: []string{"note", "Scale::Major"},
			want: []string{"note", "Scale::Major"},
		},
		{
			name: "calls close together",
			line: []string{"a:", "b:", "1"},
			want: []string{"def", "a(", "b(", "1", ")", ")"},
		},
		{
			name: "only the first colon opens",
			line: []string{"x", "a:b:c"},
			want: []string{"x", "a(b:c", ")"},
		},
		{
			name: "comment untouched",
			line: []string{"#", "todo:"},
			want: []string{"#", "todo:"},
		},
		{
			name: "no calls",
			line: []string{"note", `"C4"`},
			want: []string{"note", `"C4"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Normalize([][]string{tt.line})
			if diff := cmp.Diff([][]string{tt.want}, got); diff != "" {
				t.Errorf("Normalize(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}
