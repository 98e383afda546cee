package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Print writes an outline of the tree rooted at n, one node per line, each
// prefixed by a dash per level of nesting.
func (n *Node) Print(w io.Writer) error {
	return n.print(w, 0)
}

func (n *Node) print(w io.Writer, depth int) error {
	label := strings.TrimSuffix(n.Text, "\n")
	if n.Keyword == KeywordRoot {
		label = n.Keyword.String()
	}

	_, err := fmt.Fprintf(w, "%s %s\n", strings.Repeat("-", depth+1), label)
	if err != nil {
		return err
	}

	for _, c := range n.children {
		err := c.print(w, depth+1)
		if err != nil {
			return err
		}
	}

	return nil
}

// nodeView is the serialized form of a [Node].
type nodeView struct {
	Keyword  string     `json:"keyword,omitempty"  yaml:"keyword,omitempty"`
	Text     string     `json:"text,omitempty"     yaml:"text,omitempty"`
	Children []nodeView `json:"children,omitempty" yaml:"children,omitempty"`
	Line     int        `json:"line,omitempty"     yaml:"line,omitempty"`
}

func (n *Node) view() nodeView {
	v := nodeView{
		Keyword: n.Keyword.String(),
		Text:    strings.TrimSuffix(n.Text, "\n"),
		Line:    n.Line,
	}

	if len(n.children) > 0 {
		v.Children = make([]nodeView, len(n.children))
		for i, c := range n.children {
			v.Children[i] = c.view()
		}
	}

	return v
}

// FormatJSON writes the tree rooted at n as JSON to the writer.
func (n *Node) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(n.view(), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(n.view())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the tree rooted at n as YAML to the writer.
func (n *Node) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, n.view(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
