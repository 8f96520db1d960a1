package lessongen

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// TOCNode is a heading and the headings nested under it.
type TOCNode struct {
	ID       string    `json:"id" yaml:"id"`
	Level    int       `json:"level" yaml:"level"`
	Text     string    `json:"text" yaml:"text"`
	Children []TOCNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// TOCTransformer collects headings while walking a parsed document.  It can
// be installed as a goldmark AST transformer or called directly.
type TOCTransformer struct {
	TOC        []TOCNode
	CurrentIDs map[string]int
}

func NewTOCTransformer() *TOCTransformer {
	return &TOCTransformer{
		TOC:        []TOCNode{},
		CurrentIDs: make(map[string]int),
	}
}

func (t *TOCTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		headingText := nodeText(heading, source)

		id := ""
		if currid, found := heading.AttributeString("id"); found {
			if sid, ok := currid.([]byte); ok && len(sid) > 0 {
				id = strings.TrimSpace(string(sid))
			}
		}
		if id == "" {
			id = generateID(headingText, t.CurrentIDs)
			heading.SetAttribute([]byte("id"), []byte(id))
		}
		t.CurrentIDs[id]++

		t.add(TOCNode{ID: id, Level: heading.Level, Text: headingText})
		return ast.WalkSkipChildren, nil
	})
}

// nodeText concatenates the text and code span segments under n.
func nodeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// add places node under the deepest open heading with a smaller level, or at
// the root.
func (t *TOCTransformer) add(node TOCNode) {
	if len(t.TOC) == 0 || node.Level == 1 {
		t.TOC = append(t.TOC, node)
		return
	}
	if attach(&t.TOC[len(t.TOC)-1], node) {
		return
	}
	t.TOC = append(t.TOC, node)
}

func attach(parent *TOCNode, node TOCNode) bool {
	if node.Level <= parent.Level {
		return false
	}
	if n := len(parent.Children); n > 0 && attach(&parent.Children[n-1], node) {
		return true
	}
	parent.Children = append(parent.Children, node)
	return true
}

// generateID creates a URL-friendly ID from heading text
func generateID(text string, existingIDs map[string]int) string {
	var result strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		} else if s := result.String(); len(s) > 0 && s[len(s)-1] != '-' {
			result.WriteRune('-')
		}
	}

	id := strings.Trim(result.String(), "-")
	if id == "" {
		id = "heading"
	}
	if count, exists := existingIDs[id]; exists {
		id = fmt.Sprintf("%s-%d", id, count+1)
	}
	return id
}
