package bbcode

import "strings"

// Node is the sum type at the heart of the tree: either a Text run or a Tag.
// It mirrors the BaseNode/TextNode split the teacher uses for its markup
// trees, but a BBCode tree needs only this one interface since there is no
// polymorphic node family beyond "text" and "tag".
type Node interface {
	// RawText reconstructs the exact original source that produced this
	// node, delimiters and all. Concatenating a tree's RawText always
	// equals the input it was parsed from.
	RawText() string
}

// TextNode is a leaf holding an unprocessed run of free text.
type TextNode struct {
	Text string
}

func (n *TextNode) RawText() string { return n.Text }

// Class constrains legal nesting among tags (spec §3).
type Class int

const (
	ClassInline Class = iota
	ClassBlock
	ClassURL
)

func (c Class) String() string {
	switch c {
	case ClassBlock:
		return "block"
	case ClassURL:
		return "url"
	default:
		return "inline"
	}
}

// Pair re-exports the attribute pair shape so callers of this package never
// need to import attr directly.
type Pair struct {
	Key   string
	Value string
}

// Tag is a parsed `[name...]...[/name]` node, a short-tag, or a single tag.
// Fields mirror spec §3's data model field-for-field, plus the unexported
// bookkeeping RawText reconstruction needs.
type Tag struct {
	Name         string
	Attributes   []Pair
	AttributeRaw string
	StartDelim   string
	EndDelim     string
	ChildNodes   []Node
	ClosedFlag   bool
	SingleFlag   bool
	ShortFlag    bool
	TagClass     Class
	Num          int

	// Unparsed is true when this tag instance has no effective definition
	// driving its render — either the name is unknown/forbidden, or its
	// attributes were rejected under strict_attributes. It renders
	// transparently regardless of ClosedFlag (spec §4.3, §4.5).
	Unparsed bool

	// closeLiteral is the exact "[/name]" text when an explicit close was
	// present in the source, and the closing "]" of a short tag with a
	// title (the title is its child text); empty for single tags, short
	// tags without a title, unclosed EOF frames, and synthesized
	// auto-closes — none of which had literal text after their children
	// in the original input.
	closeLiteral string

	def *Definition
}

func (t *Tag) RawText() string {
	var b strings.Builder
	b.WriteString(t.StartDelim)
	b.WriteString(t.AttributeRaw)
	b.WriteString(t.EndDelim)
	for _, c := range t.ChildNodes {
		b.WriteString(c.RawText())
	}
	b.WriteString(t.closeLiteral)
	return b.String()
}

// GetNum returns the per-name occurrence counter assigned at parse time.
func (t *Tag) GetNum() int { return t.Num }

// GetName returns the tag's name.
func (t *Tag) GetName() string { return t.Name }

// GetAttr returns the ordered attribute list; Attributes[0].Key == "" always.
func (t *Tag) GetAttr() []Pair { return t.Attributes }

// GetContent returns the tag's raw, unrendered content: its children's
// concatenated RawText.
func (t *Tag) GetContent() string {
	var b strings.Builder
	for _, c := range t.ChildNodes {
		b.WriteString(c.RawText())
	}
	return b.String()
}

// GetChildren returns the tag's immediate child nodes.
func (t *Tag) GetChildren() []Node { return t.ChildNodes }

// Tree is the root-level result of a parse: an ordered list of Nodes.
type Tree []Node

// RawText reconstructs the original input a Tree was parsed from.
func (t Tree) RawText() string {
	var b strings.Builder
	for _, n := range t {
		b.WriteString(n.RawText())
	}
	return b.String()
}
