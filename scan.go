package bbcode

import (
	"strings"

	"github.com/Drolfothesgnir/bbcode/attr"
	"github.com/Drolfothesgnir/bbcode/cursor"
)

// frame is one entry of the scanner's open-tag stack (spec §4.3). The root
// frame has a nil tag and collects the tree's top-level nodes.
type frame struct {
	tag   *Tag
	class Class
	nodes []Node
}

// scanner implements the single-pass recursive-descent scanner of spec
// §4.3, grounded on markup's byte-cursor loop and explicit stack[T], but
// iterative rather than recursive so a close-tag match against a lower
// stack frame can unwind several open tags in one step.
type scanner struct {
	p   *Parser
	cur *cursor.Cursor

	stack       []*frame
	classCounts map[Class]int
	nameNum     map[string]int

	errors  []string
	errSeen map[string]bool
}

func newScanner(p *Parser, input string) *scanner {
	root := &frame{class: ClassInline}
	return &scanner{
		p:           p,
		cur:         cursor.New(input),
		stack:       []*frame{root},
		classCounts: map[Class]int{},
		nameNum:     map[string]int{},
		errSeen:     map[string]bool{},
	}
}

func (s *scanner) top() *frame { return s.stack[len(s.stack)-1] }

func (s *scanner) push(f *frame) {
	s.stack = append(s.stack, f)
	s.classCounts[f.class]++
}

func (s *scanner) pop() *frame {
	f := s.top()
	s.stack = s.stack[:len(s.stack)-1]
	s.classCounts[f.class]--
	return f
}

func (s *scanner) appendNode(n Node) {
	top := s.top()
	top.nodes = append(top.nodes, n)
}

func (s *scanner) appendText(text string) {
	if text == "" {
		return
	}
	s.appendNode(&TextNode{Text: text})
}

func (s *scanner) recordError(name string) {
	if s.errSeen[name] {
		return
	}
	s.errSeen[name] = true
	s.errors = append(s.errors, name)
}

func (s *scanner) nextNum(name string) int {
	n := s.nameNum[name]
	s.nameNum[name] = n + 1
	return n
}

// run drives the scan to completion and returns the finished tree.
func (s *scanner) run() Tree {
	for !s.cur.Done() {
		s.step()
	}

	// EOF: unwind every still-open frame, innermost first.
	for len(s.stack) > 1 {
		f := s.pop()
		f.tag.ChildNodes = f.nodes
		f.tag.ClosedFlag = s.p.opts.closeOpenTags
		f.tag.closeLiteral = ""
		s.recordError(f.tag.Name)
		s.appendNode(f.tag)
	}

	return Tree(s.top().nodes)
}

func (s *scanner) step() {
	idx := s.cur.IndexFrom('[')
	if idx == -1 {
		if !s.cur.Done() {
			s.appendText(s.cur.Rest())
			s.cur.Pos = len(s.cur.Input)
		}
		return
	}
	if idx > s.cur.Pos {
		s.appendText(s.cur.Input[s.cur.Pos:idx])
	}
	s.cur.Pos = idx
	s.handleBracket()
}

func (s *scanner) handleBracket() {
	idx := s.cur.Pos

	if s.cur.PeekByteAt(1) == '/' {
		s.handleCloseTag(idx)
		return
	}

	name, nameEnd, ok := scanName(s.cur.Input, idx+1)
	if !ok {
		s.appendText("[")
		s.cur.Pos = idx + 1
		return
	}

	def, ok2 := s.p.lookup(name)
	isShortAttempt := strings.HasPrefix(s.cur.Input[nameEnd:], "://")

	if isShortAttempt && ok2 && def.Short {
		s.handleShortTag(idx, name, nameEnd, def)
		return
	}

	if ok2 && !def.Classic {
		s.appendText("[")
		s.cur.Pos = idx + 1
		return
	}

	s.handleClassicOpen(idx, name, nameEnd, def, ok2)
}

// handleCloseTag processes a "[/name]" token found at idx.
func (s *scanner) handleCloseTag(idx int) {
	name, end, ok := scanName(s.cur.Input, idx+2)
	if !ok || end >= len(s.cur.Input) || s.cur.Input[end] != ']' {
		s.appendText("[")
		s.cur.Pos = idx + 1
		return
	}

	literal := s.cur.Input[idx : end+1]
	targetIdx := s.findFrame(name)

	if targetIdx == -1 {
		s.appendText(literal)
		s.cur.Pos = end + 1
		return
	}

	if targetIdx == len(s.stack)-1 {
		f := s.pop()
		f.tag.ClosedFlag = true
		f.tag.closeLiteral = trimTrailingNewline(f, literal, s.p.opts.stripLinebreaks)
		f.tag.ChildNodes = f.nodes
		s.appendNode(f.tag)
		s.cur.Pos = end + 1
		return
	}

	if !s.p.opts.closeOpenTags {
		s.appendText(literal)
		s.cur.Pos = end + 1
		return
	}

	for len(s.stack)-1 > targetIdx {
		f := s.pop()
		f.tag.ChildNodes = f.nodes
		f.tag.ClosedFlag = true
		f.tag.closeLiteral = ""
		s.recordError(f.tag.Name)
		s.appendNode(f.tag)
	}
	f := s.pop()
	f.tag.ClosedFlag = true
	f.tag.closeLiteral = trimTrailingNewline(f, literal, s.p.opts.stripLinebreaks)
	f.tag.ChildNodes = f.nodes
	s.appendNode(f.tag)
	s.cur.Pos = end + 1
}

// findFrame returns the stack index (>=1) of the innermost open frame named
// name, or -1 if none is open.
func (s *scanner) findFrame(name string) int {
	for i := len(s.stack) - 1; i >= 1; i-- {
		if s.stack[i].tag.Name == name {
			return i
		}
	}
	return -1
}

// prepareOpen enforces the nesting-class policy of spec §4.3 before a node
// of the given class becomes a new sibling at the current level. It reports
// refused=true when the node must be emitted as literal text instead.
func (s *scanner) prepareOpen(class Class) (refused bool) {
	if class == ClassURL && s.classCounts[ClassURL] > 0 {
		return true
	}

	if class == ClassBlock && s.classCounts[ClassInline] > 0 {
		if !s.p.opts.closeOpenTags {
			return true
		}
		for len(s.stack) > 1 && s.top().class == ClassInline {
			f := s.pop()
			f.tag.ChildNodes = f.nodes
			f.tag.ClosedFlag = true
			f.tag.closeLiteral = ""
			s.recordError(f.tag.Name)
			s.appendNode(f.tag)
		}
		return false
	}

	return false
}

func (s *scanner) handleClassicOpen(idx int, name string, nameEnd int, def *Definition, ok2 bool) {
	s.cur.Pos = nameEnd
	res := s.p.attrParser.Parse(s.cur, name)

	if res.Closer == "" {
		s.appendText(s.cur.Input[idx:])
		return
	}

	headEnd := s.cur.Pos
	unparsedAttrs := !res.Valid && s.p.opts.strictAttributes
	unparsed := !ok2 || unparsedAttrs

	class := ClassInline
	if ok2 {
		class = def.Class
	}

	if ok2 && def.Single {
		tag := &Tag{
			Name:         name,
			Attributes:   toPairs(res.Attributes),
			AttributeRaw: res.Raw,
			StartDelim:   "[" + name,
			EndDelim:     "]",
			ClosedFlag:   true,
			SingleFlag:   true,
			TagClass:     class,
			Num:          s.nextNum(name),
			Unparsed:     unparsed,
			def:          def,
		}
		if s.prepareOpen(class) {
			s.appendText(s.cur.Input[idx:headEnd])
			s.recordError(name)
			return
		}
		if unparsed {
			s.recordError(name)
		}
		s.appendNode(tag)
		return
	}

	if s.prepareOpen(class) {
		s.appendText(s.cur.Input[idx:headEnd])
		s.recordError(name)
		return
	}
	if unparsed {
		s.recordError(name)
	}

	tag := &Tag{
		Name:         name,
		Attributes:   toPairs(res.Attributes),
		AttributeRaw: res.Raw,
		StartDelim:   "[" + name,
		EndDelim:     "]",
		TagClass:     class,
		Num:          s.nextNum(name),
		Unparsed:     unparsed,
		def:          def,
	}

	if s.p.opts.stripLinebreaks && class == ClassBlock && s.cur.PeekByte() == '\n' {
		tag.EndDelim += "\n"
		s.cur.Advance(1)
	}

	if ok2 && !def.Parse {
		body, literal, matched := scanVerbatim(s.cur, name)
		if s.p.opts.stripLinebreaks && class == ClassBlock && strings.HasSuffix(body, "\n") && matched {
			body = body[:len(body)-1]
			literal = "\n" + literal
		}
		tag.ChildNodes = []Node{&TextNode{Text: body}}
		tag.ClosedFlag = matched
		tag.closeLiteral = literal
		if !matched {
			s.recordError(name)
		}
		s.appendNode(tag)
		return
	}

	s.push(&frame{tag: tag, class: class})
}

func (s *scanner) handleShortTag(idx int, name string, nameEnd int, def *Definition) {
	pos := nameEnd + len("://")
	bodyStart := pos
	n := len(s.cur.Input)

	sepIdx, closeIdx := -1, -1
	for i := pos; i < n; i++ {
		c := s.cur.Input[i]
		if c == '|' && sepIdx == -1 {
			sepIdx = i
		}
		if c == ']' {
			closeIdx = i
			break
		}
	}

	if closeIdx == -1 {
		s.appendText("[")
		s.cur.Pos = idx + 1
		return
	}

	var body, title, startDelim, endDelim, closeLiteral string
	hasTitle := sepIdx != -1 && sepIdx < closeIdx
	if hasTitle {
		body = s.cur.Input[bodyStart:sepIdx]
		title = s.cur.Input[sepIdx+1 : closeIdx]
		startDelim = s.cur.Input[idx : sepIdx+1]
		// The title child sits between '|' and ']', so the ']' is emitted
		// after it for RawText to reproduce the source order.
		closeLiteral = "]"
	} else {
		body = s.cur.Input[bodyStart:closeIdx]
		startDelim = s.cur.Input[idx:closeIdx]
		endDelim = "]"
	}

	if s.prepareOpen(def.Class) {
		s.appendText(s.cur.Input[idx : closeIdx+1])
		s.recordError(name)
		s.cur.Pos = closeIdx + 1
		return
	}

	tag := &Tag{
		Name:         name,
		Attributes:   []Pair{{Key: "", Value: body}},
		StartDelim:   startDelim,
		EndDelim:     endDelim,
		ClosedFlag:   true,
		SingleFlag:   def.Single,
		ShortFlag:    true,
		TagClass:     def.Class,
		Num:          s.nextNum(name),
		closeLiteral: closeLiteral,
		def:          def,
	}
	if hasTitle {
		tag.ChildNodes = []Node{&TextNode{Text: title}}
	}

	s.appendNode(tag)
	s.cur.Pos = closeIdx + 1
}

// scanVerbatim implements the parse=false ("noparse"/"code") content rule:
// copy input as-is up to the first occurrence of "[/name]".
func scanVerbatim(cur *cursor.Cursor, name string) (body, literal string, matched bool) {
	closer := "[/" + name + "]"
	idx := strings.Index(cur.Rest(), closer)
	if idx == -1 {
		body = cur.Rest()
		cur.Pos = len(cur.Input)
		return body, "", false
	}
	body = cur.Input[cur.Pos : cur.Pos+idx]
	cur.Pos += idx + len(closer)
	return body, closer, true
}

// trimTrailingNewline implements the strip_linebreaks trailing half (spec
// §4.3): a single newline directly before "[/name]" moves out of the
// frame's last text child and into the close literal, so raw_text still
// reconstructs the original byte exactly.
func trimTrailingNewline(f *frame, literal string, enabled bool) string {
	if !enabled || f.class != ClassBlock || len(f.nodes) == 0 {
		return literal
	}
	last, ok := f.nodes[len(f.nodes)-1].(*TextNode)
	if !ok || !strings.HasSuffix(last.Text, "\n") {
		return literal
	}
	last.Text = last.Text[:len(last.Text)-1]
	if last.Text == "" {
		f.nodes = f.nodes[:len(f.nodes)-1]
	}
	return "\n" + literal
}

func toPairs(pairs []attr.Pair) []Pair {
	out := make([]Pair, len(pairs))
	for i, p := range pairs {
		out[i] = Pair{Key: p.Key, Value: p.Value}
	}
	return out
}

func isNameStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isNameChar(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9') || b == '-'
}

// scanName matches [A-Za-z_][A-Za-z0-9_\-]* at pos, the same grammar spec
// §4.2 uses for attribute keys, reused here for tag names.
func scanName(input string, pos int) (name string, end int, ok bool) {
	n := len(input)
	if pos >= n || !isNameStart(input[pos]) {
		return "", pos, false
	}
	end = pos + 1
	for end < n && isNameChar(input[end]) {
		end++
	}
	return input[pos:end], end, true
}
