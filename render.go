package bbcode

import (
	"strings"

	"github.com/Drolfothesgnir/bbcode/escape"
	"github.com/Drolfothesgnir/bbcode/textproc"
)

// renderer walks a Tree depth-first, post-order (spec §4.5).
type renderer struct {
	p *Parser
}

func (r *renderer) renderNodes(nodes []Node, info Info) string {
	var b strings.Builder
	for _, n := range nodes {
		switch v := n.(type) {
		case *TextNode:
			ctx := textproc.Context{TagCounts: info.Tags, ClassCounts: info.Classes}
			b.WriteString(r.p.pipeline.Process(v.Text, ctx))
		case *Tag:
			b.WriteString(r.renderTag(v, info))
		}
	}
	return b.String()
}

// descend returns the ancestry Info a tag's children see: itself folded in.
func (info Info) descend(name string, class Class) Info {
	tags := make(map[string]int, len(info.Tags)+1)
	for k, v := range info.Tags {
		tags[k] = v
	}
	tags[name]++

	classes := make(map[string]int, len(info.Classes)+1)
	for k, v := range info.Classes {
		classes[k] = v
	}
	classes[class.String()]++

	stack := make([]string, len(info.Stack)+1)
	copy(stack, info.Stack)
	stack[len(info.Stack)] = name

	return Info{Tags: tags, Stack: stack, Classes: classes}
}

func (r *renderer) renderTag(t *Tag, info Info) string {
	childInfo := info.descend(t.Name, t.TagClass)

	if t.Unparsed || !t.ClosedFlag {
		children := r.renderNodes(t.ChildNodes, childInfo)
		return t.StartDelim + t.AttributeRaw + t.EndDelim + children + t.closeLiteral
	}

	fallback := ""
	if len(t.Attributes) > 0 {
		fallback = t.Attributes[0].Value
	}

	var content string
	if t.def.Parse {
		content = r.renderNodes(t.ChildNodes, childInfo)
	} else {
		content = t.GetContent()
	}

	switch out := t.def.Output.(type) {
	case Callback:
		ctx := &CallbackContext{
			Parser:   r.p,
			Fallback: fallback,
			Content:  content,
			Tag:      t,
			Info:     info,
		}
		return out(ctx)
	case TemplateOutput:
		return r.interpretTemplate(string(out), t, content, fallback, childInfo)
	default:
		return ""
	}
}

// classCounts recovers the scanner's per-class nesting counters from an
// Info's rendered-ancestry view, so a directive that re-scans a tag's
// content can seed a new scanner with the same nesting-class state the
// original single-pass scan already had at this point in the tree.
func classCounts(info Info) map[Class]int {
	return map[Class]int{
		ClassInline: info.Classes[ClassInline.String()],
		ClassBlock:  info.Classes[ClassBlock.String()],
		ClassURL:    info.Classes[ClassURL.String()],
	}
}

// interpretTemplate evaluates the directive grammar of spec §4.5: %s, %a,
// %A, and their %{name}-qualified forms, with literal %% escaping. info is
// the ancestry the tag's own content is nested under, self included.
func (r *renderer) interpretTemplate(tpl string, t *Tag, content, fallback string, info Info) string {
	var b strings.Builder
	n := len(tpl)
	i := 0

	for i < n {
		c := tpl[i]
		if c != '%' {
			b.WriteByte(c)
			i++
			continue
		}

		if i+1 >= n {
			b.WriteByte('%')
			i++
			continue
		}

		if tpl[i+1] == '%' {
			b.WriteByte('%')
			i += 2
			continue
		}

		j := i + 1
		escName := ""
		if tpl[j] == '{' {
			close := strings.IndexByte(tpl[j:], '}')
			if close == -1 {
				b.WriteByte('%')
				i++
				continue
			}
			escName = tpl[j+1 : j+close]
			j += close + 1
		}

		if j >= n {
			b.WriteByte('%')
			i++
			continue
		}

		directive := tpl[j]
		j++

		switch directive {
		case 's':
			switch escName {
			case "parse":
				tree := r.p.parseNested(t.GetContent(), classCounts(info))
				b.WriteString(r.renderNodes(tree, info))
			case "html":
				b.WriteString(escape.HTML(t.GetContent()))
			case "noescape":
				b.WriteString(t.GetContent())
			default:
				b.WriteString(content)
			}
		case 'a':
			name := escName
			if name == "" {
				name = "html"
			}
			b.WriteString(r.p.opts.escapes.Apply(name, fallback))
		case 'A':
			val := fallback
			if val == "" {
				val = t.GetContent()
			}
			name := escName
			if name == "" {
				name = "html"
			}
			b.WriteString(r.p.opts.escapes.Apply(name, val))
		default:
			b.WriteByte('%')
			i++
			continue
		}

		i = j
	}

	return b.String()
}
