package attr

import "github.com/Drolfothesgnir/bbcode/cursor"

type dialectParser struct {
	opts Options
}

// Parse implements Parser. It is the pluggable entry-point spec §4.2
// describes as (text_cursor, tag_name) → (valid, attributes, raw, closer).
func (p *dialectParser) Parse(c *cursor.Cursor, tagName string) Result {
	input := c.Input
	start := c.Pos

	attrs, endPos, ok := tryParseAttrs(input, start, p.opts)

	if ok {
		raw := input[start:endPos]
		c.Pos = endPos + 1 // consume the ']'
		return Result{
			Valid:      true,
			Attributes: attrs,
			Raw:        raw,
			Closer:     "]",
		}
	}

	// Failure recovery: skip to the next ']' (or EOF).
	closeIdx := -1
	for i := start; i < len(input); i++ {
		if input[i] == ']' {
			closeIdx = i
			break
		}
	}

	if closeIdx == -1 {
		c.Pos = len(input)
		return Result{
			Valid:      false,
			Attributes: []Pair{{}},
			Raw:        input[start:],
			Closer:     "",
		}
	}

	c.Pos = closeIdx + 1
	return Result{
		Valid:      false,
		Attributes: []Pair{{}},
		Raw:        input[start:closeIdx],
		Closer:     "]",
	}
}

// tryParseAttrs attempts to match the configured dialect's grammar starting
// at pos. On success it returns the parsed pairs and the index of the
// (not yet consumed) closing ']'.
func tryParseAttrs(input string, pos int, opts Options) (attrs []Pair, endPos int, ok bool) {
	n := len(input)
	p := pos

	fallback := Pair{}

	if opts.Direct {
		if p < n && input[p] == '=' {
			val, np, vok := scanValue(input, p+1, opts)
			if !vok {
				return nil, 0, false
			}
			fallback.Value = val
			p = np
		}
	}

	attrs = []Pair{fallback}

	for {
		wsStart := p
		for p < n && isSpace(input[p]) {
			p++
		}
		sawSpace := p > wsStart

		if p < n && input[p] == ']' {
			return attrs, p, true
		}

		if p >= n {
			return nil, 0, false
		}

		if !sawSpace {
			// Grammar requires WS before every named pair.
			return nil, 0, false
		}

		key, np, kok := scanKey(input, p)
		if !kok {
			return nil, 0, false
		}
		p = np

		if p >= n || input[p] != '=' {
			return nil, 0, false
		}
		p++

		val, np2, vok := scanValue(input, p, opts)
		if !vok {
			return nil, 0, false
		}
		p = np2

		attrs = append(attrs, Pair{Key: key, Value: val})
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func isKeyStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isKeyRune(b byte) bool {
	return isKeyStart(b) || (b >= '0' && b <= '9') || b == '-'
}

// scanKey matches [A-Za-z_][A-Za-z0-9_\-]*.
func scanKey(input string, pos int) (key string, newPos int, ok bool) {
	n := len(input)
	if pos >= n || !isKeyStart(input[pos]) {
		return "", pos, false
	}
	end := pos + 1
	for end < n && isKeyRune(input[end]) {
		end++
	}
	return input[pos:end], end, true
}

// scanValue matches a quoted or unquoted attribute value.
func scanValue(input string, pos int, opts Options) (value string, newPos int, ok bool) {
	n := len(input)
	if pos >= n {
		return "", pos, false
	}

	if opts.isQuote(input[pos]) {
		quote := input[pos]
		closeIdx := -1
		for i := pos + 1; i < n; i++ {
			if input[i] == quote {
				closeIdx = i
				break
			}
		}
		if closeIdx == -1 {
			return "", pos, false
		}
		return input[pos+1 : closeIdx], closeIdx + 1, true
	}

	end := pos
	for end < n && !isSpace(input[end]) && input[end] != ']' {
		end++
	}
	if end == pos {
		return "", pos, false
	}
	return input[pos:end], end, true
}
