package outline

import (
	"strings"

	"github.com/leapstack-labs/xamlnav/pkg/token"
)

// scanner walks a document line by line with a (line, column) cursor and
// feeds tag events to a builder.
type scanner struct {
	lines []string
	line  int
	col   int
	b     builder
}

func newScanner(text string) *scanner {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return &scanner{lines: lines}
}

// eof is the position just past the last character of the document.
func (s *scanner) eof() token.Position {
	last := len(s.lines) - 1
	return token.Position{Line: last, Column: len(s.lines[last])}
}

func (s *scanner) done() bool {
	return s.line >= len(s.lines)
}

// seek moves the cursor. A column past the end of its line is handled by run.
func (s *scanner) seek(p token.Position) {
	s.line, s.col = p.Line, p.Column
}

// run scans the whole document and returns the materialized forest.
func (s *scanner) run() Forest {
	for !s.done() {
		text := s.lines[s.line]
		if s.col >= len(text) {
			s.line++
			s.col = 0
			continue
		}

		i := strings.IndexByte(text[s.col:], '<')
		if i < 0 {
			s.line++
			s.col = 0
			continue
		}
		start := token.Position{Line: s.line, Column: s.col + i}
		rest := text[start.Column+1:]

		switch {
		case strings.HasPrefix(rest, "!--"):
			s.skipPast(token.Position{Line: start.Line, Column: start.Column + 4}, "-->")
		case strings.HasPrefix(rest, "?"):
			s.skipPast(token.Position{Line: start.Line, Column: start.Column + 2}, "?>")
		case strings.HasPrefix(rest, "!"):
			s.skipPast(token.Position{Line: start.Line, Column: start.Column + 2}, ">")
		case strings.HasPrefix(rest, "/"):
			s.endTag(start)
		default:
			s.startTag(start)
		}
	}
	return s.b.finish(s.eof())
}

// skipPast moves the cursor just past the next occurrence of marker at or
// after from. An unterminated construct swallows the rest of the document.
func (s *scanner) skipPast(from token.Position, marker string) {
	for line := from.Line; line < len(s.lines); line++ {
		col := 0
		if line == from.Line {
			col = min(from.Column, len(s.lines[line]))
		}
		if j := strings.Index(s.lines[line][col:], marker); j >= 0 {
			s.seek(token.Position{Line: line, Column: col + j + len(marker)})
			return
		}
	}
	s.line = len(s.lines)
}

// findTagEnd looks for the '>' that terminates a tag opened before from.
// A '>' inside a quoted attribute value does not count, but quotes never
// span lines: a line that ends with a quote still open is cut at its first
// '>', so one unbalanced quote cannot swallow the siblings that follow.
// It returns the text between from and the '>' (lines joined with "\n"),
// the position just past the '>', and whether one was found before the end
// of the document.
func (s *scanner) findTagEnd(from token.Position) (string, token.Position, bool) {
	var sb strings.Builder

	for line := from.Line; line < len(s.lines); line++ {
		text := s.lines[line]
		col := 0
		if line == from.Line {
			col = min(from.Column, len(text))
		} else {
			sb.WriteByte('\n')
		}

		var quote byte
		firstGT := -1
		for j := col; j < len(text); j++ {
			c := text[j]
			if c == '>' && firstGT < 0 {
				firstGT = j
			}
			switch {
			case quote != 0:
				if c == quote {
					quote = 0
				}
			case c == '"' || c == '\'':
				quote = c
			case c == '>':
				sb.WriteString(text[col:j])
				return sb.String(), token.Position{Line: line, Column: j + 1}, true
			}
		}
		if quote != 0 && firstGT >= 0 {
			sb.WriteString(text[col:firstGT])
			return sb.String(), token.Position{Line: line, Column: firstGT + 1}, true
		}
		sb.WriteString(text[col:])
	}
	return sb.String(), s.eof(), false
}

// startTag handles '<Name ...>' and '<Name .../>'.
func (s *scanner) startTag(start token.Position) {
	text := s.lines[start.Line]
	nameStart := start.Column + 1
	nameEnd := scanName(text, nameStart)
	if nameEnd == nameStart {
		// A bare '<' in text content.
		s.seek(token.Position{Line: start.Line, Column: nameStart})
		return
	}

	tag := text[nameStart:nameEnd]
	nameSpan := token.Span{
		Start: token.Position{Line: start.Line, Column: nameStart},
		End:   token.Position{Line: start.Line, Column: nameEnd},
	}

	raw, end, found := s.findTagEnd(token.Position{Line: start.Line, Column: nameEnd})
	selfClosing := found && strings.HasSuffix(raw, "/")
	if selfClosing {
		raw = strings.TrimSuffix(raw, "/")
	}

	s.b.open(tag, raw, start, nameSpan, end, selfClosing)
	if !found {
		s.line = len(s.lines)
		return
	}
	s.seek(end)
}

// endTag handles '</Name>'.
func (s *scanner) endTag(start token.Position) {
	text := s.lines[start.Line]
	nameStart := start.Column + 2
	nameEnd := scanName(text, nameStart)
	tag := text[nameStart:nameEnd]

	_, end, found := s.findTagEnd(token.Position{Line: start.Line, Column: nameEnd})
	if tag != "" {
		s.b.close(tag, start, end)
	}
	if !found {
		s.line = len(s.lines)
		return
	}
	s.seek(end)
}

// scanName returns the end of the identifier starting at i, or i when there
// is none. Identifiers start with a letter or '_' and continue with letters,
// digits, '.', ':', '_' or '-'.
func scanName(text string, i int) int {
	if i >= len(text) || !isNameStart(text[i]) {
		return i
	}
	j := i + 1
	for j < len(text) && isNameChar(text[j]) {
		j++
	}
	return j
}

func isNameStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || ('0' <= c && c <= '9') || c == '.' || c == ':' || c == '-'
}
