package icinga

import (
	"fmt"
	"regexp"
	"strings"
)

// ParseError reports a syntax problem with file and line context.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

var (
	// object Host "web1" {  |  object TimePeriod {
	// An optional inline body and closing brace on the header line are
	// captured so one-line definitions parse.
	objectHeaderRe = regexp.MustCompile(`^object\s+([A-Za-z_][A-Za-z0-9_]*)\s*(?:"([^"]*)"\s*)?\{\s*(.*?)\s*(\})?\s*$`)
	importRe       = regexp.MustCompile(`^import\s+"([^"]*)"$`)
)

// Parse parses Icinga2 object-definition text into a Document.
// Text outside object blocks is skipped. Unbalanced braces and malformed
// object headers yield a *ParseError.
func Parse(data []byte, filename string) (*Document, error) {
	p := &parser{file: filename}
	return p.parse(strings.Split(string(data), "\n"))
}

type parser struct {
	file string
	line int

	doc     *Document
	cur     *Object // object being built, nil at top level
	curLine int     // line the current object header was on

	// pending multi-line attribute value
	pendKey   string
	pendVal   []string
	pendDepth int
}

func (p *parser) errf(format string, args ...any) *ParseError {
	return &ParseError{File: p.file, Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parse(lines []string) (*Document, error) {
	p.doc = &Document{}

	for i, raw := range lines {
		p.line = i + 1
		line := strings.TrimSpace(raw)

		if p.cur == nil {
			if err := p.topLevel(line); err != nil {
				return nil, err
			}
			continue
		}

		if p.pendDepth > 0 {
			if err := p.continuation(raw); err != nil {
				return nil, err
			}
			continue
		}

		if err := p.body(line); err != nil {
			return nil, err
		}
	}

	if p.cur != nil {
		return nil, &ParseError{
			File: p.file,
			Line: p.curLine,
			Msg:  fmt.Sprintf("unclosed object %s %q: missing }", p.cur.Kind, p.cur.Name),
		}
	}
	return p.doc, nil
}

// topLevel handles a line outside any object block. Only object headers are
// recognized; comments, blank lines, and unsupported constructs are skipped.
func (p *parser) topLevel(line string) error {
	if line == "" || isComment(line) {
		return nil
	}
	if !strings.HasPrefix(line, "object") {
		return nil
	}
	if rest := line[len("object"):]; rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		// identifier merely starting with "object", e.g. a skipped template
		return nil
	}

	m := objectHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return p.errf("malformed object header: %s", line)
	}

	p.cur = &Object{Kind: m[1], Name: m[2]}
	p.curLine = p.line

	if inline := m[3]; inline != "" {
		if err := p.body(inline); err != nil {
			return err
		}
	}
	if m[4] == "}" {
		if p.pendDepth > 0 {
			return p.errf("unbalanced braces in value for %q", p.pendKey)
		}
		p.close()
	}
	return nil
}

// body handles a single statement inside an object block.
func (p *parser) body(line string) error {
	switch {
	case line == "" || isComment(line):
	case line == "}":
		p.close()
	case importRe.MatchString(line):
		m := importRe.FindStringSubmatch(line)
		p.cur.AddImport(m[1])
	default:
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			// unsupported statement inside an object; dropped like other
			// out-of-scope syntax
			return nil
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if key == "" {
			return p.errf("attribute with empty key")
		}
		switch d := braceDelta(val); {
		case d < 0:
			return p.errf("unbalanced braces in value for %q", key)
		case d > 0:
			p.pendKey = key
			p.pendVal = []string{val}
			p.pendDepth = d
		default:
			p.cur.SetAttr(key, val)
		}
	}
	return nil
}

// continuation accumulates raw lines of a value whose braces have not closed
// yet. The raw line is kept verbatim so dictionary formatting survives.
func (p *parser) continuation(raw string) error {
	p.pendVal = append(p.pendVal, raw)
	p.pendDepth += braceDelta(raw)
	if p.pendDepth < 0 {
		return p.errf("unbalanced braces in value for %q", p.pendKey)
	}
	if p.pendDepth == 0 {
		p.cur.SetAttr(p.pendKey, strings.Join(p.pendVal, "\n"))
		p.pendKey = ""
		p.pendVal = nil
	}
	return nil
}

func (p *parser) close() {
	p.doc.Objects = append(p.doc.Objects, p.cur)
	p.cur = nil
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")
}

// braceDelta counts opening minus closing braces and brackets outside of
// double-quoted strings, so a "}" inside a quoted value never closes a block.
func braceDelta(s string) int {
	depth := 0
	inQuote := false
	escaped := false
	for _, r := range s {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inQuote {
				escaped = true
			}
		case '"':
			inQuote = !inQuote
		case '{', '[':
			if !inQuote {
				depth++
			}
		case '}', ']':
			if !inQuote {
				depth--
			}
		}
	}
	return depth
}
