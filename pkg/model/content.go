package model

import (
	"fmt"
	"strings"
	"unicode"
)

// ContentExpr is a compiled content grammar such as "paragraph block*" or
// "(ordered_list | bullet_list)+". Group names are expanded to the kinds
// that belong to them when the expression is compiled.
type ContentExpr struct {
	source string
	terms  []contentTerm
}

type contentTerm struct {
	kinds []string
	min   int
	max   int // -1 for unbounded
}

func (t contentTerm) allows(kind string) bool {
	for _, k := range t.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// compileContent parses expr. resolve maps a kind or group name to the kinds
// it stands for and reports whether the name is known.
func compileContent(expr string, resolve func(string) ([]string, bool)) (*ContentExpr, error) {
	tokens := tokenizeContent(expr)
	ce := &ContentExpr{source: strings.TrimSpace(expr)}

	for pos := 0; pos < len(tokens); {
		var names []string
		switch tok := tokens[pos]; tok {
		case "(":
			pos++
			for {
				if pos >= len(tokens) {
					return nil, fmt.Errorf("unclosed group in content expression %q", expr)
				}
				if !isContentName(tokens[pos]) {
					return nil, fmt.Errorf("unexpected %q in content expression %q", tokens[pos], expr)
				}
				names = append(names, tokens[pos])
				pos++
				if pos < len(tokens) && tokens[pos] == "|" {
					pos++
					continue
				}
				if pos < len(tokens) && tokens[pos] == ")" {
					pos++
					break
				}
				return nil, fmt.Errorf("expected '|' or ')' in content expression %q", expr)
			}
		default:
			if !isContentName(tok) {
				return nil, fmt.Errorf("unexpected %q in content expression %q", tok, expr)
			}
			names = []string{tok}
			pos++
		}

		term := contentTerm{min: 1, max: 1}
		if pos < len(tokens) {
			switch tokens[pos] {
			case "*":
				term.min, term.max = 0, -1
				pos++
			case "+":
				term.min, term.max = 1, -1
				pos++
			case "?":
				term.min, term.max = 0, 1
				pos++
			}
		}

		for _, name := range names {
			kinds, ok := resolve(name)
			if !ok {
				return nil, fmt.Errorf("no node kind or group %q found (in content expression %q)", name, expr)
			}
			for _, k := range kinds {
				if !term.allows(k) {
					term.kinds = append(term.kinds, k)
				}
			}
		}
		ce.terms = append(ce.terms, term)
	}

	return ce, nil
}

func tokenizeContent(expr string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range expr {
		switch {
		case unicode.IsSpace(r):
			flush()
		case strings.ContainsRune("()|*+?", r):
			flush()
			tokens = append(tokens, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func isContentName(tok string) bool {
	return tok != "" && !strings.ContainsAny(tok, "()|*+?")
}

// String returns the source expression.
func (e *ContentExpr) String() string {
	return e.source
}

// IsLeaf reports whether the expression admits no content at all.
func (e *ContentExpr) IsLeaf() bool {
	return len(e.terms) == 0
}

// Allows reports whether kind may appear anywhere in the content.
func (e *ContentExpr) Allows(kind string) bool {
	for _, t := range e.terms {
		if t.allows(kind) {
			return true
		}
	}
	return false
}

// Matches reports whether the sequence of kinds satisfies the grammar.
func (e *ContentExpr) Matches(kinds []string) bool {
	return matchTerms(e.terms, kinds)
}

func matchTerms(terms []contentTerm, kinds []string) bool {
	if len(terms) == 0 {
		return len(kinds) == 0
	}
	t := terms[0]
	n := 0
	for n < len(kinds) && (t.max < 0 || n < t.max) && t.allows(kinds[n]) {
		n++
	}
	for c := n; c >= t.min; c-- {
		if matchTerms(terms[1:], kinds[c:]) {
			return true
		}
	}
	return false
}

// Fill walks nodes against the grammar, inserting nodes made by create
// wherever a required term is missing. Nodes that cannot be placed end the
// walk and are returned as dropped.
func (e *ContentExpr) Fill(nodes []*Node, create func(kind string) *Node) (filled, dropped []*Node) {
	i := 0
	for _, t := range e.terms {
		count := 0
		for i < len(nodes) && (t.max < 0 || count < t.max) && t.allows(nodes[i].Type) {
			filled = append(filled, nodes[i])
			i++
			count++
		}
		for ; count < t.min; count++ {
			if n := create(t.kinds[0]); n != nil {
				filled = append(filled, n)
			}
		}
	}
	if i < len(nodes) {
		dropped = nodes[i:]
	}
	return filled, dropped
}

// kinds lists every kind the expression mentions, in first-seen order.
func (e *ContentExpr) kinds() []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range e.terms {
		for _, k := range t.kinds {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}
