package ops

import (
	"errors"
	"regexp"

	"github.com/dshills/editkit/internal/editor/buffer"
)

// ErrBadPattern is returned for an unparseable search pattern.
var ErrBadPattern = errors.New("ops: invalid search pattern")

// Query describes one search.
type Query struct {
	Pattern   string
	Regex     bool
	MatchCase bool
}

// Searcher is the text-search collaborator. FindAll returns every
// match span in ascending order. Expand computes the replacement text
// for one match from its original captured text, so capture-group
// substitution is evaluated per match rather than globally.
type Searcher interface {
	FindAll(snap *buffer.Snapshot, q Query) ([]buffer.Range, error)
	Expand(matchText string, q Query, template string) (string, error)
}

// RegexSearcher is the default Searcher, backed by the regexp package.
type RegexSearcher struct{}

// NewRegexSearcher creates the default searcher.
func NewRegexSearcher() *RegexSearcher {
	return &RegexSearcher{}
}

func (rs *RegexSearcher) compile(q Query) (*regexp.Regexp, error) {
	pat := q.Pattern
	if !q.Regex {
		pat = regexp.QuoteMeta(pat)
	}
	if !q.MatchCase {
		pat = "(?i)" + pat
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, ErrBadPattern
	}
	return re, nil
}

// FindAll returns all non-overlapping match spans.
func (rs *RegexSearcher) FindAll(snap *buffer.Snapshot, q Query) ([]buffer.Range, error) {
	if q.Pattern == "" {
		return nil, ErrBadPattern
	}
	re, err := rs.compile(q)
	if err != nil {
		return nil, err
	}
	idx := re.FindAllStringIndex(snap.Text(), -1)
	spans := make([]buffer.Range, 0, len(idx))
	for _, m := range idx {
		if m[0] == m[1] {
			continue
		}
		spans = append(spans, buffer.NewRange(buffer.ByteOffset(m[0]), buffer.ByteOffset(m[1])))
	}
	return spans, nil
}

// Expand rewrites one match. For a regex query the template may use
// $1, $2, or ${name} capture references; for a literal query it is
// returned verbatim.
func (rs *RegexSearcher) Expand(matchText string, q Query, template string) (string, error) {
	if !q.Regex {
		return template, nil
	}
	re, err := rs.compile(q)
	if err != nil {
		return "", err
	}
	m := re.FindStringSubmatchIndex(matchText)
	if m == nil {
		return template, nil
	}
	return string(re.ExpandString(nil, template, matchText, m)), nil
}

// ReplaceAll replaces every match of the query with the template. All
// replacements are staged in one transaction: if any single one fails,
// zero replacements are applied. Returns the number of replacements
// performed.
func (o *Operations) ReplaceAll(q Query, template string) (int, Status) {
	snap := o.buf.Current()
	spans, err := o.search.FindAll(snap, q)
	if err != nil {
		return 0, Failed
	}
	if len(spans) == 0 {
		return 0, NoOp
	}

	type repl struct {
		span buffer.Range
		text string
	}
	repls := make([]repl, 0, len(spans))
	for _, span := range spans {
		matched := snap.TextRange(span.Start, span.End)
		text, err := o.search.Expand(matched, q, template)
		if err != nil {
			return 0, Failed
		}
		repls = append(repls, repl{span: span, text: text})
	}

	e := o.begin("replace all")
	defer e.tx.Release()
	for _, r := range repls {
		if !e.tx.Replace(r.span, r.text) {
			return 0, e.fail()
		}
	}
	st := e.apply(nil)
	if st != Done {
		return 0, st
	}
	return len(repls), Done
}

// Find returns all match spans for the query without editing.
func (o *Operations) Find(q Query) ([]buffer.Range, error) {
	return o.search.FindAll(o.buf.Current(), q)
}
