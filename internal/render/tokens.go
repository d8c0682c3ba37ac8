package render

import (
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Span classes produced by Tokenize.
const (
	ClassKeyword     = "keyword"
	ClassString      = "string"
	ClassNumber      = "number"
	ClassComment     = "comment"
	ClassName        = "name"
	ClassOperator    = "operator"
	ClassPunctuation = "punctuation"
	ClassText        = "text"
)

// Span is a run of source text with one classification.
type Span struct {
	Class string `json:"class"`
	Text  string `json:"text"`
}

var spanColors = map[string]string{
	ClassKeyword:     "text-pink-400",
	ClassString:      "text-green-300",
	ClassNumber:      "text-orange-300",
	ClassComment:     "text-slate-500",
	ClassName:        "text-blue-300",
	ClassOperator:    "text-yellow-200",
	ClassPunctuation: "text-slate-400",
}

func sourceLexer() chroma.Lexer {
	for _, name := range []string{"tsx", "typescript", "javascript"} {
		if l := lexers.Get(name); l != nil {
			return chroma.Coalesce(l)
		}
	}
	return chroma.Coalesce(lexers.Fallback)
}

func classify(t chroma.TokenType) string {
	switch {
	case t.InCategory(chroma.Keyword):
		return ClassKeyword
	case t.InSubCategory(chroma.LiteralString):
		return ClassString
	case t.InSubCategory(chroma.LiteralNumber):
		return ClassNumber
	case t.InCategory(chroma.Comment):
		return ClassComment
	case t.InCategory(chroma.Name):
		return ClassName
	case t.InCategory(chroma.Operator):
		return ClassOperator
	case t.InCategory(chroma.Punctuation):
		return ClassPunctuation
	default:
		return ClassText
	}
}

// Tokenize lexes src as TSX and returns classified spans. Adjacent tokens
// of the same class are merged. Concatenating the span texts yields src,
// possibly with a newline appended by the lexer.
func Tokenize(src string) []Span {
	it, err := sourceLexer().Tokenise(nil, src)
	if err != nil {
		return []Span{{Class: ClassText, Text: src}}
	}

	var spans []Span
	for tok := it(); tok != chroma.EOF; tok = it() {
		class := classify(tok.Type)
		if n := len(spans); n > 0 && spans[n-1].Class == class {
			spans[n-1].Text += tok.Value
			continue
		}
		spans = append(spans, Span{Class: class, Text: tok.Value})
	}
	return spans
}

// HighlightTokens renders Tokenize output as HTML. Each span is escaped on
// its own, so keywords inside strings or comments stay uncolored.
func HighlightTokens(src string) string {
	var b strings.Builder
	for _, span := range Tokenize(src) {
		text := html.EscapeString(span.Text)
		color, ok := spanColors[span.Class]
		if !ok {
			b.WriteString(text)
			continue
		}
		b.WriteString(`<span class="`)
		b.WriteString(color)
		b.WriteString(`">`)
		b.WriteString(text)
		b.WriteString(`</span>`)
	}
	return b.String()
}

// Highlighter names accepted by HighlightWith.
const (
	HighlighterNaive  = "naive"
	HighlighterChroma = "chroma"
)

// HighlightWith dispatches on a highlighter name; unknown names use the
// naive highlighter.
func HighlightWith(name, src string) string {
	if name == HighlighterChroma {
		return HighlightTokens(src)
	}
	return Highlight(src)
}
