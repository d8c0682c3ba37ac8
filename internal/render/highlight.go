// Package render turns generated component source into display output:
// highlighted code, a sandboxed preview document, and markdown analysis.
package render

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// keywordSpans is applied in order after escaping.
var keywordSpans = []struct {
	token string
	class string
}{
	{"import", "text-pink-400"},
	{"const", "text-blue-400"},
	{"export", "text-pink-400"},
	{"return", "text-pink-400"},
	{"className=", "text-yellow-200"},
}

// Highlight escapes src and wraps every literal occurrence of a few
// keywords in colored spans. It is textual: matches inside strings,
// comments and longer identifiers ("constructor") are wrapped too.
func Highlight(src string) string {
	out := htmlEscaper.Replace(src)
	for _, kw := range keywordSpans {
		out = strings.ReplaceAll(out, kw.token, `<span class="`+kw.class+`">`+kw.token+`</span>`)
	}
	return out
}
