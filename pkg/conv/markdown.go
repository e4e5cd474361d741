package conv

import (
	"html"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = mdhtml.CommonFlags | mdhtml.HrefTargetBlank
	tgPolicy   = bluemonday.NewPolicy()
)

func init() {
	// Allowed tags https://core.telegram.org/bots/api#html-style
	tgPolicy.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	tgPolicy.AllowAttrs("href").OnElements("a")
	tgPolicy.AllowAttrs("class").OnElements("code")
}

func MarkdownToTelegramHTML(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: htmlFlags})
	unsafeHTML := markdown.Render(p.Parse(md), renderer)

	return string(tgPolicy.SanitizeBytes(unsafeHTML))
}

// AnswerToTelegramHTML renders an answer body followed by its citations,
// each citation as its own blockquote.
func AnswerToTelegramHTML(answer string, sources []string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(MarkdownToTelegramHTML([]byte(answer))))

	if len(sources) > 0 {
		b.WriteString("\n\n<b>Sources</b>\n")
		for _, src := range sources {
			b.WriteString("<blockquote>")
			b.WriteString(html.EscapeString(strings.TrimSpace(src)))
			b.WriteString("</blockquote>\n")
		}
	}
	return strings.TrimSpace(b.String())
}
