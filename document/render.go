package document

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Renderers maps every embed variant to its presentation. A nil field
// renders nothing for that variant.
type Renderers struct {
	YouTube func(YouTubeEmbed) templ.Component
	Twitter func(TwitterEmbed) templ.Component
	Image   func(ImageEmbed) templ.Component
	Unknown func(UnknownEmbed) templ.Component
}

// Render returns a templ.Component that writes doc as HTML, delegating
// embed blocks to r.
func Render(doc *Document, r Renderers) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if doc == nil {
			return nil
		}
		var buf bytes.Buffer
		for _, b := range doc.Blocks {
			if err := renderBlock(ctx, &buf, b, r); err != nil {
				return err
			}
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func renderBlock(ctx context.Context, buf *bytes.Buffer, b Block, r Renderers) error {
	switch b := b.(type) {
	case Heading:
		tag := fmt.Sprintf("h%d", b.Level)
		buf.WriteString("<" + tag + ">")
		buf.WriteString(FormatInline(b.Text))
		buf.WriteString("</" + tag + ">")
	case Paragraph:
		buf.WriteString("<p>")
		buf.WriteString(FormatInline(b.Text))
		buf.WriteString("</p>")
	case List:
		tag := "ul"
		if b.Ordered {
			tag = "ol"
		}
		buf.WriteString("<" + tag + ">")
		for _, item := range b.Items {
			buf.WriteString("<li>")
			buf.WriteString(FormatInline(item))
			buf.WriteString("</li>")
		}
		buf.WriteString("</" + tag + ">")
	case Quote:
		buf.WriteString("<blockquote>")
		for i, line := range b.Lines {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(FormatInline(line))
		}
		buf.WriteString("</blockquote>")
	case CodeBlock:
		if b.Lang != "" {
			lang := html.EscapeString(b.Lang)
			buf.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-` + lang + `">` + lang + `</span>`)
			buf.WriteString(`<pre class="code-block"><code class="language-` + lang + `">`)
		} else {
			buf.WriteString(`<pre class="code-block"><code>`)
		}
		buf.WriteString(html.EscapeString(b.Code))
		buf.WriteString("</code></pre>")
		if b.Lang != "" {
			buf.WriteString("</div>")
		}
	case Divider:
		buf.WriteString("<hr/>")
	case Table:
		buf.WriteString("<table><thead><tr>")
		for _, cell := range b.Header {
			buf.WriteString("<th>" + FormatInline(cell) + "</th>")
		}
		buf.WriteString("</tr></thead><tbody>")
		for _, row := range b.Rows {
			buf.WriteString("<tr>")
			for _, cell := range row {
				buf.WriteString("<td>" + FormatInline(cell) + "</td>")
			}
			buf.WriteString("</tr>")
		}
		buf.WriteString("</tbody></table>")
	case EmbedBlock:
		return renderEmbed(ctx, buf, b.Embed, r)
	}
	return nil
}

func renderEmbed(ctx context.Context, buf *bytes.Buffer, e Embed, r Renderers) error {
	var cmp templ.Component
	switch e := e.(type) {
	case YouTubeEmbed:
		if r.YouTube != nil {
			cmp = r.YouTube(e)
		}
	case TwitterEmbed:
		if r.Twitter != nil {
			cmp = r.Twitter(e)
		}
	case ImageEmbed:
		if r.Image != nil {
			cmp = r.Image(e)
		}
	case UnknownEmbed:
		if r.Unknown != nil {
			cmp = r.Unknown(e)
		}
	}
	if cmp == nil {
		return nil
	}
	if err := cmp.Render(ctx, buf); err != nil {
		return fmt.Errorf("render %s embed: %w", e.Tag(), err)
	}
	return nil
}
