package document

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func renderString(t *testing.T, src string, r Renderers) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(Parse(src), r).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render(%q) failed: %v", src, err)
	}
	return buf.String()
}

func TestFormatInlineBold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"text **bold** more", "text <strong>bold</strong> more"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineItalic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineLinks(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"[Wikipedia](https://en.wikipedia.org/wiki/Some_Article_Title)",
			`<a href="https://en.wikipedia.org/wiki/Some_Article_Title" class="link">Wikipedia</a>`,
		},
		{
			"Check [this](https://example.com)^ out",
			`Check <a href="https://example.com" class="link" target="_blank" rel="noopener noreferrer">this</a> out`,
		},
		{"[bad](javascript:void)", "bad"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q)\n  got:  %q\n  want: %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"use `fmt.Println` here", "use <code>fmt.Println</code> here"},
		{"`**not bold**`", "<code>**not bold**</code>"},
		{"<script>", "&lt;script&gt;"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com/a?b=c&d=e", "https://example.com/a?b=c&amp;d=e"},
		{"/images/a.jpg", "/images/a.jpg"},
		{"//evil.example", ""},
		{"javascript:alert(1)", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.expected {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseBlocks(t *testing.T) {
	src := strings.Join([]string{
		"# Title",
		"first line",
		"second line",
		"",
		"- a",
		"- b",
		"1. one",
		"> quoted",
		"---",
		"| h1 | h2 |",
		"|----|----|",
		"| c1 | c2 |",
		"",
		"```go",
		"x := 1",
		"```",
	}, "\n")
	doc := Parse(src)

	want := []Block{
		Heading{Level: 1, Text: "Title"},
		Paragraph{Text: "first line second line"},
		List{Items: []string{"a", "b"}},
		List{Ordered: true, Items: []string{"one"}},
		Quote{Lines: []string{"quoted"}},
		Divider{},
		Table{Header: []string{"h1", "h2"}, Rows: [][]string{{"c1", "c2"}}},
		CodeBlock{Lang: "go", Code: "x := 1"},
	}
	if len(doc.Blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d: %#v", len(doc.Blocks), len(want), doc.Blocks)
	}
	for i := range want {
		if got := doc.Blocks[i]; !blockEqual(got, want[i]) {
			t.Errorf("block %d = %#v, want %#v", i, got, want[i])
		}
	}
}

func blockEqual(a, b Block) bool {
	var ab, bb bytes.Buffer
	ra := Render(&Document{Blocks: []Block{a}}, Renderers{})
	rb := Render(&Document{Blocks: []Block{b}}, Renderers{})
	_ = ra.Render(context.Background(), &ab)
	_ = rb.Render(context.Background(), &bb)
	return ab.String() == bb.String()
}

func TestParseEmbeds(t *testing.T) {
	src := strings.Join([]string{
		"intro",
		`{% youtubeEmbed youtubeLink="https://www.youtube.com/watch?v=dQw4w9WgXcQ" /%}`,
		`{% twitterEmbed tweet="https://x.com/user/status/12345?foo=bar" /%}`,
		`{% image src="/images/blogs/a/diagram.png" alt="A diagram" width=800 height=600 /%}`,
		`{% callout kind="note" /%}`,
	}, "\n")
	embeds := Parse(src).Embeds()
	if len(embeds) != 4 {
		t.Fatalf("got %d embeds, want 4", len(embeds))
	}
	if e, ok := embeds[0].(YouTubeEmbed); !ok || e.Link != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("embed 0 = %#v", embeds[0])
	}
	if e, ok := embeds[1].(TwitterEmbed); !ok || e.Tweet != "https://x.com/user/status/12345?foo=bar" {
		t.Errorf("embed 1 = %#v", embeds[1])
	}
	img, ok := embeds[2].(ImageEmbed)
	if !ok {
		t.Fatalf("embed 2 = %#v, want ImageEmbed", embeds[2])
	}
	if img.Src != "/images/blogs/a/diagram.png" || img.Alt != "A diagram" || img.Width != 800 || img.Height != 600 {
		t.Errorf("image embed = %#v", img)
	}
	unknown, ok := embeds[3].(UnknownEmbed)
	if !ok || unknown.Tag() != "callout" || unknown.Attrs["kind"] != "note" {
		t.Errorf("embed 3 = %#v", embeds[3])
	}
}

func TestParseEmbedInsideCodeBlockStaysCode(t *testing.T) {
	doc := Parse("```\n{% image src=\"/x.png\" /%}\n```")
	if len(doc.Embeds()) != 0 {
		t.Fatalf("embed tags inside code fences must not be parsed")
	}
}

func TestRenderCodeBlockWithLanguage(t *testing.T) {
	got := renderString(t, "```go\nfmt.Println(\"hello\")\n```", Renderers{})
	if !strings.Contains(got, `class="language-go"`) {
		t.Errorf("code block should have language-go class: %q", got)
	}
	if !strings.Contains(got, `<div class="code-block-wrapper">`) || !strings.HasSuffix(got, "</div>") {
		t.Errorf("code block should be wrapped in div: %q", got)
	}
	if !strings.Contains(got, "fmt.Println(&#34;hello&#34;)") {
		t.Errorf("code should be escaped: %q", got)
	}
}

func TestRenderHeadingsAndLists(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Heading 1", "<h1>Heading 1</h1>"},
		{"### Heading 3", "<h3>Heading 3</h3>"},
		{"- item 1\n- item 2", "<ul><li>item 1</li><li>item 2</li></ul>"},
		{"1. **bold** item\n2. *italic* item", "<ol><li><strong>bold</strong> item</li><li><em>italic</em> item</li></ol>"},
	}
	for _, tt := range tests {
		got := renderString(t, tt.input, Renderers{})
		if got != tt.expected {
			t.Errorf("render(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderDispatchesEmbeds(t *testing.T) {
	text := func(s string) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, s)
			return err
		})
	}
	r := Renderers{
		YouTube: func(e YouTubeEmbed) templ.Component { return text("[yt:" + e.Link + "]") },
		Twitter: func(e TwitterEmbed) templ.Component { return text("[tw:" + e.Tweet + "]") },
		Image:   func(e ImageEmbed) templ.Component { return text("[img:" + e.Src + "]") },
		Unknown: func(e UnknownEmbed) templ.Component { return text("[?" + e.Name + "]") },
	}
	src := strings.Join([]string{
		`{% youtubeEmbed youtubeLink="https://youtu.be/abc" /%}`,
		`{% twitterEmbed tweet="https://x.com/u/status/1" /%}`,
		`{% image src="/images/x.png" /%}`,
		`{% poll /%}`,
	}, "\n")
	got := renderString(t, src, r)
	want := "[yt:https://youtu.be/abc][tw:https://x.com/u/status/1][img:/images/x.png][?poll]"
	if got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

func TestRenderNilRendererSkipsEmbed(t *testing.T) {
	got := renderString(t, "before\n\n{% image src=\"/x.png\" /%}\n\nafter", Renderers{})
	if got != "<p>before</p><p>after</p>" {
		t.Errorf("render = %q", got)
	}
}

func TestRenderNilDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(nil, Renderers{}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render(nil) failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Render(nil) wrote %q", buf.String())
	}
}
