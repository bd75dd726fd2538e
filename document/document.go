// Package document holds the structured body of a post: an ordered list of
// blocks parsed from Markdoc-flavoured markdown, and a templ renderer that
// dispatches embed blocks to caller-supplied renderers.
package document

// Document is an ordered tree of blocks.
type Document struct {
	Blocks []Block
}

// Block is one top-level node of a document. The set of implementations is
// closed; see the type switch in Render.
type Block interface {
	block()
}

// Heading is an h1..h3 line. Text is raw inline markdown.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a run of consecutive text lines joined by spaces.
type Paragraph struct {
	Text string
}

// List is a bulleted or numbered list of inline markdown items.
type List struct {
	Ordered bool
	Items   []string
}

// Quote is a block quote made of "> " lines.
type Quote struct {
	Lines []string
}

// CodeBlock is a fenced code block. Code is kept verbatim.
type CodeBlock struct {
	Lang string
	Code string
}

// Divider is a horizontal rule.
type Divider struct{}

// Table is a pipe table. The first row is the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// EmbedBlock wraps a non-text content unit.
type EmbedBlock struct {
	Embed Embed
}

func (Heading) block()    {}
func (Paragraph) block()  {}
func (List) block()       {}
func (Quote) block()      {}
func (CodeBlock) block()  {}
func (Divider) block()    {}
func (Table) block()      {}
func (EmbedBlock) block() {}

// Embed tag names as they appear in content files.
const (
	TagYouTube = "youtubeEmbed"
	TagTwitter = "twitterEmbed"
	TagImage   = "image"
)

// Embed is a typed embed. The set of implementations is closed.
type Embed interface {
	Tag() string
}

// YouTubeEmbed is a video link.
type YouTubeEmbed struct {
	Link string
}

// TwitterEmbed is a link to a single social post.
type TwitterEmbed struct {
	Tweet string
}

// ImageEmbed is an image with optional intrinsic dimensions (0 when unknown).
type ImageEmbed struct {
	Src    string
	Alt    string
	Width  int
	Height int
}

// UnknownEmbed is any tag without a dedicated variant.
type UnknownEmbed struct {
	Name  string
	Attrs map[string]string
}

func (YouTubeEmbed) Tag() string   { return TagYouTube }
func (TwitterEmbed) Tag() string   { return TagTwitter }
func (ImageEmbed) Tag() string     { return TagImage }
func (e UnknownEmbed) Tag() string { return e.Name }

// Embeds returns every embed in document order.
func (d *Document) Embeds() []Embed {
	if d == nil {
		return nil
	}
	var out []Embed
	for _, b := range d.Blocks {
		if e, ok := b.(EmbedBlock); ok {
			out = append(out, e.Embed)
		}
	}
	return out
}
