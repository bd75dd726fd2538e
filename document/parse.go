package document

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reOrderedList = regexp.MustCompile(`^(\d+)\.\s`)
	// {% name attr="value" attr=123 /%}
	reEmbedTag  = regexp.MustCompile(`^\{%\s*([A-Za-z][\w-]*)((?:\s+[A-Za-z][\w-]*=(?:"[^"]*"|[^\s"%/]+))*)\s*/%\}$`)
	reEmbedAttr = regexp.MustCompile(`([A-Za-z][\w-]*)=(?:"([^"]*)"|([^\s"%/]+))`)
)

// Parse builds a Document from Markdoc-flavoured markdown. It never fails:
// anything it does not recognise becomes paragraph text.
func Parse(src string) *Document {
	p := &parser{}
	for _, raw := range strings.Split(src, "\n") {
		p.line(strings.TrimRight(raw, "\r"))
	}
	p.flushAll()
	if p.inCode {
		p.flushCode()
	}
	return &Document{Blocks: p.blocks}
}

type parser struct {
	blocks []Block

	para    []string
	list    *List
	quote   []string
	table   *Table
	inTable bool

	inCode   bool
	codeLang string
	code     []string
}

func (p *parser) emit(b Block) {
	p.blocks = append(p.blocks, b)
}

func (p *parser) flushPara() {
	if len(p.para) > 0 {
		p.emit(Paragraph{Text: strings.Join(p.para, " ")})
		p.para = nil
	}
}

func (p *parser) flushList() {
	if p.list != nil {
		p.emit(*p.list)
		p.list = nil
	}
}

func (p *parser) flushQuote() {
	if len(p.quote) > 0 {
		p.emit(Quote{Lines: p.quote})
		p.quote = nil
	}
}

func (p *parser) flushTable() {
	if p.table != nil {
		p.emit(*p.table)
		p.table = nil
		p.inTable = false
	}
}

func (p *parser) flushCode() {
	p.emit(CodeBlock{Lang: p.codeLang, Code: strings.Join(p.code, "\n")})
	p.inCode = false
	p.codeLang = ""
	p.code = nil
}

func (p *parser) flushAll() {
	p.flushPara()
	p.flushList()
	p.flushQuote()
	p.flushTable()
}

func (p *parser) line(line string) {
	if strings.HasPrefix(line, "```") {
		if p.inCode {
			p.flushCode()
		} else {
			p.flushAll()
			p.inCode = true
			p.codeLang = strings.TrimSpace(line[3:])
		}
		return
	}
	if p.inCode {
		p.code = append(p.code, line)
		return
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		p.flushAll()
		return
	}

	if m := reEmbedTag.FindStringSubmatch(trimmed); m != nil {
		p.flushAll()
		p.emit(EmbedBlock{Embed: newEmbed(m[1], parseAttrs(m[2]))})
		return
	}

	switch {
	case strings.HasPrefix(line, "---"):
		p.flushAll()
		p.emit(Divider{})
	case strings.HasPrefix(line, "# "):
		p.heading(1, line[2:])
	case strings.HasPrefix(line, "## "):
		p.heading(2, line[3:])
	case strings.HasPrefix(line, "### "):
		p.heading(3, line[4:])
	case strings.HasPrefix(line, "|"):
		p.tableRow(line)
	case strings.HasPrefix(line, "- "):
		p.listItem(false, line[2:])
	case reOrderedList.MatchString(line):
		p.listItem(true, reOrderedList.ReplaceAllString(line, ""))
	case strings.HasPrefix(line, "> "):
		if len(p.quote) == 0 {
			p.flushPara()
			p.flushList()
			p.flushTable()
		}
		p.quote = append(p.quote, strings.TrimSpace(line[2:]))
	default:
		if len(p.para) == 0 {
			p.flushList()
			p.flushQuote()
			p.flushTable()
		}
		p.para = append(p.para, trimmed)
	}
}

func (p *parser) heading(level int, text string) {
	p.flushAll()
	p.emit(Heading{Level: level, Text: strings.TrimSpace(text)})
}

func (p *parser) listItem(ordered bool, text string) {
	if p.list != nil && p.list.Ordered != ordered {
		p.flushList()
	}
	if p.list == nil {
		p.flushPara()
		p.flushQuote()
		p.flushTable()
		p.list = &List{Ordered: ordered}
	}
	p.list.Items = append(p.list.Items, strings.TrimSpace(text))
}

func (p *parser) tableRow(line string) {
	if !p.inTable {
		p.flushPara()
		p.flushList()
		p.flushQuote()
		p.table = &Table{Header: parseTableCells(line)}
		p.inTable = true
		return
	}
	// Skip separator line like |---|---|
	if isTableSeparator(line) {
		return
	}
	p.table.Rows = append(p.table.Rows, parseTableCells(line))
}

func parseTableCells(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func isTableSeparator(line string) bool {
	line = strings.TrimSpace(line)
	line = strings.Trim(line, "|")
	for _, cell := range strings.Split(line, "|") {
		cell = strings.TrimSpace(cell)
		cleaned := strings.ReplaceAll(strings.ReplaceAll(cell, "-", ""), ":", "")
		if cleaned != "" {
			return false
		}
	}
	return true
}

func parseAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range reEmbedAttr.FindAllStringSubmatch(s, -1) {
		if m[3] != "" {
			attrs[m[1]] = m[3]
		} else {
			attrs[m[1]] = m[2]
		}
	}
	return attrs
}

// newEmbed maps a tag and its attributes onto the matching variant.
func newEmbed(tag string, attrs map[string]string) Embed {
	switch tag {
	case TagYouTube:
		return YouTubeEmbed{Link: attrs["youtubeLink"]}
	case TagTwitter:
		return TwitterEmbed{Tweet: attrs["tweet"]}
	case TagImage:
		return ImageEmbed{
			Src:    attrs["src"],
			Alt:    attrs["alt"],
			Width:  atoiOrZero(attrs["width"]),
			Height: atoiOrZero(attrs["height"]),
		}
	default:
		return UnknownEmbed{Name: tag, Attrs: attrs}
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
