package document

import (
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// emphasis rules run in order over text outside tags and code spans.
var emphasis = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\*\*(.+?)\*\*`), "<strong>$1</strong>"},
	{regexp.MustCompile(`__(.+?)__`), "<strong>$1</strong>"},
	{regexp.MustCompile(`\*([^*]+)\*`), "<em>$1</em>"},
	{regexp.MustCompile(`_([^_]+)_`), "<em>$1</em>"},
}

var (
	reCodeSpan = regexp.MustCompile("`([^`]+)`")
	// [text](url), or [text](url)^ to open in a new tab
	reLink = regexp.MustCompile(`\[(.*?)\]\((.*?)\)(\^)?`)
)

// ApplyOutsideTags applies fn only to text segments outside HTML tags,
// so that formatting regexes never touch URLs inside href attributes, etc.
func ApplyOutsideTags(s string, fn func(string) string) string {
	var buf strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			buf.WriteString(fn(s))
			break
		}
		if lt > 0 {
			buf.WriteString(fn(s[:lt]))
		}
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			buf.WriteString(s[lt:])
			break
		}
		buf.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return buf.String()
}

// FormatInline escapes s and applies links, code spans, bold and italic.
func FormatInline(s string) string {
	out := reLink.ReplaceAllStringFunc(html.EscapeString(s), func(m string) string {
		g := reLink.FindStringSubmatch(m)
		return link(g[1], g[2], g[3] == "^")
	})

	// Code spans are parked behind placeholders so emphasis never reaches them.
	var restore []string
	out = reCodeSpan.ReplaceAllStringFunc(out, func(m string) string {
		key := "\x00C" + strconv.Itoa(len(restore)/2) + "\x00"
		restore = append(restore, key, "<code>"+reCodeSpan.FindStringSubmatch(m)[1]+"</code>")
		return key
	})

	out = ApplyOutsideTags(out, func(seg string) string {
		for _, rule := range emphasis {
			seg = rule.re.ReplaceAllString(seg, rule.repl)
		}
		return seg
	})
	if len(restore) > 0 {
		out = strings.NewReplacer(restore...).Replace(out)
	}
	return out
}

// link renders an anchor, or just the text when href is not a safe URL.
func link(text, href string, newTab bool) string {
	safe := SafeURL(href)
	if safe == "" {
		return text
	}
	a := `<a href="` + safe + `" class="link"`
	if newTab {
		a += ` target="_blank" rel="noopener noreferrer"`
	}
	return a + ">" + text + "</a>"
}

// SafeURL validates raw for use in an HTML attribute and returns it escaped,
// or "" when the scheme is not allowed.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "//") {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
