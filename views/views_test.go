package views_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/andripurnomo/folio"
)

var testConfig = folio.SiteConfig{
	Name:        "Andri Purnomo",
	URL:         "https://example.com",
	Description: "Portfolio",
}

func renderHTML(t *testing.T, cmp templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, cmp.Render(context.Background(), &buf))
	return buf.String()
}

func renderDoc(t *testing.T, cmp templ.Component) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(renderHTML(t, cmp)))
	require.NoError(t, err)
	return doc
}
