package utils

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// 页面内容（关于页）用的 markdown 渲染器。
// 原始 HTML 一律不输出，YouTube 视频在过滤之后由 EnhanceHTMLContent 嵌入。
var (
	pageMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	pagePolicy = newPagePolicy()
)

func newPagePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// 标题锚点，方便 /about#xxx 跳转
	p.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4")
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// RenderMarkdown converts page markdown to sanitized HTML and embeds
// standalone YouTube links as players.
func RenderMarkdown(source []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := pageMarkdown.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return EnhanceHTMLContent(pagePolicy.Sanitize(buf.String())), nil
}
