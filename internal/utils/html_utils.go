package utils

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// YouTubeVideoID 从 youtube.com/watch?v=、youtu.be/ 和 /embed/ 链接中提取视频 ID
func YouTubeVideoID(link string) string {
	if !strings.Contains(link, "://") {
		link = "https://" + link
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	path := strings.Trim(u.Path, "/")
	switch {
	case host == "youtu.be":
		return strings.Split(path, "/")[0]
	case strings.HasSuffix(host, "youtube.com"):
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		if id, ok := strings.CutPrefix(path, "embed/"); ok {
			return strings.Split(id, "/")[0]
		}
		if id, ok := strings.CutPrefix(path, "shorts/"); ok {
			return strings.Split(id, "/")[0]
		}
	}
	return ""
}

// YouTubeEmbedURL returns the player URL for link, or "" if link is not a video.
func YouTubeEmbedURL(link string) string {
	id := YouTubeVideoID(link)
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + url.PathEscape(id)
}

// EnhanceHTMLContent 为图片增加懒加载属性，并将单独成段的 YouTube 链接转换为嵌入式播放器
func EnhanceHTMLContent(htmlStr string) template.HTML {
	if htmlStr == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return template.HTML(htmlStr)
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		s.SetAttr("referrerpolicy", "no-referrer")
		s.SetAttr("loading", "lazy")
	})

	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if !strings.HasPrefix(text, "http") || strings.Contains(text, " ") {
			return
		}
		if embed := YouTubeEmbedURL(text); embed != "" {
			s.ReplaceWithHtml(`<div class="video-container"><iframe src="` + template.HTMLEscapeString(embed) + `" frameborder="0" allowfullscreen allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"></iframe></div>`)
		}
	})

	// goquery renders full document tags if missing, we just want the body content
	html, _ := doc.Find("body").Html()
	if html == "" {
		html, _ = doc.Html()
	}

	return template.HTML(html)
}
