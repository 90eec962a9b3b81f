package newsdigest

import (
	"fmt"
	"strings"
)

// DefaultDigestLimit is the number of entries listed when no limit is given.
const DefaultDigestLimit = 5

// FormatDigest renders a numbered digest of articles. The header reports
// the total number of articles; only the first limit entries are listed.
// A limit of zero or less uses DefaultDigestLimit. An empty keyword is
// omitted from the header.
func FormatDigest(articles []*Article, keyword string, limit int) string {
	if limit <= 0 {
		limit = DefaultDigestLimit
	}

	suffix := ""
	if keyword != "" {
		suffix = ` for "` + keyword + `"`
	}

	if len(articles) == 0 {
		return "❌ No articles found" + suffix + "."
	}

	lines := make([]string, 0, min(len(articles), limit)+1)
	lines = append(lines, fmt.Sprintf("📰 Results%s (%d found):", suffix, len(articles)))

	for i, a := range articles[:min(len(articles), limit)] {
		title := a.Title
		if title == "" {
			title = "Untitled"
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "\n%d. %s", i+1, title)
		if date := deref(a.Date); date != "" {
			sb.WriteString(" (" + date + ")")
		}
		if link := deref(a.Link); link != "" {
			sb.WriteString("\n🔗 " + link)
		}
		if snippet := deref(a.Snippet); snippet != "" {
			sb.WriteString("\n   " + snippet)
		}
		lines = append(lines, sb.String())
	}

	return strings.Join(lines, "\n")
}
