package goquery_test

import (
	"testing"

	"github.com/fwojciec/newsdigest"
	"github.com/fwojciec/newsdigest/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html>
<body>
<div id="list">
	<h2>Second level first</h2>
	<span>between</span>
	<h1>Top level <b>second</b></h1>
	<p>First paragraph</p>
	<section>
		<h3>Nested third</h3>
		<a>no href</a>
		<a href="/story">  Story   <em>link</em> </a>
		<script>var x = "hidden";</script>
	</section>
	<time datetime="">Yesterday</time>
</div>
</body>
</html>`

func parse(t *testing.T) newsdigest.Node {
	t.Helper()
	root, err := goquery.NewParser().Parse(page)
	require.NoError(t, err)
	return root
}

func TestNode_FindAll(t *testing.T) {
	t.Parallel()

	t.Run("returns matches in document order", func(t *testing.T) {
		t.Parallel()

		headings := parse(t).FindAll(newsdigest.HeadingTags)

		require.Len(t, headings, 3)
		assert.Equal(t, "Second level first", headings[0].Text())
		assert.Equal(t, "Top level second", headings[1].Text())
		assert.Equal(t, "Nested third", headings[2].Text())
	})

	t.Run("honours attribute restriction", func(t *testing.T) {
		t.Parallel()

		links := parse(t).FindAll(newsdigest.LinkTags)

		require.Len(t, links, 1)
		href, ok := links[0].Attr("href")
		assert.True(t, ok)
		assert.Equal(t, "/story", href)
	})

	t.Run("returns nil when nothing matches", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, parse(t).FindAll(newsdigest.ArticleTags))
	})
}

func TestNode_FindFirst(t *testing.T) {
	t.Parallel()

	t.Run("returns first descendant", func(t *testing.T) {
		t.Parallel()

		h := parse(t).FindFirst(newsdigest.HeadingTags)

		require.NotNil(t, h)
		assert.Equal(t, "Second level first", h.Text())
	})

	t.Run("returns nil when absent", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, parse(t).FindFirst(newsdigest.ArticleTags))
	})
}

func TestNode_NextSibling(t *testing.T) {
	t.Parallel()

	t.Run("skips siblings outside the set", func(t *testing.T) {
		t.Parallel()

		h2 := parse(t).FindFirst(newsdigest.Tags("h2"))
		require.NotNil(t, h2)

		p := h2.NextSibling(newsdigest.ParagraphTags)

		require.NotNil(t, p)
		assert.Equal(t, "First paragraph", p.Text())
	})

	t.Run("returns nil when no sibling matches", func(t *testing.T) {
		t.Parallel()

		h3 := parse(t).FindFirst(newsdigest.Tags("h3"))
		require.NotNil(t, h3)

		assert.Nil(t, h3.NextSibling(newsdigest.ParagraphTags))
	})
}

func TestNode_Parent(t *testing.T) {
	t.Parallel()

	h3 := parse(t).FindFirst(newsdigest.Tags("h3"))
	require.NotNil(t, h3)

	parent := h3.Parent()

	require.NotNil(t, parent)
	assert.NotNil(t, parent.FindFirst(newsdigest.LinkTags))
}

func TestNode_Strings(t *testing.T) {
	t.Parallel()

	link := parse(t).FindFirst(newsdigest.LinkTags)
	require.NotNil(t, link)

	assert.Equal(t, []string{"Story", "link"}, link.Strings())

	section := parse(t).FindFirst(newsdigest.Tags("section"))
	require.NotNil(t, section)
	assert.NotContains(t, section.Strings(), `var x = "hidden";`)
}

func TestNode_Attr(t *testing.T) {
	t.Parallel()

	tm := parse(t).FindFirst(newsdigest.TimeTags)
	require.NotNil(t, tm)

	value, ok := tm.Attr("datetime")
	assert.True(t, ok)
	assert.Empty(t, value)

	_, ok = tm.Attr("missing")
	assert.False(t, ok)
}
