package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `
<html><body>
	<ul id="results">
		<li class="card" data-id="1"><a href="/job/1"><h3 class="title">First</h3></a></li>
		<li class="card" data-id="2"><h3 class="title">Second</h3></li>
	</ul>
</body></html>`

func TestFindReturnsDocumentOrder(t *testing.T) {
	root, err := Parse(sampleHTML)
	require.NoError(t, err)

	cards, err := root.Find("li.card")
	require.NoError(t, err)
	require.Len(t, cards, 2)

	id, ok := cards[0].Attr("data-id")
	assert.True(t, ok)
	assert.Equal(t, "1", id)

	titles, err := cards[1].Find("h3.title")
	require.NoError(t, err)
	require.Len(t, titles, 1)
	assert.Equal(t, "Second", titles[0].Text())
}

func TestFindInvalidSelector(t *testing.T) {
	root, err := Parse(sampleHTML)
	require.NoError(t, err)

	_, err = root.Find("li[[broken")
	assert.Error(t, err)

	_, err = root.Find("   ")
	assert.Error(t, err)
}

func TestClosestIncludesSelfAndAncestors(t *testing.T) {
	root, err := Parse(sampleHTML)
	require.NoError(t, err)

	titles, err := root.Find("h3.title")
	require.NoError(t, err)
	require.Len(t, titles, 2)

	anchor, ok, err := titles[0].Closest("a[href]")
	require.NoError(t, err)
	require.True(t, ok)
	href, _ := anchor.Attr("href")
	assert.Equal(t, "/job/1", href)

	_, ok, err = titles[1].Closest("a[href]")
	require.NoError(t, err)
	assert.False(t, ok)

	links, err := root.Find("a")
	require.NoError(t, err)
	self, ok, err := links[0].Closest("a[href]")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, self.Text(), "First")
}

func TestHTML(t *testing.T) {
	root, err := Parse(sampleHTML)
	require.NoError(t, err)

	cards, err := root.Find("li.card")
	require.NoError(t, err)

	html, err := cards[1].HTML()
	require.NoError(t, err)
	assert.Contains(t, html, `<h3 class="title">Second</h3>`)
}
