package templates

import (
	"errors"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome(t *testing.T) {
	body, err := Home()
	require.NoError(t, err)

	html := string(body)
	assert.Contains(t, html, `<html lang="fr">`)
	assert.Contains(t, html, `href="/static/style.css"`)
	assert.Contains(t, html, `src="/static/logo.png"`)
	assert.Contains(t, html, `action="/debate"`)
}

func TestDebate(t *testing.T) {
	testCases := []struct {
		query    string
		contains string
	}{
		{query: "Pain au chocolat ou chocolatine ?", contains: "Pain au chocolat ou chocolatine ?"},
		{query: "Été ou hiver", contains: "Été ou hiver"},
		{query: "", contains: `<p class="question"></p>`},
		{query: "<script>alert(1)</script>", contains: "&lt;script&gt;alert(1)&lt;/script&gt;"},
	}

	for _, tc := range testCases {
		body, err := Debate(tc.query, []string{"Cuillère."})
		require.NoError(t, err)
		assert.Contains(t, string(body), tc.contains, "query %q", tc.query)
		assert.Contains(t, string(body), "Cuillère.")
		assert.NotContains(t, string(body), "<script>alert(1)</script>")
	}
}

func TestDebateRendersEveryAnswer(t *testing.T) {
	body, err := Debate("q", []string{"Cuillère.", "Fourchette."})
	require.NoError(t, err)
	assert.Contains(t, string(body), "Cuillère.")
	assert.Contains(t, string(body), "Fourchette.")
}

func TestError(t *testing.T) {
	body, err := Error("Page introuvable", "Déso.")
	require.NoError(t, err)
	assert.Contains(t, string(body), "<h1>Page introuvable</h1>")
	assert.Contains(t, string(body), "Déso.")
}

func TestRenderFailure(t *testing.T) {
	broken := template.Must(template.New("base.html").Parse(`{{.Nope}}`))
	body, err := render(broken, PageData{})
	assert.Error(t, err)
	assert.Nil(t, body)
	assert.Equal(t, []byte(RenderFailed), OrFallback(body, err))
}

func TestOrFallback(t *testing.T) {
	assert.Equal(t, []byte("ok"), OrFallback([]byte("ok"), nil))
	assert.Equal(t, []byte("Render failed"), OrFallback([]byte("partial"), errors.New("boom")))
}
