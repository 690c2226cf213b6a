// Package templates renders the go-cuillere HTML pages
package templates

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

//go:embed html/*.html
var embeddedTemplatesFS embed.FS

// RenderFailed is the body served when a page cannot be rendered
const RenderFailed = "Render failed"

// Lang is the language every page is written in
var Lang = language.French

// PageData is what every page template receives
type PageData struct {
	Lang    string
	Title   string
	Query   string
	Answers []string
	Message string
}

// Each page is parsed together with base.html into its own set, since every
// page defines "content" and one shared set would let the last one win.
var (
	homeTmpl   = parsePage("home.html")
	debateTmpl = parsePage("debate.html")
	errorTmpl  = parsePage("error.html")
)

func parsePage(page string) *template.Template {
	return template.Must(template.New("base.html").ParseFS(embeddedTemplatesFS, "html/base.html", "html/"+page))
}

// Home renders the landing page
func Home() ([]byte, error) {
	return render(homeTmpl, PageData{Title: "Accueil"})
}

// Debate renders the page answering query
func Debate(query string, answers []string) ([]byte, error) {
	return render(debateTmpl, PageData{
		Title:   query,
		Query:   query,
		Answers: answers,
	})
}

// Error renders the generic error page
func Error(title, message string) ([]byte, error) {
	return render(errorTmpl, PageData{
		Title:   title,
		Message: message,
	})
}

// OrFallback returns body, or the RenderFailed literal when err is set.
// Every rendered response goes through it: a broken page degrades the body
// instead of the request.
func OrFallback(body []byte, err error) []byte {
	if err != nil {
		logrus.WithError(err).Error("[WEB]: Template rendering failed")
		return []byte(RenderFailed)
	}
	return body
}

func render(tmpl *template.Template, data PageData) ([]byte, error) {
	data.Lang = Lang.String()
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
