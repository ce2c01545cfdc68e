package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"uece-planner/internal/form"
)

func renderHTML(t *testing.T) *goquery.Document {
	t.Helper()
	doc := sampleDocument()
	doc.Frequency[1].Description = "<script>alert(1)</script>"

	buf, err := NewHTMLRenderer("sate@uece.br").Render(doc)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	page, err := goquery.NewDocumentFromReader(buf)
	if err != nil {
		t.Fatalf("html inválido: %v", err)
	}
	return page
}

func TestHTMLRenderer_Sections(t *testing.T) {
	page := renderHTML(t)

	if got := page.Find("h1").Text(); got != DocumentTitle {
		t.Errorf("título: obtido %q", got)
	}
	var headings []string
	page.Find("h2").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, s.Text())
	})
	want := []string{"1. Identificação", "2. Materiais", "3. Módulos", "4. Avaliações", "5. Cálculo de Notas", "6. Frequência"}
	if strings.Join(headings, "|") != strings.Join(want, "|") {
		t.Errorf("seções: obtido %v", headings)
	}
	if n := page.Find("td.module").Length(); n != 2 {
		t.Errorf("esperado 2 módulos, obtido %d", n)
	}
}

func TestHTMLRenderer_Content(t *testing.T) {
	page := renderHTML(t)

	total := page.Find("td.total").Next().Text()
	if total != "6" {
		t.Errorf("total CH: obtido %q", total)
	}
	if got := page.Find("td.copyright").Text(); got != CopyrightNotice {
		t.Errorf("aviso: obtido %q", got)
	}
	if page.Find("script").Length() != 0 {
		t.Error("conteúdo do usuário deveria ser escapado")
	}
	body := page.Find("body").Text()
	for _, want := range []string{"10/03/2025", "Início: 10/03/2025 08:00", SelfAssessmentText, "sate@uece.br", "Fortaleza & Sobral"} {
		if !strings.Contains(body, want) {
			t.Errorf("texto ausente: %q", want)
		}
	}
}

func TestHTMLRenderer_Placeholder(t *testing.T) {
	doc := sampleDocument()
	doc.Static.Set(form.KeyPolos, "")
	buf, err := NewHTMLRenderer("").Render(doc)
	if err != nil {
		t.Fatal(err)
	}
	page, _ := goquery.NewDocumentFromReader(buf)
	var polos string
	page.Find("td.label").Each(func(_ int, s *goquery.Selection) {
		if s.Text() == "Polos" {
			polos = s.Next().Text()
		}
	})
	if polos != Placeholder {
		t.Errorf("esperado placeholder, obtido %q", polos)
	}
}
