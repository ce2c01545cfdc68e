package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"uece-planner/internal/form"
)

// HTMLRenderer produces the printable page that also feeds the PDF converter.
type HTMLRenderer struct {
	supportEmail string
	tmpl         *template.Template
}

// NewHTMLRenderer creates the HTML renderer.
func NewHTMLRenderer(supportEmail string) *HTMLRenderer {
	return &HTMLRenderer{
		supportEmail: supportEmail,
		tmpl:         template.Must(template.New("plan").Funcs(htmlFuncs).Parse(planTemplate)),
	}
}

func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

func (r *HTMLRenderer) Extension() string { return string(FormatHTML) }

type htmlModule struct {
	Heading   string
	Intro     string
	Resources []ResourceDetails
}

type htmlPage struct {
	Title       string
	Notice      string
	Deadlines   []string
	Static      map[string]string
	Webconf     string
	Copyright   string
	Modules     []htmlModule
	NoResources string
	Evaluations []EvaluationRow
	Frequency   []form.AttendanceRow
	TotalCH     string
}

// Render executes the page template.
func (r *HTMLRenderer) Render(doc *form.Document) (*bytes.Buffer, error) {
	page := htmlPage{
		Title:       DocumentTitle,
		Notice:      SubmissionNotice(r.supportEmail),
		Deadlines:   Deadlines,
		Static:      make(map[string]string),
		Webconf:     WebconfText(doc.Static),
		Copyright:   CopyrightNotice,
		NoResources: NoResources,
		Frequency:   doc.Frequency,
		TotalCH:     strconv.Itoa(doc.TotalCH),
	}
	for _, spec := range form.StaticFieldSpecs() {
		page.Static[string(spec.Key)] = Text(doc.Static.Get(spec.Key))
	}
	for _, m := range doc.Modules {
		hm := htmlModule{Heading: ModuleHeading(m), Intro: strings.TrimSpace(m.Intro)}
		for _, res := range m.Resources {
			hm.Resources = append(hm.Resources, DescribeResource(res))
		}
		page.Modules = append(page.Modules, hm)
	}
	for _, e := range doc.Evaluations {
		page.Evaluations = append(page.Evaluations, DescribeEvaluation(e))
	}

	buf := new(bytes.Buffer)
	if err := r.tmpl.Execute(buf, page); err != nil {
		return nil, fmt.Errorf("html: %w", err)
	}
	return buf, nil
}

var htmlFuncs = template.FuncMap{
	"text": Text,
	"date": func(s string) string { return Text(FormatDate(s)) },
	// lines escapes each line and joins them with <br>.
	"lines": func(s string) template.HTML {
		parts := strings.Split(s, "\n")
		for i, p := range parts {
			parts[i] = template.HTMLEscapeString(p)
		}
		return template.HTML(strings.Join(parts, "<br>"))
	},
}

const planTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Calibri, Arial, sans-serif; font-size: 11pt; color: #222; margin: 24px; }
h1 { color: #006935; font-size: 16pt; text-align: center; border-bottom: 2px solid #006935; padding-bottom: 6px; }
h2 { color: #006935; font-size: 12pt; margin-top: 18px; }
table { width: 100%; border-collapse: collapse; margin-bottom: 10px; page-break-inside: auto; }
tr { page-break-inside: avoid; }
th, td { border: 1px solid #444; padding: 5px; vertical-align: middle; text-align: left; }
th { background: #e0e0e0; }
.label { background: #f5f5f5; font-weight: bold; width: 30%; }
.module { background: #f5f5f5; font-weight: bold; }
.notice { color: #cc0000; font-weight: bold; }
.copyright { background: #fff0f0; text-align: center; }
.center { text-align: center; }
.total { text-align: right; font-weight: bold; background: #f5f5f5; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p><span class="notice">IMPORTANTE: </span>{{.Notice}}</p>
<p><strong>Prazos:</strong></p>
<ul>{{range .Deadlines}}<li>{{.}}</li>{{end}}</ul>

<h2>1. Identificação</h2>
<table>
<tr><td class="label">Turma</td><td>{{index .Static "id_turma"}}</td><td class="label">Semestre</td><td>{{index .Static "id_semestre"}}</td></tr>
<tr><td class="label">Curso</td><td colspan="3">{{index .Static "id_curso"}}</td></tr>
<tr><td class="label">Disciplina</td><td>{{index .Static "id_disciplina"}}</td><td class="label">Créditos/CH</td><td>{{index .Static "id_ch"}}</td></tr>
<tr><td class="label">Polos</td><td colspan="3">{{index .Static "id_polos"}}</td></tr>
</table>

<h2>2. Materiais</h2>
<table>
<tr><td class="label">Livro (Biblioteca)</td><td>{{lines (index .Static "mat_livro")}}</td></tr>
<tr><td class="label">Material Adicional</td><td>{{lines (index .Static "mat_adicional")}}</td></tr>
<tr><td class="label">Webconf (Sala)</td><td>{{.Webconf}}</td></tr>
<tr><td class="copyright" colspan="2">{{.Copyright}}</td></tr>
</table>

<h2>3. Módulos</h2>
{{range .Modules}}<table>
<tr><td class="module" colspan="2">{{.Heading}}</td></tr>
{{if .Intro}}<tr><td colspan="2">{{lines .Intro}}</td></tr>
{{end}}{{if .Resources}}<tr><th>Recurso</th><th>Detalhamento</th></tr>
{{range .Resources}}<tr><td><strong>{{lines .Heading}}</strong></td><td>{{range .Lines}}{{lines .}}<br>{{end}}</td></tr>
{{end}}{{else}}<tr><td colspan="2">{{$.NoResources}}</td></tr>
{{end}}</table>
{{end}}
<h2>4. Avaliações</h2>
<table>
<tr><th>Identificação</th><th>Período</th><th>Pontuação</th><th>Detalhes</th></tr>
{{range .Evaluations}}<tr><td><strong>{{.Identity}}</strong></td><td class="center">{{lines .Period}}</td><td class="center">{{.Score}}</td><td>{{lines .Details}}</td></tr>
{{end}}</table>

<h2>5. Cálculo de Notas</h2>
<table>
<tr><td>NPC 1: {{index .Static "calc_npc1"}}<br>NPC 2: {{index .Static "calc_npc2"}}</td><td class="label">Média Final: {{index .Static "calc_media"}}</td></tr>
</table>

<h2>6. Frequência</h2>
<table>
<tr><th>Data</th><th>CH</th><th>Descrição da Atividade</th></tr>
{{range .Frequency}}<tr><td class="center">{{date .Date}}</td><td class="center">{{text .Hours}}</td><td>{{text .Description}}</td></tr>
{{end}}<tr><td class="total" colspan="2">Total CH:</td><td><strong>{{.TotalCH}}</strong></td></tr>
</table>
</body>
</html>
`
