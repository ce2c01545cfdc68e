package render

import (
	"strconv"
	"strings"

	"uece-planner/internal/form"
)

// Placeholder replaces blank values in rendered documents.
const Placeholder = "-"

// Fixed document text.
const (
	DocumentTitle      = "IMPLANTAÇÃO DE DISCIPLINA - SATE/UECE"
	CopyrightNotice    = "Atenção: A reprodução não autorizada de materiais é passível de punição legal."
	NoResources        = "Nenhum recurso cadastrado para este módulo."
	SelfAssessmentText = "Autoavaliação padrão (Moodle)"
	WebconfStandard    = "Ferramenta Padrão (Moodle)"
	WebconfMissing     = "Link Personalizado (Não informado)"
)

// Deadlines listed in the document header.
var Deadlines = []string{
	"Implantação de Disciplinas: 14 dias úteis",
	"Implantação de Provas Online: 45 dias úteis",
	"Atendimento suporte: 48h - 72h",
}

// Section headings, shared by every format.
const (
	SectionIdentification = "IDENTIFICAÇÃO DA DISCIPLINA"
	SectionMaterials      = "MATERIAL DIDÁTICO E REFERÊNCIAS"
	SectionModules        = "CONTEÚDO PROGRAMÁTICO (MÓDULOS)"
	SectionEvaluations    = "SISTEMA DE AVALIAÇÃO"
	SectionGrading        = "CÁLCULO DE NOTAS"
	SectionAttendance     = "DISTRIBUIÇÃO DE FREQUÊNCIA"
)

// SubmissionNotice is the header instruction pointing to the support mailbox.
func SubmissionNotice(email string) string {
	return "O arquivo deverá ser devidamente preenchido e enviado para o email " + email + "."
}

// PlanName returns "Planejamento_{disciplina}", falling back to
// "Disciplina" when the course has no name.
func PlanName(doc *form.Document) string {
	name := strings.TrimSpace(doc.Disciplina())
	if name == "" {
		name = "Disciplina"
	}
	return "Planejamento_" + name
}

// Filename returns the download name of a rendered document. Characters
// that are not allowed in file names, path separators included, become "_".
func Filename(doc *form.Document, ext string) string {
	return fileSafe.Replace(PlanName(doc)) + "." + ext
}

var fileSafe = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_", "\x00", "_",
	"\n", " ", "\r", " ", "\t", " ",
)

// Text returns s, or Placeholder when s is blank.
func Text(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// FormatDate turns YYYY-MM-DD into DD/MM/YYYY. Other input is returned as is.
func FormatDate(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// WebconfText describes the webconference room.
func WebconfText(static form.StaticFields) string {
	if !static.CustomWebconf() {
		return WebconfStandard
	}
	if url := strings.TrimSpace(static.Get(form.KeyWebconfURL)); url != "" {
		return url
	}
	return WebconfMissing
}

// windowText renders a visible window as "DD/MM/YYYY HH:MM"; ok is false
// when the window is hidden or has no date.
func windowText(w form.DateWindow) (string, bool) {
	if !w.Enabled.DateVisible() || w.Date == "" {
		return "", false
	}
	return strings.TrimSpace(FormatDate(w.Date) + " " + w.Time), true
}

// ResourceDetails holds the assembled lines of a resource.
type ResourceDetails struct {
	Heading     string // "{type}:\n{title}"
	Dates       string // "Início: … | Fim: …", empty when no window is shown
	Score       string // "Nota: …" or "Rúbrica: …", empty otherwise
	Description string
}

// Lines joins the non-empty detail parts.
func (d ResourceDetails) Lines() []string {
	var out []string
	for _, s := range []string{d.Dates, d.Score} {
		if s != "" {
			out = append(out, s)
		}
	}
	return append(out, Text(d.Description))
}

// DescribeResource assembles the text of a resource row.
func DescribeResource(r form.Resource) ResourceDetails {
	var dates []string
	if s, ok := windowText(r.Start); ok {
		dates = append(dates, "Início: "+s)
	}
	if s, ok := windowText(r.End); ok {
		dates = append(dates, "Fim: "+s)
	}

	var score string
	switch r.Evaluation.Method.VisibleInput() {
	case form.InputScore:
		score = "Nota: " + Text(r.Evaluation.Score)
	case form.InputRubric:
		score = "Rúbrica: " + Text(r.Evaluation.Rubric)
	}

	return ResourceDetails{
		Heading:     Text(string(r.Type)) + ":\n" + Text(r.Title),
		Dates:       strings.Join(dates, " | "),
		Score:       score,
		Description: r.Description,
	}
}

// EvaluationRow is the assembled text of an evaluation table row.
type EvaluationRow struct {
	Identity string
	Period   string
	Score    string
	Details  string
}

// DescribeEvaluation assembles the row of an evaluation. Autoavaliação
// rows carry the standard description instead of their own fields.
func DescribeEvaluation(e form.Evaluation) EvaluationRow {
	row := EvaluationRow{Identity: Text(string(e.Identity)), Period: Placeholder, Score: Placeholder}
	if e.Identity.SelfAssessment() {
		row.Details = SelfAssessmentText
		return row
	}

	start, okStart := windowText(e.Start)
	end, okEnd := windowText(e.End)
	switch {
	case okStart && okEnd:
		row.Period = start + "\na\n" + end
	case okStart:
		row.Period = "A partir de " + start
	case okEnd:
		row.Period = "Até " + end
	}

	switch e.Evaluation.Method.VisibleInput() {
	case form.InputScore:
		row.Score = Text(e.Evaluation.Score)
	case form.InputRubric:
		row.Score = "Rúbrica"
	}

	row.Details = "Tipo: " + Text(e.Type) + "\n" + Text(e.Description)
	return row
}

// ModuleHeading renders "Módulo {n}: {title}".
func ModuleHeading(m form.DocModule) string {
	return "Módulo " + strconv.Itoa(m.Index) + ": " + Text(m.Title)
}
