package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"uece-planner/internal/form"
)

// Table styling.
const (
	borderColor    = "444444"
	headerShade    = "E0E0E0"
	subHeaderShade = "F5F5F5"
	columnShade    = "EEEEEE"
	noticeShade    = "FFF0F0"
	fontName       = "Calibri"
	fontHalfPoints = 22 // 11pt
	textWidthTwips = 9638
)

const (
	alignLeft   = "left"
	alignCenter = "center"
	alignRight  = "right"
)

type docxCell struct {
	text  string
	width int // percent of the table width
	bold  bool
	shade string
	span  int
	align string
}

type docxRow []docxCell

type docxTable struct {
	cols []int // grid column widths in percent
	rows []docxRow
}

// DocxRenderer writes the plan as a WordprocessingML document.
type DocxRenderer struct {
	supportEmail string
}

// NewDocxRenderer creates the Word renderer.
func NewDocxRenderer(supportEmail string) *DocxRenderer {
	return &DocxRenderer{supportEmail: supportEmail}
}

func (r *DocxRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

func (r *DocxRenderer) Extension() string { return string(FormatDOCX) }

// Render lays out the notice and the six plan tables and packages them.
func (r *DocxRenderer) Render(doc *form.Document) (*bytes.Buffer, error) {
	f := docx.New().WithDefaultTheme()

	intro := f.AddParagraph()
	styled(intro.AddText("IMPORTANTE: ")).Bold().Color("CC0000")
	styled(intro.AddText(SubmissionNotice(r.supportEmail)))
	styled(f.AddParagraph().AddText("Prazos:")).Bold()
	for _, d := range Deadlines {
		styled(f.AddParagraph().AddText("• " + d))
	}
	f.AddParagraph()

	for i, t := range docxTables(doc) {
		if i > 0 {
			f.AddParagraph()
		}
		addTable(f, t)
	}

	// the section properties close the body
	f.WithA4Page()

	buf := new(bytes.Buffer)
	if _, err := f.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("docx: %w", err)
	}
	return buf, nil
}

func docxTables(doc *form.Document) []docxTable {
	st := doc.Static
	cell := func(text string, width int) docxCell { return docxCell{text: text, width: width, span: 1, align: alignLeft} }
	header := func(text string, span int) docxCell {
		return docxCell{text: text, width: 100, bold: true, shade: headerShade, span: span, align: alignCenter}
	}
	shaded := func(c docxCell) docxCell { c.shade = subHeaderShade; return c }
	bold := func(c docxCell) docxCell { c.bold = true; return c }
	spanned := func(c docxCell, n int) docxCell { c.span = n; return c }
	centered := func(c docxCell) docxCell { c.align = alignCenter; return c }

	ident := docxTable{cols: []int{25, 25, 25, 25}, rows: []docxRow{
		{header(SectionIdentification, 4)},
		{
			shaded(cell("Turma:\n"+Text(st.Get(form.KeyTurma)), 25)),
			shaded(cell("Semestre:\n"+Text(st.Get(form.KeySemestre)), 25)),
			spanned(cell("Curso:\n"+Text(st.Get(form.KeyCurso)), 50), 2),
		},
		{
			spanned(cell("Disciplina:\n"+Text(st.Get(form.KeyDisciplina)), 60), 2),
			spanned(cell("Créditos/CH:\n"+Text(st.Get(form.KeyCreditos)), 40), 2),
		},
		{spanned(cell("Polos:\n"+Text(st.Get(form.KeyPolos)), 100), 4)},
	}}

	notice := centered(spanned(cell(CopyrightNotice, 100), 2))
	notice.shade = noticeShade
	mat := docxTable{cols: []int{30, 70}, rows: []docxRow{
		{header(SectionMaterials, 2)},
		{bold(shaded(cell("Livro (Biblioteca):", 30))), cell(Text(st.Get(form.KeyLivro)), 70)},
		{bold(shaded(cell("Material Adicional:", 30))), cell(Text(st.Get(form.KeyMaterial)), 70)},
		{bold(shaded(cell("Webconf (Sala):", 30))), cell(WebconfText(st), 70)},
		{notice},
	}}

	colHead := func(text string, width int) docxCell {
		c := bold(centered(cell(text, width)))
		c.shade = columnShade
		return c
	}
	mods := docxTable{cols: []int{30, 70}, rows: []docxRow{
		{header(SectionModules, 2)},
	}}
	for _, m := range doc.Modules {
		mods.rows = append(mods.rows, docxRow{bold(shaded(spanned(cell(ModuleHeading(m), 100), 2)))})
		if strings.TrimSpace(m.Intro) != "" {
			mods.rows = append(mods.rows, docxRow{spanned(cell(m.Intro, 100), 2)})
		}
		if len(m.Resources) == 0 {
			mods.rows = append(mods.rows, docxRow{spanned(cell(NoResources, 100), 2)})
			continue
		}
		mods.rows = append(mods.rows, docxRow{colHead("Recurso", 30), colHead("Detalhamento", 70)})
		for _, res := range m.Resources {
			d := DescribeResource(res)
			mods.rows = append(mods.rows, docxRow{
				bold(cell(d.Heading, 30)),
				cell(strings.Join(d.Lines(), "\n"), 70),
			})
		}
	}

	evals := docxTable{cols: []int{20, 25, 15, 40}, rows: []docxRow{
		{header(SectionEvaluations, 4)},
		{
			bold(shaded(cell("Identificação", 20))),
			bold(shaded(cell("Período", 25))),
			bold(shaded(cell("Pontuação", 15))),
			bold(shaded(cell("Detalhes", 40))),
		},
	}}
	for _, e := range doc.Evaluations {
		row := DescribeEvaluation(e)
		evals.rows = append(evals.rows, docxRow{
			bold(cell(row.Identity, 20)),
			centered(cell(row.Period, 25)),
			centered(cell(row.Score, 15)),
			cell(row.Details, 40),
		})
	}

	calc := docxTable{cols: []int{40, 60}, rows: []docxRow{
		{header(SectionGrading, 2)},
		{
			cell("NPC 1: "+Text(st.Get(form.KeyCalcNPC1))+"\nNPC 2: "+Text(st.Get(form.KeyCalcNPC2)), 40),
			shaded(cell("Média Final:\n"+Text(st.Get(form.KeyCalcMedia)), 60)),
		},
	}}

	freq := docxTable{cols: []int{25, 15, 60}, rows: []docxRow{
		{header(SectionAttendance, 3)},
		{
			bold(shaded(cell("Data", 25))),
			bold(shaded(centered(cell("CH", 15)))),
			bold(shaded(cell("Descrição da Atividade", 60))),
		},
	}}
	for _, row := range doc.Frequency {
		freq.rows = append(freq.rows, docxRow{
			centered(cell(Text(FormatDate(row.Date)), 25)),
			centered(cell(Text(row.Hours), 15)),
			cell(Text(row.Description), 60),
		})
	}
	total := bold(shaded(spanned(cell("Total Carga Horária:", 40), 2)))
	total.align = alignRight
	freq.rows = append(freq.rows, docxRow{
		total,
		bold(cell(strconv.Itoa(doc.TotalCH), 60)),
	})

	return []docxTable{ident, mat, mods, evals, calc, freq}
}

// ── Document writer ──

func twips(pct int) int64 { return int64(textWidthTwips * pct / 100) }

// styled applies the body font and keeps leading and trailing spaces.
func styled(r *docx.Run) *docx.Run {
	for _, c := range r.Children {
		if t, ok := c.(*docx.Text); ok {
			t.XMLSpace = "preserve"
		}
	}
	return r.Font(fontName, fontName, fontName, "").Size(strconv.Itoa(fontHalfPoints))
}

// addTable builds the full grid, then trims each row to its cell count and
// lets gridSpan cover the rest.
func addTable(f *docx.Docx, t docxTable) {
	cols := make([]int64, len(t.cols))
	for i, pct := range t.cols {
		cols[i] = twips(pct)
	}
	borders := &docx.APITableBorderColors{
		Top: borderColor, Left: borderColor, Bottom: borderColor,
		Right: borderColor, InsideH: borderColor, InsideV: borderColor,
	}
	tbl := f.AddTableTwips(make([]int64, len(t.rows)), cols, textWidthTwips, borders)

	for i, row := range t.rows {
		tr := tbl.TableRows[i]
		tr.TableCells = tr.TableCells[:len(row)]
		for j, c := range row {
			fillCell(tr.TableCells[j], c)
		}
	}
}

// fillCell writes one paragraph per non-blank line. Word requires at least
// one paragraph in every cell.
func fillCell(tc *docx.WTableCell, c docxCell) {
	props := tc.TableCellProperties
	props.TableCellWidth = &docx.WTableCellWidth{W: twips(c.width), Type: "dxa"}
	if c.span > 1 {
		props.GridSpan = &docx.WGridSpan{Val: c.span}
	}
	if c.shade != "" {
		tc.Shade("clear", "auto", c.shade)
	}
	props.VAlign = &docx.WVerticalAlignment{Val: "center"}

	wrote := false
	for _, line := range strings.Split(c.text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		r := styled(tc.AddParagraph().Justification(c.align).AddText(line))
		if c.bold {
			r.Bold()
		}
		wrote = true
	}
	if !wrote {
		tc.AddParagraph().Justification(c.align)
	}
}
