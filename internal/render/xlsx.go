package render

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"uece-planner/internal/form"
)

// Sheet names of the workbook, in order.
const (
	SheetIdentification = "Identificação"
	SheetModules        = "Módulos"
	SheetEvaluations    = "Avaliações"
	SheetAttendance     = "Frequência"
)

// XLSXRenderer writes the plan as a spreadsheet workbook.
type XLSXRenderer struct{}

// NewXLSXRenderer creates the workbook renderer.
func NewXLSXRenderer() *XLSXRenderer { return &XLSXRenderer{} }

func (r *XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *XLSXRenderer) Extension() string { return string(FormatXLSX) }

// Render builds one sheet per section.
func (r *XLSXRenderer) Render(doc *form.Document) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}

	w := &sheetWriter{f: f, header: headerStyle, wrap: wrapStyle}
	w.identification(doc)
	w.modules(doc)
	w.evaluations(doc)
	w.attendance(doc)
	if w.err != nil {
		return nil, fmt.Errorf("xlsx: %w", w.err)
	}

	if idx, err := f.GetSheetIndex(SheetIdentification); err == nil {
		f.SetActiveSheet(idx)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	return buf, nil
}

// sheetWriter keeps the first error so the section writers stay linear.
type sheetWriter struct {
	f      *excelize.File
	header int
	wrap   int
	err    error
}

func (w *sheetWriter) sheet(name string, widths ...float64) {
	if w.err != nil {
		return
	}
	if _, w.err = w.f.NewSheet(name); w.err != nil {
		return
	}
	for i, width := range widths {
		col := colName(i)
		if w.err = w.f.SetColWidth(name, col, col, width); w.err != nil {
			return
		}
	}
}

func (w *sheetWriter) row(sheet string, row int, values ...any) {
	if w.err != nil {
		return
	}
	for i, v := range values {
		if w.err = w.f.SetCellValue(sheet, cell(colName(i), row), v); w.err != nil {
			return
		}
	}
	if len(values) > 0 {
		w.err = w.f.SetCellStyle(sheet, cell("A", row), cell(colName(len(values)-1), row), w.wrap)
	}
}

func (w *sheetWriter) headerRow(sheet string, row int, values ...any) {
	w.row(sheet, row, values...)
	if w.err != nil || len(values) == 0 {
		return
	}
	w.err = w.f.SetCellStyle(sheet, cell("A", row), cell(colName(len(values)-1), row), w.header)
}

// ── Sections ──

func (w *sheetWriter) identification(doc *form.Document) {
	const s = SheetIdentification
	w.sheet(s, 26, 70)
	w.headerRow(s, 1, "Campo", "Valor")
	row := 2
	for _, spec := range form.StaticFieldSpecs() {
		value := doc.Static.Get(spec.Key)
		if spec.Key == form.KeyWebconfURL {
			value = WebconfText(doc.Static)
		} else if spec.Key == form.KeyWebconfType {
			continue
		}
		w.row(s, row, spec.Label, Text(value))
		row++
	}
}

func (w *sheetWriter) modules(doc *form.Document) {
	const s = SheetModules
	w.sheet(s, 28, 18, 30, 20, 20, 18, 50)
	w.headerRow(s, 1, "Módulo", "Tipo", "Título", "Início", "Fim", "Pontuação", "Descrição")
	row := 2
	for _, m := range doc.Modules {
		if len(m.Resources) == 0 {
			w.row(s, row, ModuleHeading(m), Placeholder, NoResources)
			row++
			continue
		}
		for _, res := range m.Resources {
			start, _ := windowText(res.Start)
			end, _ := windowText(res.End)
			w.row(s, row,
				ModuleHeading(m),
				Text(string(res.Type)),
				Text(res.Title),
				Text(start),
				Text(end),
				scoreCell(res.Evaluation),
				Text(res.Description),
			)
			row++
		}
	}
}

func (w *sheetWriter) evaluations(doc *form.Document) {
	const s = SheetEvaluations
	w.sheet(s, 22, 30, 14, 50)
	w.headerRow(s, 1, "Identificação", "Período", "Pontuação", "Detalhes")
	for i, e := range doc.Evaluations {
		ev := DescribeEvaluation(e)
		w.row(s, i+2, ev.Identity, ev.Period, ev.Score, ev.Details)
	}
}

func (w *sheetWriter) attendance(doc *form.Document) {
	const s = SheetAttendance
	w.sheet(s, 14, 8, 60)
	w.headerRow(s, 1, "Data", "CH", "Descrição da Atividade")
	row := 2
	for _, f := range doc.Frequency {
		var hours any = Text(f.Hours)
		if n, ok := form.ParseHours(f.Hours); ok {
			hours = n
		}
		w.row(s, row, Text(FormatDate(f.Date)), hours, Text(f.Description))
		row++
	}
	w.headerRow(s, row, "Total Carga Horária:", doc.TotalCH)
}

func scoreCell(spec form.EvaluationSpec) string {
	switch spec.Method.VisibleInput() {
	case form.InputScore:
		return Text(spec.Score)
	case form.InputRubric:
		return Text(spec.Rubric)
	}
	return Placeholder
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
