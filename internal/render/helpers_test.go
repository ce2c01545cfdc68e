package render

import "uece-planner/internal/form"

// ── Test helpers ──

func sampleDraft() *form.Draft {
	d := form.NewDraft()
	d.Static = form.StaticFields{
		form.KeyTurma:       "T01",
		form.KeySemestre:    "2025.1",
		form.KeyCurso:       "Licenciatura em Computação",
		form.KeyDisciplina:  "Algoritmos",
		form.KeyCreditos:    "4 / 68h",
		form.KeyPolos:       "Fortaleza & Sobral",
		form.KeyLivro:       "Cormen, Algoritmos",
		form.KeyMaterial:    "Slides\nVídeos",
		form.KeyWebconfType: form.WebconfStandard,
		form.KeyCalcNPC1:    "Média das tarefas",
		form.KeyCalcNPC2:    "Prova",
		form.KeyCalcMedia:   "(NPC1+NPC2)/2",
	}
	d.Modules = []form.Module{
		{
			Handle: "m1",
			Title:  "Introdução",
			Intro:  "Apresentação da disciplina",
			Resources: []form.Resource{{
				Handle:      "r1",
				Type:        form.ResourceTask,
				Title:       "Tarefa 1",
				Start:       form.DateWindow{Enabled: form.ToggleYes, Date: "2025-03-10", Time: "08:00"},
				End:         form.DateWindow{Enabled: form.ToggleNo, Date: "2025-03-20"},
				Evaluation:  form.EvaluationSpec{Method: form.MethodScore, Score: "2,5"},
				Description: "Lista de exercícios",
			}},
		},
		{Handle: "m2", Title: "Grafos", Resources: []form.Resource{}},
	}
	d.Evaluations = []form.Evaluation{
		{Handle: "e0", Identity: form.IdentitySelfAssessment},
		{
			Handle:      "e1",
			Identity:    form.IdentityNPC,
			Type:        "Prova online",
			Start:       form.DateWindow{Enabled: form.ToggleYes, Date: "2025-04-01", Time: "19:00"},
			End:         form.DateWindow{Enabled: form.ToggleYes, Date: "2025-04-01", Time: "21:00"},
			Evaluation:  form.EvaluationSpec{Method: form.MethodRubric, Rubric: "Rubrica anexa"},
			Description: "Conteúdo dos módulos 1 e 2",
		},
	}
	d.Frequency = []form.AttendanceRow{
		{Handle: "f1", Date: "2025-03-10", Hours: "4", Description: "Aula inaugural"},
		{Handle: "f2", Date: "2025-03-17", Hours: "2", Description: "Webconferência"},
	}
	return d
}

func sampleDocument() *form.Document {
	return form.NewDocumentBuilder(false).Build(sampleDraft())
}
