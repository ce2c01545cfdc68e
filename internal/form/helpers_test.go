package form

// ── Test helpers ──

func filledStatic() StaticFields {
	return StaticFields{
		KeyTurma:       "T01",
		KeySemestre:    "2025.1",
		KeyCurso:       "Licenciatura em Computação",
		KeyDisciplina:  "Algoritmos",
		KeyCreditos:    "4 / 68h",
		KeyPolos:       "Fortaleza",
		KeyLivro:       "Cormen, Algoritmos",
		KeyMaterial:    "Slides",
		KeyWebconfType: WebconfStandard,
		KeyCalcNPC1:    "Média das tarefas",
		KeyCalcNPC2:    "Prova",
		KeyCalcMedia:   "(NPC1+NPC2)/2",
	}
}

// minimalValidDraft: one module with one filled resource, one NPC
// evaluation, one attendance row and every static field set.
func minimalValidDraft() *Draft {
	d := NewDraft()
	d.Static = filledStatic()
	d.Modules = []Module{{
		Handle: "m1",
		Title:  "Introdução",
		Intro:  "Apresentação da disciplina",
		Resources: []Resource{{
			Handle:      "r1",
			Type:        ResourceTask,
			Title:       "Tarefa 1",
			Start:       DateWindow{Enabled: ToggleYes, Date: "2025-03-10", Time: "08:00"},
			End:         DateWindow{Enabled: ToggleNo},
			Evaluation:  EvaluationSpec{Method: MethodScore, Score: "2,5"},
			Description: "Lista de exercícios",
		}},
	}}
	d.Evaluations = []Evaluation{{
		Handle:      "e1",
		Identity:    IdentityNPC,
		Type:        "Prova online",
		Start:       DateWindow{Enabled: ToggleYes, Date: "2025-04-01", Time: "19:00"},
		End:         DateWindow{Enabled: ToggleYes, Date: "2025-04-01", Time: "21:00"},
		Evaluation:  EvaluationSpec{Method: MethodRubric, Rubric: "Rubrica anexa"},
		Description: "Conteúdo dos módulos 1 e 2",
	}}
	d.Frequency = []AttendanceRow{{Handle: "f1", Date: "2025-03-10", Hours: "4", Description: "Aula inaugural"}}
	return d
}
