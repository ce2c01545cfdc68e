package form

// StaticKey identifies one top-level scalar field of a plan.
// The string values double as the keys of the stored draft.
type StaticKey string

const (
	KeyTurma       StaticKey = "id_turma"
	KeySemestre    StaticKey = "id_semestre"
	KeyCurso       StaticKey = "id_curso"
	KeyDisciplina  StaticKey = "id_disciplina"
	KeyCreditos    StaticKey = "id_ch"
	KeyPolos       StaticKey = "id_polos"
	KeyLivro       StaticKey = "mat_livro"
	KeyMaterial    StaticKey = "mat_adicional"
	KeyWebconfType StaticKey = "webconf_type"
	KeyWebconfURL  StaticKey = "mat_webconf"
	KeyCalcNPC1    StaticKey = "calc_npc1"
	KeyCalcNPC2    StaticKey = "calc_npc2"
	KeyCalcMedia   StaticKey = "calc_media"
)

// Webconf room types.
const (
	WebconfStandard = "padrão"
	WebconfCustom   = "personalizado"
)

// FieldSpec describes one registered static field.
type FieldSpec struct {
	Key   StaticKey
	Label string
	// Required marks fields that must be non-blank at export time.
	// The webconf URL is handled separately: it is required only for custom rooms.
	Required bool
}

var staticRegistry = []FieldSpec{
	{Key: KeyTurma, Label: "Turma", Required: true},
	{Key: KeySemestre, Label: "Semestre", Required: true},
	{Key: KeyCurso, Label: "Curso", Required: true},
	{Key: KeyDisciplina, Label: "Disciplina", Required: true},
	{Key: KeyCreditos, Label: "Créditos/CH", Required: true},
	{Key: KeyPolos, Label: "Polos", Required: true},
	{Key: KeyLivro, Label: "Livro (Biblioteca)", Required: true},
	{Key: KeyMaterial, Label: "Material Adicional", Required: true},
	{Key: KeyWebconfType, Label: "Webconf (Tipo)"},
	{Key: KeyWebconfURL, Label: "Webconf (Sala)"},
	{Key: KeyCalcNPC1, Label: "NPC 1", Required: true},
	{Key: KeyCalcNPC2, Label: "NPC 2", Required: true},
	{Key: KeyCalcMedia, Label: "Média Final", Required: true},
}

var staticIndex = func() map[StaticKey]FieldSpec {
	m := make(map[StaticKey]FieldSpec, len(staticRegistry))
	for _, f := range staticRegistry {
		m[f.Key] = f
	}
	return m
}()

// StaticFieldSpecs returns the registry in form order.
func StaticFieldSpecs() []FieldSpec {
	out := make([]FieldSpec, len(staticRegistry))
	copy(out, staticRegistry)
	return out
}

// LookupStatic returns the spec of a registered key.
func LookupStatic(key StaticKey) (FieldSpec, bool) {
	f, ok := staticIndex[key]
	return f, ok
}

// IsStaticKey reports whether s names a registered static field.
func IsStaticKey(s string) bool {
	_, ok := staticIndex[StaticKey(s)]
	return ok
}

// StaticFields maps registered keys to free-text values.
type StaticFields map[StaticKey]string

// Get returns the value stored under key, or "" when absent.
func (s StaticFields) Get(key StaticKey) string {
	if s == nil {
		return ""
	}
	return s[key]
}

// Set stores value under key. Unregistered keys are ignored.
func (s StaticFields) Set(key StaticKey, value string) bool {
	if _, ok := staticIndex[key]; !ok {
		return false
	}
	s[key] = value
	return true
}

// Clone returns an independent copy.
func (s StaticFields) Clone() StaticFields {
	out := make(StaticFields, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// CustomWebconf reports whether the plan asks for a custom webconf room,
// which makes the room URL visible and required.
func (s StaticFields) CustomWebconf() bool {
	return s.Get(KeyWebconfType) == WebconfCustom
}
