package form

// ── Toggle: the "Sim/Não" selector bound to a date+time sub-block ──

// Toggle is the three-state enabled flag of a DateWindow.
type Toggle string

const (
	ToggleUnset Toggle = ""
	ToggleNo    Toggle = "Não"
	ToggleYes   Toggle = "Sim"
)

// ParseToggle maps a raw selector value to a Toggle. Unknown values fall
// back to ToggleUnset, the way a select without a matching option does.
func ParseToggle(s string) (Toggle, bool) {
	switch t := Toggle(s); t {
	case ToggleUnset, ToggleNo, ToggleYes:
		return t, true
	}
	return ToggleUnset, false
}

// DateVisible reports whether the date sub-block is shown.
func (t Toggle) DateVisible() bool { return t == ToggleYes }

// BlockEffect is what a toggle change does to its date sub-block.
type BlockEffect int

const (
	BlockUnchanged BlockEffect = iota
	// BlockRevealed shows the sub-block and moves focus to its first field.
	BlockRevealed
	BlockHidden
)

// toggleEffects is keyed by (visible before, visible after).
var toggleEffects = map[[2]bool]BlockEffect{
	{false, false}: BlockUnchanged,
	{false, true}:  BlockRevealed,
	{true, false}:  BlockHidden,
	{true, true}:   BlockUnchanged,
}

// ToggleTransition returns the effect of switching a toggle from one value to another.
func ToggleTransition(from, to Toggle) BlockEffect {
	return toggleEffects[[2]bool{from.DateVisible(), to.DateVisible()}]
}

// ── Evaluation method: switches between score and rubric inputs ──

// EvalMethod is the scoring method of a resource or evaluation.
type EvalMethod string

const (
	MethodUnset  EvalMethod = ""
	MethodNone   EvalMethod = "Nenhum"
	MethodScore  EvalMethod = "Pontuação"
	MethodRubric EvalMethod = "Rúbrica"
)

// ScoreInput names the candidate input a method shows.
type ScoreInput int

const (
	InputHidden ScoreInput = iota
	InputScore
	InputRubric
)

var methodInputs = map[EvalMethod]ScoreInput{
	MethodUnset:  InputHidden,
	MethodNone:   InputHidden,
	MethodScore:  InputScore,
	MethodRubric: InputRubric,
}

// ParseEvalMethod maps a raw selector value to an EvalMethod.
func ParseEvalMethod(s string) (EvalMethod, bool) {
	m := EvalMethod(s)
	if _, ok := methodInputs[m]; ok {
		return m, true
	}
	return MethodUnset, false
}

// VisibleInput returns the single input shown for the method.
// Switching methods never clears the hidden input's value.
func (m EvalMethod) VisibleInput() ScoreInput { return methodInputs[m] }

// ── Resource types ──

// ResourceType is the kind of a module resource.
type ResourceType string

const (
	ResourceUnset ResourceType = ""
	ResourceForum ResourceType = "Fórum"
	ResourceTask  ResourceType = "Tarefa"
	ResourceQuiz  ResourceType = "Questionário"
	ResourceWiki  ResourceType = "Wiki"
)

var resourceTypes = []ResourceType{ResourceForum, ResourceTask, ResourceQuiz, ResourceWiki}

// ParseResourceType maps a raw selector value to a ResourceType.
func ParseResourceType(s string) (ResourceType, bool) {
	if s == "" {
		return ResourceUnset, true
	}
	for _, t := range resourceTypes {
		if string(t) == s {
			return t, true
		}
	}
	return ResourceUnset, false
}

// ── Evaluation identities ──

// Identity names a course-level evaluation. Identities may repeat.
type Identity string

const (
	IdentitySelfAssessment Identity = "Autoavaliação"
	IdentityNPC            Identity = "NPC"
	IdentityNPCRetake      Identity = "2ª Chamada NPC"
	IdentityNEF            Identity = "NEF"
	IdentityNEFRetake      Identity = "2ª Chamada NEF"
)

// DefaultIdentity is used when an evaluation is created without one.
const DefaultIdentity = IdentityNPC

var identities = []Identity{
	IdentitySelfAssessment, IdentityNPC, IdentityNPCRetake, IdentityNEF, IdentityNEFRetake,
}

// ParseIdentity maps a raw selector value to an Identity.
func ParseIdentity(s string) (Identity, bool) {
	for _, id := range identities {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// Layout is the field layout an evaluation card uses.
type Layout int

const (
	LayoutFull Layout = iota
	// LayoutSelfAssessment hides every field except the identity and shows
	// SelfAssessmentNotice in their place.
	LayoutSelfAssessment
)

var identityLayouts = map[Identity]Layout{
	IdentitySelfAssessment: LayoutSelfAssessment,
}

// Layout returns the card layout for the identity.
func (id Identity) Layout() Layout { return identityLayouts[id] }

// SelfAssessment reports whether the identity is the reduced Autoavaliação variant.
func (id Identity) SelfAssessment() bool { return id.Layout() == LayoutSelfAssessment }

// SelfAssessmentNotice replaces the hidden fields of an Autoavaliação card.
const SelfAssessmentNotice = "A configuração padrão será aplicada. Caso a sua seja diferente, favor informar os detalhes no corpo do chamado."
