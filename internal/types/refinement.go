// Package types provides type definitions for the structured data shared by the refinement,
// workflow and matching engines.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Stage is the externally visible stage of an idea refinement response.
type Stage string

// Stage values reported to callers.
const (
	StageAnalysis      Stage = "analysis"
	StageClarification Stage = "clarification"
	StageRefined       Stage = "refined"
)

// QuestionKind is the answer format of a clarifying question.
type QuestionKind string

// QuestionKind values.
const (
	QuestionSingleChoice   QuestionKind = "single-choice"
	QuestionMultipleChoice QuestionKind = "multiple-choice"
	QuestionText           QuestionKind = "text"
)

// IsChoice reports whether answers are picked from Options.
func (k QuestionKind) IsChoice() bool {
	return k == QuestionSingleChoice || k == QuestionMultipleChoice
}

// RawIdeaInput is a refinement request: the free-text idea plus optional answers keyed by question ID.
type RawIdeaInput struct {
	RawIdea        string            `json:"raw_idea" validate:"required,max=10000"`
	Clarifications map[string]string `json:"clarifications,omitempty" validate:"max=20"`
}

// HasClarifications reports whether at least one clarification answer is present.
func (in RawIdeaInput) HasClarifications() bool {
	return len(in.Clarifications) > 0
}

// ClarifyingQuestion is shown to the user when the idea is too vague to structure.
// Required is always false.
type ClarifyingQuestion struct {
	ID       string       `json:"id"`
	Question string       `json:"question"`
	Kind     QuestionKind `json:"type"`
	Options  []string     `json:"options,omitempty"`
	Required bool         `json:"required"`
}

// RefinedIdea is the terminal artifact of refinement. Every field is populated.
type RefinedIdea struct {
	Title         string   `json:"title"`
	Problem       string   `json:"problem"`
	Solution      string   `json:"solution"`
	TargetUser    string   `json:"target_user"`
	WhyNow        string   `json:"why_now"`
	Assumptions   string   `json:"assumptions"`
	SuggestedTags []string `json:"suggested_tags"`
	Confidence    int      `json:"confidence"`
}

// IdeaAnalysis is the first-pass analysis of a raw idea.
type IdeaAnalysis struct {
	CoreProblem        string `json:"core_problem"`
	IdentifiedTarget   string `json:"identified_target"`
	NeedsClarification bool   `json:"needs_clarification"`
	Confidence         int    `json:"confidence"`
	Reasoning          string `json:"reasoning"`
}

// AnalysisSummary is the part of the analysis returned alongside clarifying questions.
type AnalysisSummary struct {
	CoreProblem       string `json:"core_problem"`
	IdentifiedTarget  string `json:"identified_target"`
	SuggestedSolution string `json:"suggested_solution"`
}

// IdeaRefinementResponse is the result of one refinement request.
// Clarification responses carry Analysis and ClarifyingQuestions; refined responses carry RefinedIdea.
type IdeaRefinementResponse struct {
	Stage               Stage                `json:"stage"`
	Analysis            *AnalysisSummary     `json:"analysis,omitempty"`
	ClarifyingQuestions []ClarifyingQuestion `json:"clarifying_questions,omitempty"`
	RefinedIdea         *RefinedIdea         `json:"refined_idea,omitempty"`
}
