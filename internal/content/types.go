package content

// OptionLabels are the four labels every generated question uses.
var OptionLabels = []string{"A", "B", "C", "D"}

// Question is a single generated multiple-choice question, immutable once
// generated. IDs are unique within a generation batch.
type Question struct {
	ID           string
	Prompt       string
	Options      []Option
	CorrectLabel string
	Explanation  string
	Subject      string
	Type         string // e.g. "conceptual", "code-output", "debugging"
}

// Option is one labeled answer choice.
type Option struct {
	Label string
	Text  string
}

// OptionText returns the text for a label, or "" if absent.
func (q Question) OptionText(label string) string {
	for _, o := range q.Options {
		if o.Label == label {
			return o.Text
		}
	}
	return ""
}

// Feedback describes one question's outcome in a completed assessment.
type Feedback struct {
	QuestionID string
	Prompt     string
	// Selected is the learner's chosen option label, "" when the
	// question went unanswered.
	Selected    string
	Correct     string
	IsCorrect   bool
	Explanation string
	Subject     string
}

// Resource is a named external study link.
type Resource struct {
	Name string
	URL  string
}

// Recommendation maps a weak topic to suggested resources.
type Recommendation struct {
	Topic     string
	Resources []Resource
}

// AssessmentResult is the scored outcome of one assessment. Produced once,
// folded into the account's attempt history, not separately persisted.
type AssessmentResult struct {
	Score           int
	Total           int
	Feedback        []Feedback
	WeakAreas       []string
	Recommendations []Recommendation
}

// Percent returns the integer percentage score, 0 for an empty result.
func (r AssessmentResult) Percent() int {
	if r.Total == 0 {
		return 0
	}
	return r.Score * 100 / r.Total
}

// Perfect reports a full score on a non-empty assessment. A zero-length
// batch is a generation failure upstream, never a vacuous perfect score.
func (r AssessmentResult) Perfect() bool {
	return r.Total > 0 && r.Score == r.Total
}

// CodingProblem is one generated contest problem.
type CodingProblem struct {
	ID          string
	Title       string
	Description string
	Difficulty  string
	Subject     string
	Examples    []IOExample
	// StarterCode maps a language name to its scaffold source.
	StarterCode map[string]string
}

// IOExample is a sample input/output pair shown with a coding problem.
type IOExample struct {
	Input  string
	Output string
}

// ExecResult is the advisory outcome of pseudo-executing code. It is
// shown as console-like output and never gates progression.
type ExecResult struct {
	Output string
	Error  string
}

// Note is one generated study note.
type Note struct {
	Topic     string
	Summary   string
	KeyPoints []string
}

// TopicInfo is a longer-form explanation of a single topic.
type TopicInfo struct {
	Topic    string
	Overview string
	Sections []TopicSection
}

// TopicSection is one heading/body pair within TopicInfo.
type TopicSection struct {
	Heading string
	Body    string
}
