package content

import (
	"fmt"
	"strings"

	"github.com/abhisek/placeprep/internal/account"
)

const questionSystemPrompt = `You are an examiner preparing placement-test questions for software engineering candidates.

Rules:
- Generate exactly the requested number of multiple-choice questions for the given subjects and difficulty.
- Each question has exactly 4 options in A-D order, with exactly one correct option.
- Distractors must reflect plausible misunderstandings, not random noise.
- Code snippets inside prompts use plain text, no markdown fences.
- BEGINNER questions test fundamentals, ADVANCED questions test applied understanding, EXPERT questions test edge cases and internals.
- The explanation states concisely why the correct option is right.
- Spread questions evenly across the given subjects.`

const gapSystemPrompt = `You are a placement-exam coach reviewing a candidate's missed questions.

Rules:
- Derive short weak-area topic labels (2-4 words each) from the missed questions only.
- For each weak area, recommend 2-3 real, well-known study resources with working URLs (official docs, MDN, established tutorial sites).
- Do not invent weak areas the missed questions give no evidence for.`

const notesSystemPrompt = `You are a tutor writing compact revision notes for a placement-exam candidate.
Cover the essential topics of the subject. Each note has a one-paragraph summary and 3-5 key points.`

const topicSystemPrompt = `You are a tutor explaining one topic in depth to a placement-exam candidate.
Write a clear overview, then 3-5 sections that build up the topic. Plain text only.`

const resourcesSystemPrompt = `You are a study-resource curator. Return real, well-known resources with working URLs for the given topic: official documentation, established tutorial sites, reference books. No fabricated links.`

const problemsSystemPrompt = `You are a contest setter writing coding problems for a timed placement contest.

Rules:
- Each problem has a clear statement, 2-3 input/output examples, and starter code for python, javascript and go.
- Starter code declares a function signature and reads nothing from stdin; the candidate fills in the body.
- Difficulty matches the requested tier.`

const execSystemPrompt = `You simulate running a code snippet and predict its output.
Report the exact stdout an interpreter would produce. If the code would not compile or would crash, put the message in the error field and leave output as whatever printed before the failure. Never invent output for code that cannot run.`

func buildQuestionMessage(subjects []string, difficulty account.Tier, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subjects: %s\n", strings.Join(subjects, ", "))
	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	fmt.Fprintf(&b, "Number of questions: %d\n", count)
	return b.String()
}

func buildGapMessage(result *AssessmentResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d out of %d\n\nMissed questions:\n", result.Score, result.Total)
	for _, f := range result.Feedback {
		if f.IsCorrect {
			continue
		}
		selected := f.Selected
		if selected == "" {
			selected = "(no answer)"
		}
		fmt.Fprintf(&b, "- [%s] %s\n  answered: %s, correct: %s\n", f.Subject, f.Prompt, selected, f.Correct)
	}
	return b.String()
}

func buildProblemsMessage(subjects []string, difficulty account.Tier, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subjects: %s\n", strings.Join(subjects, ", "))
	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	fmt.Fprintf(&b, "Number of problems: %d\n", count)
	return b.String()
}

func buildExecMessage(code, language, stdin string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Language: %s\n", language)
	if stdin != "" {
		fmt.Fprintf(&b, "Stdin:\n%s\n", stdin)
	}
	fmt.Fprintf(&b, "Code:\n%s", code)
	return b.String()
}
