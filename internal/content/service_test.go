package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/placeprep/internal/account"
	"github.com/abhisek/placeprep/internal/llm"
)

func newTestService(responses ...llm.MockResponse) (*Service, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	svc := NewService(mock, DefaultConfig())
	svc.SetOnlineCheck(func() bool { return true })
	return svc, mock
}

func questionBatchJSON(n int) json.RawMessage {
	type q struct {
		Prompt      string   `json:"prompt"`
		Options     []string `json:"options"`
		Correct     string   `json:"correct"`
		Explanation string   `json:"explanation"`
		Subject     string   `json:"subject"`
		Kind        string   `json:"kind"`
	}
	batch := struct {
		Questions []q `json:"questions"`
	}{}
	for i := 0; i < n; i++ {
		batch.Questions = append(batch.Questions, q{
			Prompt:      "What is a stack?",
			Options:     []string{"LIFO", "FIFO", "Tree", "Graph"},
			Correct:     "A",
			Explanation: "A stack is last in first out.",
			Subject:     "DSA",
			Kind:        "mcq",
		})
	}
	data, _ := json.Marshal(batch)
	return data
}

func TestGenerateQuestionsOffline(t *testing.T) {
	svc, mock := newTestService()
	svc.SetOnlineCheck(func() bool { return false })

	_, err := svc.GenerateQuestions(context.Background(), []string{"DSA"}, account.TierBeginner, 10)
	if !errors.Is(err, ErrOffline) {
		t.Fatalf("err = %v, want ErrOffline", err)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("provider called %d times while offline", mock.CallCount())
	}
}

func TestGenerateQuestions(t *testing.T) {
	svc, mock := newTestService(llm.MockResponse{Content: questionBatchJSON(10)})

	questions, err := svc.GenerateQuestions(context.Background(), []string{"DSA", "OOP"}, account.TierAdvanced, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(questions) != 10 {
		t.Fatalf("got %d questions, want 10", len(questions))
	}
	for _, q := range questions {
		if q.ID == "" {
			t.Error("question missing ID")
		}
		if len(q.Options) != 4 {
			t.Errorf("question %s has %d options", q.ID, len(q.Options))
		}
		if q.Options[0].Label != "A" || q.Options[3].Label != "D" {
			t.Errorf("question %s labels not A-D", q.ID)
		}
	}
	if mock.CallCount() != 1 {
		t.Fatalf("provider called %d times, want 1", mock.CallCount())
	}
	if mock.Calls[0].Schema.Name != QuestionBatchSchema.Name {
		t.Errorf("schema = %q, want %q", mock.Calls[0].Schema.Name, QuestionBatchSchema.Name)
	}
}

func TestGenerateQuestionsEmptyBatch(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{Content: json.RawMessage(`{"questions":[]}`)})

	_, err := svc.GenerateQuestions(context.Background(), []string{"DSA"}, account.TierBeginner, 10)
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("err = %v, want ErrEmptyResult", err)
	}
}

func TestGenerateQuestionsMalformed(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{Content: json.RawMessage(`not json`)})

	_, err := svc.GenerateQuestions(context.Background(), []string{"DSA"}, account.TierBeginner, 10)
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("err = %v, want ErrEmptyResult", err)
	}
}

func TestGenerateQuestionsSkipsBadOptions(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{Content: json.RawMessage(`{"questions":[
		{"prompt":"ok","options":["a","b","c","d"],"correct":"A","explanation":"e","subject":"DSA","kind":"mcq"},
		{"prompt":"bad","options":["a","b"],"correct":"A","explanation":"e","subject":"DSA","kind":"mcq"}
	]}`)})

	questions, err := svc.GenerateQuestions(context.Background(), []string{"DSA"}, account.TierBeginner, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1 (malformed option set dropped)", len(questions))
	}
}

func TestAnalyzeGapsPerfectScoreSkipsProvider(t *testing.T) {
	svc, mock := newTestService()

	result := &AssessmentResult{Score: 10, Total: 10}
	analyzed, err := svc.AnalyzeGaps(context.Background(), result)
	if err != nil {
		t.Fatal(err)
	}
	if analyzed != result {
		t.Error("perfect result should be returned unchanged")
	}
	if mock.CallCount() != 0 {
		t.Fatalf("provider called %d times for a perfect score", mock.CallCount())
	}
}

func TestAnalyzeGaps(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{Content: json.RawMessage(`{
		"weak_areas":["Recursion","SQL Joins"],
		"recommendations":[{"topic":"Recursion","resources":[{"name":"Guide","url":"https://example.com/r"}]}]
	}`)})

	result := &AssessmentResult{
		Score: 6,
		Total: 10,
		Feedback: []Feedback{
			{Prompt: "q", Selected: "B", Correct: "A", Subject: "DSA"},
		},
	}
	analyzed, err := svc.AnalyzeGaps(context.Background(), result)
	if err != nil {
		t.Fatal(err)
	}
	if len(analyzed.WeakAreas) != 2 {
		t.Fatalf("weak areas = %v", analyzed.WeakAreas)
	}
	if len(analyzed.Recommendations) != 1 || analyzed.Recommendations[0].Topic != "Recursion" {
		t.Fatalf("recommendations = %+v", analyzed.Recommendations)
	}
	if len(result.WeakAreas) != 0 {
		t.Error("input result mutated")
	}
}

func TestStudyNotesFailOpen(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{Content: json.RawMessage(`garbage`)})

	notes, err := svc.StudyNotes(context.Background(), "DBMS")
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 0 {
		t.Fatalf("notes = %v, want empty", notes)
	}
}

func TestExternalResources(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{Content: json.RawMessage(`{
		"resources":[{"name":"Visualgo","url":"https://visualgo.net"}]
	}`)})

	resources, err := svc.ExternalResources(context.Background(), "Sorting")
	if err != nil {
		t.Fatal(err)
	}
	if len(resources) != 1 || resources[0].URL != "https://visualgo.net" {
		t.Fatalf("resources = %+v", resources)
	}
}

func TestGenerateCodingProblems(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{Content: json.RawMessage(`{"problems":[
		{"title":"Two Sum","description":"Find pair summing to target.","difficulty":"easy","subject":"DSA",
		 "examples":[{"input":"[2,7,11,15], 9","output":"[0,1]"}],
		 "starter_code":[{"language":"python","code":"def two_sum(nums, target):\n    pass"},{"language":"go","code":"func twoSum(nums []int, target int) []int { return nil }"}]}
	]}`)})

	problems, err := svc.GenerateCodingProblems(context.Background(), []string{"DSA"}, account.TierExpert, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(problems) != 1 {
		t.Fatalf("got %d problems, want 1", len(problems))
	}
	p := problems[0]
	if p.ID != "p1" {
		t.Errorf("ID = %q", p.ID)
	}
	if len(p.StarterCode) != 2 || p.StarterCode["python"] == "" {
		t.Errorf("starter code = %v", p.StarterCode)
	}
	if len(p.Examples) != 1 {
		t.Errorf("examples = %v", p.Examples)
	}
}

func TestPseudoExecute(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{Content: json.RawMessage(`{"output":"[0, 1]","error":""}`)})

	res, err := svc.PseudoExecute(context.Background(), "print(two_sum([2,7], 9))", "python", "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Output != "[0, 1]" || res.Error != "" {
		t.Fatalf("result = %+v", res)
	}
}

func TestProviderError(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})

	_, err := svc.GenerateQuestions(context.Background(), []string{"DSA"}, account.TierBeginner, 10)
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
}
