package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/placeprep/internal/account"
	"github.com/abhisek/placeprep/internal/llm"
)

// Service generates exam content through an LLM provider. Every list call
// fails open: a parse failure degrades to an empty result, never a crash.
type Service struct {
	provider llm.Provider
	cfg      Config

	// online reports connectivity. Injected for tests; defaults to a
	// short TCP probe.
	online func() bool
}

// NewService creates a content Service with the given provider and config.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
		online:   defaultOnlineCheck,
	}
}

// SetOnlineCheck overrides the connectivity probe.
func (s *Service) SetOnlineCheck(f func() bool) {
	s.online = f
}

// Online reports whether content generation is currently possible.
func (s *Service) Online() bool {
	return s.provider != nil && s.online()
}

// defaultOnlineCheck probes a public resolver. Good enough as a
// precondition gate; a failed generation still degrades safely.
func defaultOnlineCheck() bool {
	conn, err := net.DialTimeout("tcp", "1.1.1.1:53", 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// requireOnline is the shared precondition check for all generation calls.
func (s *Service) requireOnline() error {
	if s.provider == nil || !s.online() {
		return ErrOffline
	}
	return nil
}

type questionBatchOutput struct {
	Questions []struct {
		Prompt      string   `json:"prompt"`
		Options     []string `json:"options"`
		Correct     string   `json:"correct"`
		Explanation string   `json:"explanation"`
		Subject     string   `json:"subject"`
		Kind        string   `json:"kind"`
	} `json:"questions"`
}

// GenerateQuestions requests a question batch for the given subjects and
// difficulty. An empty or unparseable response yields ErrEmptyResult.
func (s *Service) GenerateQuestions(ctx context.Context, subjects []string, difficulty account.Tier, count int) ([]Question, error) {
	if err := s.requireOnline(); err != nil {
		return nil, err
	}
	if count <= 0 {
		count = s.cfg.QuestionCount
	}

	ctx = llm.WithPurpose(ctx, "question-gen")
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: questionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionMessage(subjects, difficulty, count)},
		},
		Schema:      QuestionBatchSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("question generation: %w", err)
	}

	var raw questionBatchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, ErrEmptyResult
	}
	if len(raw.Questions) == 0 {
		return nil, ErrEmptyResult
	}

	batch := uuid.New().String()[:8]
	questions := make([]Question, 0, len(raw.Questions))
	for i, rq := range raw.Questions {
		if rq.Prompt == "" || len(rq.Options) != len(OptionLabels) {
			continue
		}
		opts := make([]Option, len(rq.Options))
		for j, text := range rq.Options {
			opts[j] = Option{Label: OptionLabels[j], Text: text}
		}
		questions = append(questions, Question{
			ID:           fmt.Sprintf("%s-q%d", batch, i+1),
			Prompt:       rq.Prompt,
			Options:      opts,
			CorrectLabel: rq.Correct,
			Explanation:  rq.Explanation,
			Subject:      rq.Subject,
			Type:         rq.Kind,
		})
	}
	if len(questions) == 0 {
		return nil, ErrEmptyResult
	}
	return questions, nil
}

type gapOutput struct {
	WeakAreas       []string `json:"weak_areas"`
	Recommendations []struct {
		Topic     string `json:"topic"`
		Resources []struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"resources"`
	} `json:"recommendations"`
}

// AnalyzeGaps augments a result with weak areas and recommendations.
// A perfect score short-circuits to "no gaps" without a provider call.
// On any failure the caller falls back to the unaugmented result.
func (s *Service) AnalyzeGaps(ctx context.Context, result *AssessmentResult) (*AssessmentResult, error) {
	if result.Total > 0 && result.Score == result.Total {
		return result, nil
	}
	if err := s.requireOnline(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, "gap-analysis")
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: gapSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGapMessage(result)},
		},
		Schema:    GapAnalysisSchema,
		MaxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("gap analysis: %w", err)
	}

	var raw gapOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, ErrEmptyResult
	}

	analyzed := *result
	analyzed.WeakAreas = raw.WeakAreas
	analyzed.Recommendations = make([]Recommendation, 0, len(raw.Recommendations))
	for _, rec := range raw.Recommendations {
		r := Recommendation{Topic: rec.Topic}
		for _, res := range rec.Resources {
			r.Resources = append(r.Resources, Resource{Name: res.Name, URL: res.URL})
		}
		analyzed.Recommendations = append(analyzed.Recommendations, r)
	}
	return &analyzed, nil
}

type notesOutput struct {
	Notes []struct {
		Topic     string   `json:"topic"`
		Summary   string   `json:"summary"`
		KeyPoints []string `json:"key_points"`
	} `json:"notes"`
}

// StudyNotes generates revision notes for a subject. Fails open to an
// empty list on parse failure.
func (s *Service) StudyNotes(ctx context.Context, subject string) ([]Note, error) {
	if err := s.requireOnline(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, "study-notes")
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: notesSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Subject: " + subject},
		},
		Schema:    StudyNotesSchema,
		MaxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("study notes: %w", err)
	}

	var raw notesOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return []Note{}, nil
	}
	notes := make([]Note, 0, len(raw.Notes))
	for _, n := range raw.Notes {
		notes = append(notes, Note{Topic: n.Topic, Summary: n.Summary, KeyPoints: n.KeyPoints})
	}
	return notes, nil
}

// DetailedInfo generates a deep-dive on one topic. Fails open to nil on
// parse failure.
func (s *Service) DetailedInfo(ctx context.Context, topic string) (*TopicInfo, error) {
	if err := s.requireOnline(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, "topic-info")
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: topicSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Topic: " + topic},
		},
		Schema:    TopicInfoSchema,
		MaxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("topic info: %w", err)
	}

	var raw struct {
		Topic    string `json:"topic"`
		Overview string `json:"overview"`
		Sections []struct {
			Heading string `json:"heading"`
			Body    string `json:"body"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, nil
	}
	info := &TopicInfo{Topic: raw.Topic, Overview: raw.Overview}
	for _, sec := range raw.Sections {
		info.Sections = append(info.Sections, TopicSection{Heading: sec.Heading, Body: sec.Body})
	}
	return info, nil
}

// ExternalResources lists study links for a topic. Fails open to an
// empty list on parse failure.
func (s *Service) ExternalResources(ctx context.Context, topic string) ([]Resource, error) {
	if err := s.requireOnline(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, "resources")
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: resourcesSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Topic: " + topic},
		},
		Schema:    ResourcesSchema,
		MaxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("external resources: %w", err)
	}

	var raw struct {
		Resources []struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"resources"`
	}
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return []Resource{}, nil
	}
	resources := make([]Resource, 0, len(raw.Resources))
	for _, r := range raw.Resources {
		resources = append(resources, Resource{Name: r.Name, URL: r.URL})
	}
	return resources, nil
}

type problemsOutput struct {
	Problems []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Difficulty  string `json:"difficulty"`
		Subject     string `json:"subject"`
		Examples    []struct {
			Input  string `json:"input"`
			Output string `json:"output"`
		} `json:"examples"`
		StarterCode []struct {
			Language string `json:"language"`
			Code     string `json:"code"`
		} `json:"starter_code"`
	} `json:"problems"`
}

// GenerateCodingProblems requests contest problems. An empty or
// unparseable response yields ErrEmptyResult.
func (s *Service) GenerateCodingProblems(ctx context.Context, subjects []string, difficulty account.Tier, count int) ([]CodingProblem, error) {
	if err := s.requireOnline(); err != nil {
		return nil, err
	}
	if count <= 0 {
		count = s.cfg.ProblemCount
	}

	ctx = llm.WithPurpose(ctx, "problem-gen")
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: problemsSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildProblemsMessage(subjects, difficulty, count)},
		},
		Schema:      CodingProblemsSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("problem generation: %w", err)
	}

	var raw problemsOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, ErrEmptyResult
	}
	if len(raw.Problems) == 0 {
		return nil, ErrEmptyResult
	}

	problems := make([]CodingProblem, 0, len(raw.Problems))
	for i, rp := range raw.Problems {
		p := CodingProblem{
			ID:          fmt.Sprintf("p%d", i+1),
			Title:       rp.Title,
			Description: rp.Description,
			Difficulty:  rp.Difficulty,
			Subject:     rp.Subject,
			StarterCode: make(map[string]string, len(rp.StarterCode)),
		}
		for _, ex := range rp.Examples {
			p.Examples = append(p.Examples, IOExample{Input: ex.Input, Output: ex.Output})
		}
		for _, sc := range rp.StarterCode {
			p.StarterCode[sc.Language] = sc.Code
		}
		problems = append(problems, p)
	}
	return problems, nil
}

// PseudoExecute asks the provider to predict the output of running code.
// Best-effort and advisory: the result is display-only.
func (s *Service) PseudoExecute(ctx context.Context, code, language, stdin string) (*ExecResult, error) {
	if err := s.requireOnline(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, "pseudo-exec")
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: execSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildExecMessage(code, language, stdin)},
		},
		Schema:    ExecSchema,
		MaxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("pseudo execution: %w", err)
	}

	var raw struct {
		Output string `json:"output"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, ErrEmptyResult
	}
	return &ExecResult{Output: raw.Output, Error: raw.Error}, nil
}
