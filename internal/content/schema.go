package content

import "github.com/abhisek/placeprep/internal/llm"

// QuestionBatchSchema defines the JSON schema for assessment question
// generation responses.
var QuestionBatchSchema = &llm.Schema{
	Name:        "exam-questions",
	Description: "A batch of multiple-choice placement-exam questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question text shown to the candidate",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer choices in A-D order",
						},
						"correct": map[string]any{
							"type":        "string",
							"enum":        []any{"A", "B", "C", "D"},
							"description": "The label of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is correct",
						},
						"subject": map[string]any{
							"type":        "string",
							"description": "The subject this question belongs to",
						},
						"kind": map[string]any{
							"type":        "string",
							"description": "Question style, e.g. conceptual, code-output, debugging",
						},
					},
					"required":             []any{"prompt", "options", "correct", "explanation", "subject", "kind"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// GapAnalysisSchema defines the JSON schema for weak-area analysis.
var GapAnalysisSchema = &llm.Schema{
	Name:        "gap-analysis",
	Description: "Weak areas and study recommendations derived from missed questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"weak_areas": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Short topic labels the candidate should revisit",
			},
			"recommendations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"topic": map[string]any{"type": "string"},
						"resources": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"name": map[string]any{"type": "string"},
									"url":  map[string]any{"type": "string"},
								},
								"required":             []any{"name", "url"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"topic", "resources"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"weak_areas", "recommendations"},
		"additionalProperties": false,
	},
}

// StudyNotesSchema defines the JSON schema for study note generation.
var StudyNotesSchema = &llm.Schema{
	Name:        "study-notes",
	Description: "Concise study notes for a subject",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"notes": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"topic":   map[string]any{"type": "string"},
						"summary": map[string]any{"type": "string"},
						"key_points": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
					"required":             []any{"topic", "summary", "key_points"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"notes"},
		"additionalProperties": false,
	},
}

// TopicInfoSchema defines the JSON schema for detailed topic explanations.
var TopicInfoSchema = &llm.Schema{
	Name:        "topic-info",
	Description: "A structured deep-dive on a single topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic":    map[string]any{"type": "string"},
			"overview": map[string]any{"type": "string"},
			"sections": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"heading": map[string]any{"type": "string"},
						"body":    map[string]any{"type": "string"},
					},
					"required":             []any{"heading", "body"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"topic", "overview", "sections"},
		"additionalProperties": false,
	},
}

// ResourcesSchema defines the JSON schema for external resource lists.
var ResourcesSchema = &llm.Schema{
	Name:        "external-resources",
	Description: "Named links to external study material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"resources": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
						"url":  map[string]any{"type": "string"},
					},
					"required":             []any{"name", "url"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"resources"},
		"additionalProperties": false,
	},
}

// CodingProblemsSchema defines the JSON schema for contest problem generation.
var CodingProblemsSchema = &llm.Schema{
	Name:        "coding-problems",
	Description: "A batch of contest coding problems with starter code",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problems": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":       map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"difficulty":  map[string]any{"type": "string"},
						"subject":     map[string]any{"type": "string"},
						"examples": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"input":  map[string]any{"type": "string"},
									"output": map[string]any{"type": "string"},
								},
								"required":             []any{"input", "output"},
								"additionalProperties": false,
							},
						},
						"starter_code": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"language": map[string]any{"type": "string"},
									"code":     map[string]any{"type": "string"},
								},
								"required":             []any{"language", "code"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"title", "description", "difficulty", "subject", "examples", "starter_code"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"problems"},
		"additionalProperties": false,
	},
}

// ExecSchema defines the JSON schema for pseudo-execution responses.
var ExecSchema = &llm.Schema{
	Name:        "pseudo-exec",
	Description: "The predicted output of running a code snippet",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"output": map[string]any{
				"type":        "string",
				"description": "Predicted stdout, exactly as an interpreter would print it",
			},
			"error": map[string]any{
				"type":        "string",
				"description": "Compile or runtime error message, empty when the code runs cleanly",
			},
		},
		"required":             []any{"output", "error"},
		"additionalProperties": false,
	},
}
