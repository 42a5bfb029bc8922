package question

import "mathmystery/internal/llm"

// QuestionSchema defines the JSON structure for generated questions.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single multiple-choice math question with answer and explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "The problem statement shown to the student",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Exactly 4 answer options",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The correct answer. Must exactly match one of the options.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Brief step-by-step explanation of the solution",
			},
		},
		"required":             []any{"text", "options", "correct_answer", "explanation"},
		"additionalProperties": false,
	},
}

// OracleSchema defines the JSON structure for sourced oracle answers.
var OracleSchema = &llm.Schema{
	Name:        "oracle-answer",
	Description: "A long-form answer to a math question with source references",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "The answer to the student's question",
			},
			"sources": map[string]any{
				"type":        "array",
				"description": "Up to 5 references backing the answer",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"uri":   map[string]any{"type": "string"},
						"title": map[string]any{"type": "string"},
					},
					"required":             []any{"uri", "title"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"text", "sources"},
		"additionalProperties": false,
	},
}
