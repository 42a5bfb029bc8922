// Package question produces quiz questions, hints and oracle answers.
// Everything here is best-effort: the LLM backend is consulted first and a
// local fallback bank answers for it when it cannot.
package question

// Topic is one of the five math worlds a student can explore.
type Topic string

const (
	TopicAlgebra      Topic = "Algebra"
	TopicGeometry     Topic = "Geometry"
	TopicCalculus     Topic = "Calculus"
	TopicStatistics   Topic = "Statistics"
	TopicTrigonometry Topic = "Trigonometry"
)

// Topics returns all topics in display order.
func Topics() []Topic {
	return []Topic{
		TopicAlgebra,
		TopicGeometry,
		TopicCalculus,
		TopicStatistics,
		TopicTrigonometry,
	}
}

// Valid reports whether t is one of the five known topics.
func (t Topic) Valid() bool {
	for _, known := range Topics() {
		if t == known {
			return true
		}
	}
	return false
}

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Difficulty bounds, matching the student level range.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// ClampDifficulty forces d into the valid 1-5 range.
func ClampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}
