package question

import (
	"math/rand"

	"github.com/google/uuid"
)

// fallbackBank holds canned questions used when the provider is
// unavailable or returns something unusable. Every topic has at least
// two entries so repeated failures do not always show the same problem.
var fallbackBank = map[Topic][]Question{
	TopicAlgebra: {
		{
			Topic:         TopicAlgebra,
			Difficulty:    1,
			Text:          "Solve for x: 2x + 3 = 11",
			Options:       []string{"3", "4", "5", "7"},
			CorrectAnswer: "4",
			Explanation:   "Subtract 3 from both sides to get 2x = 8, then divide by 2: x = 4.",
		},
		{
			Topic:         TopicAlgebra,
			Difficulty:    2,
			Text:          "Factor: x^2 - 9",
			Options:       []string{"(x - 3)(x - 3)", "(x + 3)(x + 3)", "(x - 3)(x + 3)", "x(x - 9)"},
			CorrectAnswer: "(x - 3)(x + 3)",
			Explanation:   "x^2 - 9 is a difference of squares: a^2 - b^2 = (a - b)(a + b) with a = x and b = 3.",
		},
	},
	TopicGeometry: {
		{
			Topic:         TopicGeometry,
			Difficulty:    1,
			Text:          "What is the sum of the interior angles of a triangle?",
			Options:       []string{"90 degrees", "180 degrees", "270 degrees", "360 degrees"},
			CorrectAnswer: "180 degrees",
			Explanation:   "The interior angles of any triangle always add up to 180 degrees.",
		},
		{
			Topic:         TopicGeometry,
			Difficulty:    2,
			Text:          "A rectangle has sides 5 and 8. What is its area?",
			Options:       []string{"13", "26", "40", "80"},
			CorrectAnswer: "40",
			Explanation:   "The area of a rectangle is base times height: 5 * 8 = 40.",
		},
	},
	TopicCalculus: {
		{
			Topic:         TopicCalculus,
			Difficulty:    1,
			Text:          "What is the derivative of x^2?",
			Options:       []string{"x", "2x", "x^2 / 2", "2"},
			CorrectAnswer: "2x",
			Explanation:   "By the power rule, the derivative of x^n is n * x^(n-1), so the derivative of x^2 is 2x.",
		},
		{
			Topic:         TopicCalculus,
			Difficulty:    2,
			Text:          "What is the integral of 2x dx?",
			Options:       []string{"x^2 + C", "2x^2 + C", "x + C", "2 + C"},
			CorrectAnswer: "x^2 + C",
			Explanation:   "The antiderivative of 2x is x^2, plus the constant of integration C.",
		},
	},
	TopicStatistics: {
		{
			Topic:         TopicStatistics,
			Difficulty:    1,
			Text:          "What is the mean of 2, 4, 6, and 8?",
			Options:       []string{"4", "5", "6", "20"},
			CorrectAnswer: "5",
			Explanation:   "Add the values (2 + 4 + 6 + 8 = 20) and divide by the count (4): 20 / 4 = 5.",
		},
		{
			Topic:         TopicStatistics,
			Difficulty:    2,
			Text:          "A fair coin is flipped twice. What is the probability of two heads?",
			Options:       []string{"1/2", "1/3", "1/4", "1/8"},
			CorrectAnswer: "1/4",
			Explanation:   "Each flip lands heads with probability 1/2, and the flips are independent: 1/2 * 1/2 = 1/4.",
		},
	},
	TopicTrigonometry: {
		{
			Topic:         TopicTrigonometry,
			Difficulty:    1,
			Text:          "What is sin(90 degrees)?",
			Options:       []string{"0", "1/2", "1", "-1"},
			CorrectAnswer: "1",
			Explanation:   "On the unit circle, 90 degrees corresponds to the point (0, 1), so the sine is 1.",
		},
		{
			Topic:         TopicTrigonometry,
			Difficulty:    2,
			Text:          "Which identity is always true?",
			Options:       []string{"sin^2(x) + cos^2(x) = 1", "sin(x) + cos(x) = 1", "tan(x) = cos(x) / sin(x)", "sin(2x) = 2 sin(x)"},
			CorrectAnswer: "sin^2(x) + cos^2(x) = 1",
			Explanation:   "The Pythagorean identity sin^2(x) + cos^2(x) = 1 holds for every angle x.",
		},
	},
}

const fallbackHint = "Read the problem again slowly and write down what you know. Which rule or formula connects the given values to what is asked?"

const fallbackOracleText = "I could not reach the oracle just now. Try asking again in a moment, or rephrase your question."

// fallbackQuestion picks a canned question for the topic with a fresh ID.
func fallbackQuestion(topic Topic, difficulty int) *Question {
	bank, ok := fallbackBank[topic]
	if !ok || len(bank) == 0 {
		bank = fallbackBank[TopicAlgebra]
	}

	q := bank[rand.Intn(len(bank))]
	q.ID = uuid.NewString()
	q.Topic = topic
	q.Difficulty = ClampDifficulty(difficulty)
	return &q
}
