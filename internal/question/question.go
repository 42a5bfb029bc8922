package question

// Question is an ephemeral multiple-choice question. Questions are never
// persisted; ids exist only to tell one delivery from the next.
type Question struct {
	// ID is unique per delivery, including fallback deliveries.
	ID string

	// Topic the question was generated for.
	Topic Topic

	// Difficulty is the tier the question was requested at (1-5).
	Difficulty int

	// Text is the problem statement.
	Text string

	// Options holds exactly OptionCount answer choices.
	Options []string

	// CorrectAnswer matches exactly one entry of Options.
	CorrectAnswer string

	// Explanation is a brief worked solution shown after answering.
	Explanation string
}

// IsCorrect reports whether the given option is the correct answer.
func (q *Question) IsCorrect(option string) bool {
	return option == q.CorrectAnswer
}

// Citation is one source reference attached to an oracle answer.
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// OracleAnswer is the result of a free-form oracle query.
type OracleAnswer struct {
	Text    string
	Sources []Citation
}
