package docsearch

import "context"

// Question type values.
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeProgramming    = "programming"
)

// Question is a generated quiz question for a documentation section.
type Question struct {
	ID             string   `json:"id"`
	Chapter        string   `json:"chapter"`
	Section        string   `json:"section"`
	Type           string   `json:"type"`
	Question       string   `json:"question"`
	Choices        []string `json:"choices"`
	CorrectAnswers []int    `json:"correct_answers"`
	StarterCode    string   `json:"starter_code"`
	TestCode       string   `json:"test_code"`
	Hint           string   `json:"hint"`
	Explanation    string   `json:"explanation"`
}

// PageSection is a titled slice of page content used as question-generation
// input.
type PageSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// QuestionGenerator produces quiz questions for a documentation section.
type QuestionGenerator interface {
	// Generate returns questions for the section, tagged with the chapter
	// and section title.
	Generate(ctx context.Context, chapter string, section PageSection) ([]Question, error)
}
