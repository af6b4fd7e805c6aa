// Package gemini implements question generation using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docsearch"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Generator implements docsearch.QuestionGenerator at compile time.
var _ docsearch.QuestionGenerator = (*Generator)(nil)

// Generator implements docsearch.QuestionGenerator using Google Gemini.
type Generator struct {
	client *genai.Client
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client) *Generator {
	return &Generator{client: client}
}

// Generate produces quiz questions for a documentation section.
func (g *Generator) Generate(ctx context.Context, chapter string, section docsearch.PageSection) ([]docsearch.Question, error) {
	if chapter == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "chapter required")
	}
	if section.Content == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "section content required")
	}

	result, err := g.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(section)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, docsearch.Errorf(docsearch.EINTERNAL, "gemini returned nil result")
	}

	return ParseQuestions(result.Text(), chapter, section.Title)
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are creating difficult and interesting quiz questions from technical documentation. Base every question only on the section content provided.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildUserPrompt builds the user prompt for a section.
func BuildUserPrompt(section docsearch.PageSection) string {
	var sb strings.Builder
	sb.WriteString(`Analyze the section content below and produce quiz questions:

1. Highlight 3-5 interesting or challenging parts of the section.
2. Generate 1-2 multiple-choice questions based on these parts.
3. Generate 1 difficult, well-specified programming problem. Include a hint
   that pins down any ambiguous parts, starter code, and test code that runs
   the solution on diverse inputs with expected outputs in comments.
4. Add an explanation for each answer.

Respond with a JSON object of the form
{"questions": [{"type": "multiple_choice" | "programming", "question": "...",
"choices": ["..."], "correct_answers": [0], "starter_code": "...",
"test_code": "...", "hint": "...", "explanation": "..."}]}.

`)
	fmt.Fprintf(&sb, "Section Title: %s\n", section.Title)
	fmt.Fprintf(&sb, "Section Content: %s", section.Content)
	return sb.String()
}

// questionPayload mirrors the JSON shape the model is asked to produce.
type questionPayload struct {
	Type           string   `json:"type"`
	Question       string   `json:"question"`
	Choices        []string `json:"choices"`
	CorrectAnswers []int    `json:"correct_answers"`
	StarterCode    string   `json:"starter_code"`
	TestCode       string   `json:"test_code"`
	Hint           string   `json:"hint"`
	Explanation    string   `json:"explanation"`
}

// ParseQuestions decodes the model output, assigning IDs and tagging each
// question with its chapter and section.
func ParseQuestions(text, chapter, sectionTitle string) ([]docsearch.Question, error) {
	var payload struct {
		Questions []questionPayload `json:"questions"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, docsearch.Errorf(docsearch.EINTERNAL, "failed to parse model output: %v", err)
	}

	questions := make([]docsearch.Question, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		choices := q.Choices
		if choices == nil {
			choices = []string{}
		}
		correct := q.CorrectAnswers
		if correct == nil {
			correct = []int{}
		}
		questions = append(questions, docsearch.Question{
			ID:             uuid.New().String(),
			Chapter:        chapter,
			Section:        sectionTitle,
			Type:           q.Type,
			Question:       q.Question,
			Choices:        choices,
			CorrectAnswers: correct,
			StarterCode:    q.StarterCode,
			TestCode:       q.TestCode,
			Hint:           q.Hint,
			Explanation:    q.Explanation,
		})
	}
	return questions, nil
}
