package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/goquery"
)

// Run executes the questions command.
func (c *QuestionsCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	sections, err := goquery.ExtractSections(html)
	if err != nil {
		return err
	}
	if len(sections) == 0 {
		return fmt.Errorf("no sections found at %q", c.URL)
	}

	chapter := chapterName(c.URL)

	var questions []docsearch.Question
	for _, section := range sections {
		fmt.Fprintf(deps.Stdout, "generating questions for section: %s\n", section.Title)

		qs, err := deps.Questions.Generate(deps.Ctx, chapter, section)
		if err != nil {
			// Keep the questions generated so far; report and move on.
			fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
			continue
		}
		questions = append(questions, qs...)
	}

	if questions == nil {
		questions = []docsearch.Question{}
	}
	data, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Output, data, 0644); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "wrote %d questions to %s\n", len(questions), c.Output)
	return nil
}

// chapterName derives the chapter identifier from the page URL, e.g.
// "http://x/imperative-programming.html" -> "imperative-programming".
func chapterName(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}
	return strings.TrimSuffix(path.Base(parsed.Path), ".html")
}
