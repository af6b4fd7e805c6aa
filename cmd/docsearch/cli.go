package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docsearch"
)

// pagesFileName is the collect output consumed by build.
const pagesFileName = "pages.json"

// artifactsName is the directory under the data dir holding the committed
// index and registry.
const artifactsName = "index"

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Dir    string
	Logger *slog.Logger

	Source    docsearch.URLSource
	Fetcher   docsearch.Fetcher
	Pages     docsearch.PageService
	Questions docsearch.QuestionGenerator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Collect   CollectCmd   `cmd:"" help:"Discover a site's pages and write pages.json"`
	Build     BuildCmd     `cmd:"" help:"Fetch pages and build the search index"`
	Serve     ServeCmd     `cmd:"" help:"Serve websocket search over the built index"`
	Questions QuestionsCmd `cmd:"" help:"Generate quiz questions for a page"`
}

// CollectCmd is the "collect" subcommand.
type CollectCmd struct {
	URL     string  `arg:"" help:"Base URL of the documentation site"`
	Sitemap bool    `help:"Use the site's sitemap instead of crawling"`
	RPS     float64 `default:"1" help:"Max requests per second while crawling"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	URL         string `arg:"" help:"Base URL of the documentation site"`
	Concurrency int    `short:"c" default:"10" help:"Concurrent fetch limit"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8765" help:"HTTP listen address"`
	TopK int    `default:"10" help:"Maximum results per response"`
}

// QuestionsCmd is the "questions" subcommand.
type QuestionsCmd struct {
	URL    string `arg:"" help:"URL of the page to generate questions for"`
	Output string `short:"o" default:"questions.json" help:"Output file"`
}
