package cmd

import (
	"time"

	"github.com/spf13/pflag"
)

// Flag defaults mirror the configuration defaults so --help stays truthful;
// only flags set explicitly override the config file and environment.

func addInputFlags(fs *pflag.FlagSet) {
	fs.String("input", "Input.xlsx", "input list with URL_ID and URL columns (.xlsx or .csv)")
	fs.String("sheet", "", "workbook sheet to read (default: first sheet)")
}

func addDocumentFlags(fs *pflag.FlagSet) {
	fs.String("dir", "extracted_articles", "directory of extracted <URL_ID>.txt files")
}

func addFetchFlags(fs *pflag.FlagSet) {
	fs.String("engine", "http", "fetch engine: http or colly")
	fs.Duration("timeout", 30*time.Second, "per-request timeout")
	fs.Float64("rate", 0, "maximum requests per second (0 = unlimited)")
	fs.String("body-mode", "paragraphs", "body extraction: paragraphs or readability")
	fs.Bool("keep-markdown", false, "also store a Markdown snapshot per article")
}

func addAnalyzeFlags(fs *pflag.FlagSet) {
	fs.String("positive", "positive-words.txt", "positive word list")
	fs.String("negative", "negative-words.txt", "negative word list")
	fs.Bool("strict", false, "fail when a word list is missing")
	fs.String("report", "output_results.csv", "report destination; the extension follows --format")
	fs.String("format", "csv", "report format: csv, json, markdown or pdf")
}

func addMetricsFlags(fs *pflag.FlagSet) {
	fs.String("metrics-file", "", "write Prometheus textfile metrics here when the command ends")
}
