// Command gradeval runs grading evaluations over JSONL datasets.
//
// Usage:
//
//	gradeval run [flags] <dataset.jsonl>
//	gradeval report <results.jsonl>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/chainguard-dev/clog"
	"github.com/fatih/color"
	"github.com/sethvargo/go-envconfig"
	"golang.org/x/sync/errgroup"

	"github.com/mskalski/grader"
	"github.com/mskalski/grader/anthropic"
	"github.com/mskalski/grader/gemini"
	"github.com/mskalski/grader/jsonl"
	"github.com/mskalski/grader/strict"
)

type config struct {
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`

	// Judge selects the quality judge backend: anthropic or gemini.
	Judge           string `env:"GRADEVAL_JUDGE,default=anthropic"`
	JudgeModel      string `env:"GRADEVAL_JUDGE_MODEL"`
	CompletionModel string `env:"GRADEVAL_COMPLETION_MODEL"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: gradeval <command> [flags] <file.jsonl>\n\nCommands:\n  run     Run an evaluation over a dataset\n  report  Summarize saved results")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch os.Args[1] {
	case "run":
		return runEval(ctx)
	case "report":
		return runReport(os.Args[2:])
	default:
		return fmt.Errorf("unknown command %q", os.Args[1])
	}
}

// resultsPath returns the default output path for a dataset.
// foo.jsonl -> foo-results.jsonl
func resultsPath(datasetPath string) string {
	dir := filepath.Dir(datasetPath)
	base := filepath.Base(datasetPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, name+"-results"+ext)
}

func runEval(ctx context.Context) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	out := fs.String("out", "", "Output path for results (default <dataset>-results.jsonl)")
	language := fs.String("language", "text", "Language for syntax validation")
	strictMode := fs.Bool("strict", false, "Use strict format validators")
	workers := fs.Int("workers", 4, "Number of parallel workers (1 = sequential)")

	if err := fs.Parse(os.Args[2:]); err != nil {
		return err
	}

	args := fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("usage: gradeval run [flags] <dataset.jsonl>")
	}
	datasetPath := args[0]

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	loader := jsonl.NewLoader()
	cases, err := loader.Load(datasetPath)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if len(cases) == 0 {
		return fmt.Errorf("no test cases found in %s", datasetPath)
	}

	judge, err := buildJudge(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY environment variable required")
	}
	client := anthropic.NewClient(anthropicopt.WithAPIKey(cfg.AnthropicAPIKey))
	var completerOpts []anthropic.CompleterOption
	if cfg.CompletionModel != "" {
		completerOpts = append(completerOpts, anthropic.WithCompleterModel(cfg.CompletionModel))
	}
	completer := anthropic.NewCompleter(client, completerOpts...)

	evalOpts := []grader.EvaluatorOption{grader.WithLanguage(*language)}
	if *strictMode {
		evalOpts = append(evalOpts, grader.WithGraderOptions(strict.GraderOptions()...))
	}
	evaluator := grader.NewEvaluator(completer, judge, evalOpts...)

	clog.InfoContextf(ctx, "running evaluation: %d cases, %d workers", len(cases), *workers)

	runner := &EvalRunner{
		Evaluator: evaluator,
		Cases:     cases,
		Workers:   *workers,
	}
	results, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	outputPath := *out
	if outputPath == "" {
		outputPath = resultsPath(datasetPath)
	}
	store := jsonl.NewStore()
	if err := store.Save(outputPath, results); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	clog.InfoContextf(ctx, "saved %d results to %s", len(results), outputPath)

	printSummary(grader.Summarize(results))
	return nil
}

// buildJudge creates the configured quality judge backend.
func buildJudge(ctx context.Context, cfg config) (grader.Judge, error) {
	switch cfg.Judge {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable required")
		}
		client := anthropic.NewClient(anthropicopt.WithAPIKey(cfg.AnthropicAPIKey))
		var opts []anthropic.JudgeOption
		if cfg.JudgeModel != "" {
			opts = append(opts, anthropic.WithModel(cfg.JudgeModel))
		}
		return anthropic.NewJudge(client, opts...), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable required")
		}
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		model := cfg.JudgeModel
		if model == "" {
			model = gemini.DefaultModel
		}
		return gemini.NewJudge(client, model), nil
	default:
		return nil, fmt.Errorf("unknown judge backend %q", cfg.Judge)
	}
}

// EvalRunner evaluates test cases, optionally in parallel.
type EvalRunner struct {
	Evaluator *grader.Evaluator
	Cases     []grader.TestCase
	// Workers sets the number of parallel workers. If <= 1, runs sequentially.
	Workers int
}

// Run evaluates every case and returns results in dataset order.
func (r *EvalRunner) Run(ctx context.Context) ([]grader.CaseResult, error) {
	if r.Workers > 1 {
		return r.runParallel(ctx)
	}
	return r.runSequential(ctx)
}

func (r *EvalRunner) runSequential(ctx context.Context) ([]grader.CaseResult, error) {
	results := make([]grader.CaseResult, 0, len(r.Cases))
	for _, tc := range r.Cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, r.Evaluator.RunTestCase(ctx, tc))
	}
	return results, nil
}

func (r *EvalRunner) runParallel(ctx context.Context) ([]grader.CaseResult, error) {
	results := make([]grader.CaseResult, len(r.Cases))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)

	for i := range r.Cases {
		tc := r.Cases[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.Evaluator.RunTestCase(ctx, tc)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runReport(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	maxFailures := fs.Int("max-failures", 5, "Maximum failure samples to display")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: gradeval report [flags] <results.jsonl>")
	}

	store := jsonl.NewStore()
	results, err := store.Load(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	if len(results) == 0 {
		return fmt.Errorf("no results found in %s", fs.Arg(0))
	}

	summary := grader.Summarize(results)
	printSummary(summary)
	printFailures(grader.AnalyzeFailures(summary, *maxFailures))
	return nil
}

func printSummary(summary grader.Summary) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	bold.Println("Evaluation Summary")
	fmt.Printf("  Total:  %d\n", summary.TotalTests)
	green.Printf("  Passed: %d\n", summary.PassedTests)
	red.Printf("  Failed: %d\n", summary.FailedTests)
	fmt.Printf("  Pass rate: %.1f%%\n", summary.PassRate*100)
}

func printFailures(analysis grader.FailureAnalysis) {
	if analysis.FailureCount == 0 {
		return
	}

	bold := color.New(color.Bold)
	yellow := color.New(color.FgYellow)

	bold.Println("\nFailure Analysis")
	fmt.Printf("  Errors: %d  Code: %d  Model: %d  Both: %d\n",
		analysis.ErrorFailures, analysis.CodeGraderFailures,
		analysis.ModelGraderFailures, analysis.BothGraderFailures)

	for i, sample := range analysis.SampleFailures {
		yellow.Printf("\n  [%d]\n", i+1)
		fmt.Printf("      Prompt:   %s\n", sample.Prompt)
		fmt.Printf("      Response: %s\n", sample.ActualResponse)
		if sample.FailureReason != "" {
			fmt.Printf("      Reason:   %s\n", sample.FailureReason)
		}
		if sample.CodeGraderFeedback != "" {
			fmt.Printf("      Code:     %s\n", sample.CodeGraderFeedback)
		}
		if sample.ModelGraderFeedback != "" {
			fmt.Printf("      Model:    %s\n", sample.ModelGraderFeedback)
		}
	}
}
