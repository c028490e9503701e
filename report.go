package grader

import (
	"fmt"
	"slices"
)

// GraderStats summarize one grader's scores across a batch.
type GraderStats struct {
	AverageScore float64 `json:"average_score"`
	PassedCount  int     `json:"passed_count"`
	PassRate     float64 `json:"pass_rate"`
	MinScore     float64 `json:"min_score"`
	MaxScore     float64 `json:"max_score"`
}

// Report aggregates batch grading results into per-grader statistics.
// FormatGraderStats is nil when no item carried a format grade.
type Report struct {
	Summary               string       `json:"summary"`
	TotalEvaluations      int          `json:"total_evaluations"`
	SuccessfulEvaluations int          `json:"successful_evaluations"`
	FailedEvaluations     int          `json:"failed_evaluations"`
	CodeGraderStats       *GraderStats `json:"code_grader_stats,omitempty"`
	ModelGraderStats      *GraderStats `json:"model_grader_stats,omitempty"`
	FormatGraderStats     *GraderStats `json:"format_grader_stats"`
	Errors                []string     `json:"errors"`
}

// GenerateReport computes per-grader mean/min/max score and pass rate
// across all successfully graded items.
func GenerateReport(batch []BatchItem) Report {
	var successful []BatchItem
	var errors []string
	for _, item := range batch {
		if item.Success {
			successful = append(successful, item)
		} else {
			msg := item.Error
			if msg == "" {
				msg = "Unknown error"
			}
			errors = append(errors, msg)
		}
	}

	report := Report{
		TotalEvaluations:      len(batch),
		SuccessfulEvaluations: len(successful),
		FailedEvaluations:     len(batch) - len(successful),
		Errors:                errors,
	}

	if len(successful) == 0 {
		report.Summary = "No successful evaluations"
		return report
	}

	report.Summary = fmt.Sprintf("Evaluated %d out of %d items successfully", len(successful), len(batch))

	var codeScores, modelScores, formatScores []float64
	var codePassed, modelPassed, formatPassed int
	for _, item := range successful {
		codeScores = append(codeScores, item.Results.Code.Score)
		if item.Results.Code.Passed {
			codePassed++
		}
		modelScores = append(modelScores, item.Results.Quality.Score)
		if item.Results.Quality.Passed {
			modelPassed++
		}
		if item.Results.Format != nil {
			formatScores = append(formatScores, item.Results.Format.Score)
			if item.Results.Format.Passed {
				formatPassed++
			}
		}
	}

	report.CodeGraderStats = statsFor(codeScores, codePassed, len(successful))
	report.ModelGraderStats = statsFor(modelScores, modelPassed, len(successful))
	if len(formatScores) > 0 {
		report.FormatGraderStats = statsFor(formatScores, formatPassed, len(successful))
	}

	return report
}

func statsFor(scores []float64, passed, total int) *GraderStats {
	return &GraderStats{
		AverageScore: mean(scores),
		PassedCount:  passed,
		PassRate:     float64(passed) / float64(total),
		MinScore:     slices.Min(scores),
		MaxScore:     slices.Max(scores),
	}
}
