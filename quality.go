package grader

import (
	"context"
	"fmt"
	"strings"
)

// CriterionScore is one judged dimension of a response.
type CriterionScore struct {
	Score     float64 `json:"score"` // 1-10
	Reasoning string  `json:"reasoning"`
}

// Evaluation is the structured verdict returned by a quality judge.
type Evaluation struct {
	ResponseQuality      CriterionScore `json:"response_quality"`
	InstructionFollowing CriterionScore `json:"instruction_following"`
	Completeness         CriterionScore `json:"completeness"`
	Helpfulness          CriterionScore `json:"helpfulness"`
	Safety               CriterionScore `json:"safety"`
	OverallScore         float64        `json:"overall_score"`
	OverallFeedback      string         `json:"overall_feedback"`
}

// Criteria returns the per-criterion scores in a fixed order, for
// deterministic feedback rendering.
func (e *Evaluation) Criteria() []struct {
	Name  string
	Score CriterionScore
} {
	return []struct {
		Name  string
		Score CriterionScore
	}{
		{"response_quality", e.ResponseQuality},
		{"instruction_following", e.InstructionFollowing},
		{"completeness", e.Completeness},
		{"helpfulness", e.Helpfulness},
		{"safety", e.Safety},
	}
}

// Judge evaluates a prompt/response pair and returns a structured verdict.
// Implementations typically call an external LLM (see the anthropic and
// gemini packages); mocks live in the mock package.
type Judge interface {
	Judge(ctx context.Context, prompt, response string) (*Evaluation, error)
}

// QualityPassThreshold is the overall score at or above which a quality
// grade passes.
const QualityPassThreshold = 7.0

// QualityGrader delegates free-form quality judgment to a Judge. It HAS a
// judge, injected as a narrow interface, rather than wrapping a concrete
// client.
type QualityGrader struct {
	judge Judge
}

// NewQualityGrader creates a QualityGrader backed by the given judge.
func NewQualityGrader(judge Judge) *QualityGrader {
	return &QualityGrader{judge: judge}
}

// Grade asks the judge for a verdict and converts it to a Result.
//
// Judge failures (transport errors, unparseable output) are recovered
// locally into a passed=false, score=0 result -- never propagated -- so
// batch grading cannot abort on one bad judge call.
func (g *QualityGrader) Grade(ctx context.Context, prompt, response string) Result {
	evaluation, err := g.judge.Judge(ctx, prompt, response)
	if err != nil {
		return Result{
			Score:    0.0,
			Feedback: fmt.Sprintf("Model grading failed: %v", err),
			Details:  map[string]any{"error": err.Error()},
			Passed:   false,
		}
	}

	var scores []float64
	var feedbackParts []string
	for _, c := range evaluation.Criteria() {
		scores = append(scores, c.Score.Score)
		reasoning := c.Score.Reasoning
		if reasoning == "" {
			reasoning = "No reasoning provided"
		}
		feedbackParts = append(feedbackParts,
			fmt.Sprintf("%s: %g/10 - %s", c.Name, c.Score.Score, reasoning))
	}

	overallScore := evaluation.OverallScore
	if overallScore == 0 && len(scores) > 0 {
		overallScore = mean(scores)
	}

	overallFeedback := evaluation.OverallFeedback
	if overallFeedback == "" {
		overallFeedback = strings.Join(feedbackParts, "; ")
	}

	return Result{
		Score:    overallScore,
		Feedback: overallFeedback,
		Details:  map[string]any{"evaluation": evaluation},
		Passed:   overallScore >= QualityPassThreshold,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
