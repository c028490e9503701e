package grader

import "strings"

// formatKeywords are checked against the prompt in priority order.
var formatKeywords = []struct {
	format   string
	keywords []string
}{
	{"json", []string{"json", "javascript object notation"}},
	{"xml", []string{"xml", "extensible markup language"}},
	{"markdown", []string{"markdown", "md", "github"}},
	{"csv", []string{"csv", "comma separated", "spreadsheet"}},
	{"yaml", []string{"yaml", "yml", "yaml file"}},
}

// DetectFormat guesses which format a response is expected to be in. Prompt
// keywords win (substring match, priority json, xml, markdown, csv, yaml);
// failing that, shape heuristics on the response text; failing that, "text".
func DetectFormat(prompt, response string) string {
	promptLower := strings.ToLower(prompt)
	for _, entry := range formatKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(promptLower, kw) {
				return entry.format
			}
		}
	}

	trimmed := strings.TrimSpace(response)
	switch {
	case strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}"):
		return "json"
	case strings.HasPrefix(trimmed, "<") && strings.Contains(response, ">"):
		return "xml"
	case strings.Contains(response, "#") &&
		(strings.Contains(response, "```") || strings.Contains(response, "*")):
		return "markdown"
	case strings.Contains(response, ",") && strings.Contains(response, "\n") &&
		strings.Count(response, ",") > 2:
		return "csv"
	case strings.Contains(response, ":") &&
		(strings.Contains(response, "-") || strings.Count(response, ":") > 2):
		return "yaml"
	}

	return "text"
}
