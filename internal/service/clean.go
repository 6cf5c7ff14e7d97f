package service

import (
	"regexp"
	"strings"
)

// minExplanationLength is the shortest cleaned response accepted from a
// provider; anything shorter counts as a failed generation.
const minExplanationLength = 20

var (
	thinkTagRe     = regexp.MustCompile(`(?s)<think>.*?</think>`)
	thinkingTagRe  = regexp.MustCompile(`(?is)\[THINKING\].*?\[/THINKING\]`)
	thinkingNoteRe = regexp.MustCompile(`(?s)\*\*Pensando\*\*:.*?(\n\n|\z)`)
	prefixRe       = regexp.MustCompile(`(?i)^(Explicación:|Tu explicación:|Respuesta:)\s*`)
	blankRunsRe    = regexp.MustCompile(`\n{3,}`)
	spaceRunsRe    = regexp.MustCompile(` {2,}`)
)

// CleanResponse normalizes raw model output before length validation:
// delimited reasoning segments some models emit are stripped, as are
// boilerplate answer prefixes; runs of blank lines and spaces are collapsed.
func CleanResponse(response string) string {
	if response == "" {
		return ""
	}

	response = thinkTagRe.ReplaceAllString(response, "")
	response = thinkingTagRe.ReplaceAllString(response, "")
	response = thinkingNoteRe.ReplaceAllString(response, "")
	response = prefixRe.ReplaceAllString(response, "")
	response = blankRunsRe.ReplaceAllString(response, "\n\n")
	response = spaceRunsRe.ReplaceAllString(response, " ")

	return strings.TrimSpace(response)
}

// usable reports whether a cleaned response meets the minimum length bar.
func usable(cleaned string) bool {
	return len(strings.TrimSpace(cleaned)) >= minExplanationLength
}
