package generation

import (
	"fmt"
	"strings"

	"widviz/config"
)

const summaryTemplate = `You are an expert video summarizer. Summarize concisely:
%s
`

const quizTemplate = `Based on the following transcript, generate %d multiple-choice quiz questions:

Format:
1. [Question 1]?
    a) [Option A]
    b) [Option B]
    c) [Option C]
    d) [Option D]
Answer: [Correct Option]

Transcript content:
%s`

// SummaryPrompt wraps transcript in the summarization instruction, cutting it
// to config.SummaryInputLimit characters.
func SummaryPrompt(transcript string) string {
	return fmt.Sprintf(summaryTemplate, truncateRunes(transcript, config.SummaryInputLimit))
}

// QuizPrompt wraps transcript in the quiz instruction, cutting it to
// config.QuizInputLimit characters.
func QuizPrompt(transcript string) string {
	return fmt.Sprintf(quizTemplate, config.QuizQuestionCount, truncateRunes(transcript, config.QuizInputLimit))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// FormatSummary prepares generated text for direct HTML embedding.
func FormatSummary(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\n", "<br>")
	return strings.ReplaceAll(text, "- ", "• ")
}
