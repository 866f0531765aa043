// Package prompt builds the instruction strings sent to the model and
// post-processes its raw output. Everything here is pure so it can be
// tested without a network.
package prompt

import (
	"fmt"
	"strings"
)

// InterviewQuestions asks for ten numbered questions grounded in the
// resume text.
func InterviewQuestions(resumeText string) string {
	return fmt.Sprintf("Based on the following resume, generate 10 relevant interview questions:\n%s", resumeText)
}

// AnswerFeedback asks for feedback on one question/answer pair along the
// fixed rubric of relevance, clarity and improvement.
func AnswerFeedback(question, answer string) string {
	return fmt.Sprintf(`Question: %s
Candidate's Answer: %s
Please provide professional feedback on relevance, clarity, and improvement.`, question, answer)
}

// Transcription instructs the model to return only the spoken words of an
// attached audio clip.
func Transcription() string {
	return "Transcribe the attached audio exactly as spoken. Return only the transcript text, nothing else."
}

// SplitQuestions turns the model's raw question list into one string per
// line, dropping blank lines. The model output is otherwise trusted as-is:
// no count check, no numbering check.
func SplitQuestions(raw string) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			questions = append(questions, trimmed)
		}
	}
	return questions
}

// CleanFences strips a surrounding markdown code fence, which the model
// sometimes wraps around its output.
func CleanFences(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")

	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}
