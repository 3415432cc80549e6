package workflow

import "fmt"

const notesTemplate = `
You are a specialist in generating study notes for UPSC and SSC exams.
A student has asked for notes on: "%s"
Provide detailed, well-structured notes. Use headings and bullet points.
`

const quizTemplate = `
You are a Quiz Generator for competitive exams.
A student has requested a quiz on: "%s"
Generate a 5-question multiple-choice quiz.
Respond ONLY with a valid JSON object in the format:
{
  "topic": "Topic of the quiz",
  "questions": [
    {"question": "...", "options": ["A", "B", "C", "D"], "correct_answer": "..."}
  ]
}
`

const synthesisTemplate = `
You are a current affairs analyst for competitive exams.
A student asked: "%s"
The latest web search results are:
%s
Synthesize these results into a concise summary.
`

// NotesPrompt builds the study-notes instruction for query.
func NotesPrompt(query string) string {
	return fmt.Sprintf(notesTemplate, query)
}

// QuizPrompt builds the multiple-choice quiz instruction for query.
func QuizPrompt(query string) string {
	return fmt.Sprintf(quizTemplate, query)
}

// SynthesisPrompt builds the current-affairs summary instruction from raw search results.
func SynthesisPrompt(query, results string) string {
	return fmt.Sprintf(synthesisTemplate, query, results)
}
