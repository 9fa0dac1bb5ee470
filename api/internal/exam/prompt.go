package exam

import "fmt"

// The prompts lean hard on "JSON only" because the models still wrap
// output in fences or prose often enough that the sanitizer exists.

func OutlinePrompt(courseName, topicHeadings string, numQuestions int) string {
	return fmt.Sprintf(`You must generate ONLY valid JSON. No markdown, no explanations.

Create an exam outline with %d questions.

Course: %s
Topics: %s

Return ONLY this JSON array (no other text):
[
  {"questionNumber": 1, "topic": "topic1"},
  {"questionNumber": 2, "topic": "topic2"}
]

Rules:
- Each question uses a DIFFERENT topic from: %s
- Output ONLY the JSON array
- No markdown, no code blocks, no explanations`,
		numQuestions, courseName, topicHeadings, topicHeadings)
}

func ContentPrompt(courseName, topic string, questionNumber, marksAB, marksCD int) string {
	return fmt.Sprintf(`You must generate ONLY valid JSON. No markdown, no explanations.

Generate ONE exam question:
- Question Number: %d
- Topic: %s
- Course: %s

Return ONLY this JSON (no other text):
{
  "questionNumber": %d,
  "parts": [
    {"label": "a", "text": "Define %s", "marks": %d},
    {"label": "b", "text": "Explain %s", "marks": %d},
    {"label": "c", "text": "Apply %s", "marks": %d, "hasOR": true, "orText": "Analyze %s"}
  ]
}

Rules:
- Part a: Basic definition (%d marks)
- Part b: Explanation (%d marks)
- Part c: Application (%d marks) with hasOR=true and orText
- Make questions specific to: %s
- Output ONLY JSON, no markdown`,
		questionNumber, topic, courseName,
		questionNumber, topic, marksAB, topic, marksAB, topic, marksCD, topic,
		marksAB, marksAB, marksCD, topic)
}
