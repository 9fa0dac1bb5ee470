package exam

import "strings"

// Request is the caller-supplied exam configuration. TopicHeadings is a
// comma-separated list.
type Request struct {
	CourseName    string `json:"courseName"`
	ExamType      string `json:"examType"`
	TopicHeadings string `json:"topicHeadings"`
}

// Params are the constants derived from the exam type.
type Params struct {
	NumQuestions int
	MarksAB      int
	MarksCD      int
	Duration     string
}

// ParamsFor maps an exam type to its parameter set. Anything outside the
// two mid-semester types gets the End-Sem tuple; the frontend only sends
// known values, so unknown ones are treated permissively rather than
// rejected.
func ParamsFor(examType string) Params {
	switch examType {
	case "MST-1", "MST-2":
		return Params{NumQuestions: 2, MarksAB: 3, MarksCD: 4, Duration: "1 Hour"}
	default:
		return Params{NumQuestions: 5, MarksAB: 4, MarksCD: 6, Duration: "3 Hours"}
	}
}

// SplitTopics splits the comma-separated heading list into trimmed topics.
func SplitTopics(headings string) []string {
	raw := strings.Split(headings, ",")
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		out = append(out, strings.TrimSpace(t))
	}
	return out
}

// OutlineEntry is a phase-1 result: which topic question N covers.
type OutlineEntry struct {
	QuestionNumber int    `json:"questionNumber"`
	Topic          string `json:"topic"`
}

// Part is one lettered sub-part of a question. ORText is the alternative
// wording offered when HasOR is set.
type Part struct {
	Label  string `json:"label"`
	Text   string `json:"text"`
	Marks  int    `json:"marks"`
	HasOR  bool   `json:"hasOR,omitempty"`
	ORText string `json:"orText,omitempty"`
}

type Question struct {
	QuestionNumber int    `json:"questionNumber"`
	Parts          []Part `json:"parts"`
}

// Info is the exam metadata echoed back to the caller.
type Info struct {
	Duration     string `json:"duration"`
	NumQuestions int    `json:"numQuestions"`
}

// Paper is the fully assembled result of one build.
type Paper struct {
	Questions []Question `json:"questions"`
	Info      Info       `json:"examInfo"`
	ModelUsed string     `json:"modelUsed"`
}
