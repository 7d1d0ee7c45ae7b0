package types

// QuizQuestion is one multiple-choice question extracted from generated text.
// Options keep their "a)".."d)" labels exactly as generated; Answer may be empty.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}
