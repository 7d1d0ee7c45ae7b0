// Package quiz turns free-text multiple-choice completions into structured
// questions.
package quiz

import (
	"strings"

	"widviz/types"
)

const answerMarker = "Answer:"

type parserState int

const (
	noQuestionOpen parserState = iota
	questionOpen
)

type parser struct {
	state   parserState
	current types.QuizQuestion
	out     []types.QuizQuestion
}

// Parse scans text line by line. It never fails: unrecognised lines are
// skipped and incomplete questions are returned as-is.
func Parse(text string) []types.QuizQuestion {
	p := &parser{}
	for _, raw := range strings.Split(text, "\n") {
		p.feed(strings.TrimSpace(raw))
	}
	p.close()
	if p.out == nil {
		return []types.QuizQuestion{}
	}
	return p.out
}

func (p *parser) feed(line string) {
	switch {
	case isQuestionLine(line):
		p.close()
		p.open(line)
	case isOptionLine(line):
		if p.state == questionOpen {
			p.current.Options = append(p.current.Options, line)
		}
	case strings.Contains(line, answerMarker):
		if p.state == questionOpen {
			idx := strings.LastIndex(line, answerMarker)
			p.current.Answer = strings.TrimSpace(line[idx+len(answerMarker):])
		}
	}
}

func (p *parser) open(line string) {
	_, text, _ := strings.Cut(line, ".")
	text = strings.TrimSpace(text)
	if !strings.HasSuffix(text, "?") {
		text += "?"
	}
	p.current = types.QuizQuestion{Question: text, Options: []string{}}
	p.state = questionOpen
}

func (p *parser) close() {
	if p.state != questionOpen {
		return
	}
	p.out = append(p.out, p.current)
	p.current = types.QuizQuestion{}
	p.state = noQuestionOpen
}

func isQuestionLine(line string) bool {
	return line != "" && line[0] >= '0' && line[0] <= '9' && strings.Contains(line, ".")
}

func isOptionLine(line string) bool {
	if len(line) < 2 || line[1] != ')' {
		return false
	}
	switch line[0] {
	case 'a', 'b', 'c', 'd':
		return true
	}
	return false
}
