package testutil

import (
	"github.com/arthur-debert/fastidious/pkg/errors"
)

// ScriptedPrompter answers prompts from a fixed list of characters and
// records the questions it was asked. Running out of answers is a
// USER_INPUT error, as end of input is for the console prompter.
type ScriptedPrompter struct {
	Answers   []rune
	Questions []string
}

// NewScriptedPrompter creates a prompter that answers with answers in order
func NewScriptedPrompter(answers ...rune) *ScriptedPrompter {
	return &ScriptedPrompter{Answers: answers}
}

// Ask implements prompt.Prompter
func (p *ScriptedPrompter) Ask(question string) (rune, error) {
	p.Questions = append(p.Questions, question)
	if len(p.Answers) == 0 {
		return 0, errors.New(errors.ErrUserInput, "no scripted answer left")
	}
	r := p.Answers[0]
	p.Answers = p.Answers[1:]
	return r, nil
}
