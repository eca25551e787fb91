package ui

// prompt is the single-line path input shown in the status row. It stands
// in for the open and save dialogs.
type prompt struct {
	label  string
	input  []rune
	submit func(path string) error
}

func (p *prompt) insert(r rune) {
	p.input = append(p.input, r)
}

func (p *prompt) backspace() {
	if len(p.input) > 0 {
		p.input = p.input[:len(p.input)-1]
	}
}

func (p *prompt) value() string {
	return string(p.input)
}

// text is the status row content.
func (p *prompt) text() string {
	return p.label + ": " + string(p.input)
}
