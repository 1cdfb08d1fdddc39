package views

// Section is the markdown-backed part every page starts with.
type Section struct {
	Title string
	Body  string // trusted HTML rendered from the embedded markdown
}

// Tool is one arsenal card.
type Tool struct {
	Name        string
	Description string
}

// revealParam is the reveal value the wisdom toggle asks for next.
func revealParam(revealed bool) string {
	if revealed {
		return "0"
	}
	return "1"
}

func wisdomLabel(revealed bool) string {
	if revealed {
		return "Conceal Hidden Wisdom"
	}
	return "Reveal Hidden Wisdom"
}

// withTitle replaces the page metadata of an error page.
func withTitle(s Shell, title string) Shell {
	s.Meta = PageMeta{Title: title}
	return s
}
