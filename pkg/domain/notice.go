package domain

// Notice is the content of a blocking notice layered above the editor.
type Notice struct {
	Header   string
	Messages []string
}

// Itemized reports whether the notice renders as a list rather than plain text.
func (n Notice) Itemized() bool {
	return len(n.Messages) > 1
}
