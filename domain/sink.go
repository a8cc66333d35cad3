package domain

// TitleSink is a mutable display target for the composed title text:
// a terminal window title, a status file, or plain output.
type TitleSink interface {
	// Set replaces the displayed text.
	Set(text string) error
}
