package driven

// Clipboard publishes extracted text for external consumption.
type Clipboard interface {
	// WriteText replaces the clipboard contents with text.
	WriteText(text string) error
}
