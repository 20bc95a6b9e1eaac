package translate

import "context"

// Translator is the common interface for all translation engines. The
// source code may be "auto" to let the engine detect the input language.
type Translator interface {
	// Translate converts text to the target language.
	Translate(ctx context.Context, text, source, target string) (string, error)
	// Name returns the engine name.
	Name() string
}
