package lang

import "strings"

// Source is the transcription language. Tracks for it are written straight
// from the ASR output without a translation pass.
const Source = "en"

// Supported maps language codes to display names. This table governs
// validation everywhere: codes outside it never reach the pipeline.
var Supported = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"kn": "Kannada",
	"te": "Telugu",
	"ta": "Tamil",
	"ml": "Malayalam",
	"mr": "Marathi",
	"gu": "Gujarati",
	"bn": "Bengali",
	"pa": "Punjabi",
	"or": "Odia",
	"ur": "Urdu",
}

var order = []string{"en", "hi", "kn", "te", "ta", "ml", "mr", "gu", "bn", "pa", "or", "ur"}

// Codes returns all supported language codes in stable order.
func Codes() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

func IsSupported(code string) bool {
	_, ok := Supported[code]
	return ok
}

// Name returns the display name for a code, or the code itself if unknown.
func Name(code string) string {
	if name, ok := Supported[code]; ok {
		return name
	}
	return code
}

// ParseList turns a raw comma-separated language request into a validated
// code list. Unknown codes are silently dropped; if nothing survives the
// filter (or the request was empty) the full supported set is returned.
func ParseList(raw string) []string {
	var requested []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		code := strings.ToLower(strings.TrimSpace(part))
		if code == "" || !IsSupported(code) || seen[code] {
			continue
		}
		seen[code] = true
		requested = append(requested, code)
	}
	if len(requested) == 0 {
		return Codes()
	}
	return requested
}
