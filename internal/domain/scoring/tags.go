package scoring

import (
	"strings"
	"unicode"

	"spike_detector/internal/domain/entity"
)

var aiKeywords = []string{"gpt", "agent", "neural", "llm"}

// IsPump reports a pump.fun style mint, whose address ends in "pump".
func IsPump(p entity.Pair) bool {
	return strings.HasSuffix(strings.ToLower(p.BaseToken.Address), "pump")
}

// IsAI reports tokens that brand themselves as AI projects.
func IsAI(p entity.Pair) bool {
	name := strings.ToLower(p.BaseToken.Name)
	symbol := strings.ToLower(p.BaseToken.Symbol)

	for _, word := range strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if word == "ai" {
			return true
		}
	}
	if len(symbol) > 2 && (strings.HasPrefix(symbol, "ai") || strings.HasSuffix(symbol, "ai")) {
		return true
	}
	if symbol == "ai" {
		return true
	}
	for _, kw := range aiKeywords {
		if strings.Contains(name, kw) || strings.Contains(symbol, kw) {
			return true
		}
	}
	return false
}
