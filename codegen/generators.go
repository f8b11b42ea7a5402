package codegen

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GeneratorFunc is a named mock value generator invokable from scalar config.
// Arguments come straight from the config file; generators are best-effort
// about argument shapes since the config was validated structurally already.
type GeneratorFunc func(args ...any) any

// namedGenerators is the registry consulted for custom scalar configs.
var namedGenerators = map[string]GeneratorFunc{
	"uuid":     generateUUID,
	"date":     generateDate,
	"datetime": generateDateTime,
	"int":      generateInt,
	"float":    generateFloat,
	"boolean":  generateBoolean,
	"word":     generateWord,
	"sentence": generateSentence,
	"email":    generateEmail,
	"url":      generateURL,
}

// LookupGenerator resolves a generator name from the registry.
func LookupGenerator(name string) (GeneratorFunc, bool) {
	generator, ok := namedGenerators[name]

	return generator, ok
}

func generateUUID(_ ...any) any {
	return uuid.NewString()
}

// generateDate formats the current time using moment-style tokens
// (YYYY, MM, DD, HH, mm, ss). The default format is YYYY-MM-DD.
func generateDate(args ...any) any {
	format := "YYYY-MM-DD"
	if len(args) > 0 {
		if s, ok := args[0].(string); ok && s != "" {
			format = s
		}
	}

	return time.Now().Format(dateTokenReplacer.Replace(format))
}

func generateDateTime(_ ...any) any {
	return time.Now().Format(time.RFC3339)
}

var dateTokenReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
)

// generateInt returns a random integer, optionally bounded by (min, max) args.
func generateInt(args ...any) any {
	minValue, maxValue := 0, 9999
	if len(args) > 0 {
		minValue = toInt(args[0], minValue)
	}
	if len(args) > 1 {
		maxValue = toInt(args[1], maxValue)
	}
	if minValue > maxValue {
		minValue, maxValue = maxValue, minValue
	}

	return minValue + rand.IntN(maxValue-minValue+1)
}

func generateFloat(args ...any) any {
	minValue, maxValue := 0.0, 100.0
	if len(args) > 0 {
		minValue = toFloat(args[0], minValue)
	}
	if len(args) > 1 {
		maxValue = toFloat(args[1], maxValue)
	}
	if minValue > maxValue {
		minValue, maxValue = maxValue, minValue
	}

	return minValue + rand.Float64()*(maxValue-minValue)
}

func generateBoolean(_ ...any) any {
	return rand.IntN(2) == 1
}

func generateWord(_ ...any) any {
	return loremWords[rand.IntN(len(loremWords))]
}

// generateSentence produces a short lorem-style sentence.
func generateSentence(_ ...any) any {
	return loremSentence()
}

func generateEmail(_ ...any) any {
	return fmt.Sprintf("%s.%s@example.com", generateWord(), generateWord())
}

func generateURL(_ ...any) any {
	return fmt.Sprintf("https://%s.example.com/%s", generateWord(), generateWord())
}

// loremWords is a small canned vocabulary for string mocks.
var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	"elit", "sed", "eiusmod", "tempor", "incididunt", "labore", "dolore",
	"magna", "aliqua", "enim", "minim", "veniam", "quis", "nostrud",
	"exercitation", "ullamco", "laboris", "nisi", "aliquip", "commodo",
}

func loremSentence() string {
	count := 3 + rand.IntN(5)
	words := make([]string, count)
	for i := range words {
		words[i] = loremWords[rand.IntN(len(loremWords))]
	}
	sentence := strings.Join(words, " ")

	return strings.ToUpper(sentence[:1]) + sentence[1:]
}

func toInt(v any, fallback int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	default:
		return fallback
	}
}

func toFloat(v any, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return fallback
	}
}
