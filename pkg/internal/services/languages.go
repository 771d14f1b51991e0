package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

const UnknownLanguage = "unknown"

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

func DetectLanguage(content string) string {
	if len(strings.TrimSpace(content)) == 0 {
		return UnknownLanguage
	}

	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithLowAccuracyMode().
			Build()
	})

	if lang, ok := languageDetector.DetectLanguageOf(content); ok {
		return strings.ToLower(lang.IsoCode639_1().String())
	}
	return UnknownLanguage
}
