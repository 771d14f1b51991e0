package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, UnknownLanguage, DetectLanguage("   "))
	assert.Equal(t, "en", DetectLanguage("The weather is really nice today, let us go for a walk in the park."))
}
