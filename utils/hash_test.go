package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentHashKnownValue(t *testing.T) {
	got := ContentHash("This is a test document")
	assert.Equal(t, "c41cbbf2c21619e1d51dd729dbd9dd73693672ac0e358bfcda467827ba41bdf7", got)
}

func TestContentHashDeterministic(t *testing.T) {
	first := ContentHash("hello world")
	second := ContentHash("hello world")
	assert.Equal(t, first, second)
}

func TestContentHashDistinguishesContent(t *testing.T) {
	assert.NotEqual(t, ContentHash("document a"), ContentHash("document b"))
}

func TestContentHashEmptyString(t *testing.T) {
	got := ContentHash("")
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", got)
	assert.Len(t, got, 64)
}
