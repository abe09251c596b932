package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplacePlaceholders(t *testing.T) {
	// GIVEN
	args := []string{"--channel", "0", "--compare=%compare%", "%duty%%"}

	// WHEN
	result := ReplacePlaceholders(args, map[string]string{
		"compare": "500",
		"duty":    "50",
	})

	// THEN
	assert.Equal(t, []string{"--channel", "0", "--compare=500", "50%"}, result)
}
