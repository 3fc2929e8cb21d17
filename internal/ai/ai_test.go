package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptLowStockUrgency(t *testing.T) {
	prompt := BuildPrompt("Velvet Scrunchie", 15, 2)
	assert.Contains(t, prompt, "Velvet Scrunchie")
	assert.Contains(t, prompt, "GHS 15.00")
	assert.Contains(t, prompt, "urgency")
}

func TestBuildPromptNormalStock(t *testing.T) {
	prompt := BuildPrompt("Velvet Scrunchie", 15, LowStockThreshold)
	assert.NotContains(t, prompt, "urgency")
	assert.Contains(t, prompt, "Stock level: 5")
}
