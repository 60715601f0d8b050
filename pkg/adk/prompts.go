package adk

import (
	_ "embed"
)

//go:embed prompts/instructions.md
var instructions string

// GetInstructions returns the guidance sent to agents when they connect.
func GetInstructions() string {
	return instructions
}
