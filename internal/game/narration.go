package game

import (
	"fmt"

	"github.com/f3rmion/mindvault/internal/vault"
)

// Narration for the fixed cues.
const (
	correctText = "Correct! The way forward opens."
	victoryText = "Congratulations! You have solved every riddle and escaped the Mind Vault."
	timesUpText = "Time's up! You couldn't solve the riddles in time."
)

func wrongText(n int) string {
	switch {
	case n <= 1:
		return "That's not it. Try again."
	case n == 2:
		return "Still not right. One more wrong answer and you'll get a hint."
	default:
		return "Not quite. Listen closely to the hint."
	}
}

func introText(theme vault.Theme, story string) string {
	if story != "" {
		return story
	}
	return fmt.Sprintf("Welcome to the Mind Vault. Your %s adventure begins.", theme.Title())
}
