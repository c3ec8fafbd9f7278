// Package quizgen produces quiz questions from extracted document text.
package quizgen

import (
	"math/rand/v2"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/util"
)

// Shuffler reorders options in place.
type Shuffler func(options []string)

// RandomShuffle is the default Shuffler.
func RandomShuffle(options []string) {
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
}

// newQuestion copies options, shuffles the copy and assigns a fresh id.
func newQuestion(text string, options []string, correct string, shuffle Shuffler) domain.Question {
	opts := append([]string(nil), options...)
	shuffle(opts)
	return domain.Question{
		ID:            util.NewULID(),
		Text:          text,
		Options:       opts,
		CorrectAnswer: correct,
	}
}
