// Package welcome walks a new user through writing down and confirming a seed
// phrase, or sends an existing user to the password screen.
package welcome

import "github.com/jask/beamwallet/internal/presenter"

type View interface {
	presenter.MvpView
	ShowWelcomeMain()
	ShowPhrase(words []string)
	// ShowValidation asks for the words at the given zero-based positions.
	ShowValidation(indices []int)
	// ShowPasswords hands the confirmed phrase to the wallet creation flow.
	ShowPasswords(seed string)
	ShowOpenWallet()
}

type Phrases interface {
	GeneratePhrase() ([]string, error)
}
