package welcome

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"

	"github.com/jask/beamwallet/internal/async"
	"github.com/jask/beamwallet/internal/lifecycle"
	"github.com/jask/beamwallet/internal/presenter"
)

const (
	// ValidationWords is how many phrase words the user must repeat.
	ValidationWords = 6
	// maxTypoDistance is the edit distance still treated as a misspelling.
	maxTypoDistance = 2
)

// Picker chooses k distinct positions out of n.
type Picker func(n, k int) []int

func randomPicker(n, k int) []int {
	return rand.Perm(n)[:k]
}

type Presenter struct {
	presenter.Base[View]

	bridge  *async.Bridge
	phrases Phrases
	pick    Picker

	words    []string
	indices  []int
	generate lifecycle.Subscription
}

func New(bridge *async.Bridge, phrases Phrases, log zerolog.Logger) *Presenter {
	return &Presenter{
		Base:    presenter.NewBase[View](log.With().Str("screen", "welcome").Logger()),
		bridge:  bridge,
		phrases: phrases,
		pick:    randomPicker,
	}
}

// WithPicker replaces the random choice of validation positions.
func (p *Presenter) WithPicker(pick Picker) *Presenter {
	p.pick = pick
	return p
}

func (p *Presenter) ViewIsReady() {
	p.WithView(View.ShowWelcomeMain)
}

func (p *Presenter) OnResume() {}

func (p *Presenter) OnOpenWallet() {
	p.WithView(View.ShowOpenWallet)
}

// OnCreateWallet generates a fresh phrase and shows it.
func (p *Presenter) OnCreateWallet() {
	if p.generate != nil && !p.generate.Cancelled() {
		return
	}
	p.generate = async.Run(p.bridge, p.phrases.GeneratePhrase, func(o async.Outcome[[]string]) {
		p.generate = nil
		if p.Fail(o.Err) {
			return
		}
		p.words = o.Value
		p.indices = nil
		p.WithView(func(v View) { v.ShowPhrase(o.Value) })
	})
	p.Track(p.generate)
}

// OnPhraseWritten picks the words the user must repeat back.
func (p *Presenter) OnPhraseWritten() {
	if len(p.words) == 0 {
		return
	}
	k := min(ValidationWords, len(p.words))
	p.indices = p.pick(len(p.words), k)
	slices.Sort(p.indices)
	p.WithView(func(v View) { v.ShowValidation(slices.Clone(p.indices)) })
}

// OnValidate checks the user's answers, keyed by position. The first wrong
// answer is reported and the rest ignored.
func (p *Presenter) OnValidate(answers map[int]string) {
	if len(p.indices) == 0 {
		return
	}
	p.WithView(View.HideInputMethod)
	for _, i := range p.indices {
		got := strings.ToLower(strings.TrimSpace(answers[i]))
		want := p.words[i]
		if got == want {
			continue
		}
		msg := fmt.Sprintf("word #%d does not match", i+1)
		if got != "" && levenshtein.ComputeDistance(got, want) <= maxTypoDistance {
			msg += ", check spelling"
		}
		p.WithView(func(v View) { v.ShowMessage(msg) })
		return
	}
	seed := strings.Join(p.words, " ")
	p.WithView(func(v View) { v.ShowPasswords(seed) })
}
