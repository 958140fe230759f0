// Package dialogue owns the per-turn step transitions of a conversation. The
// machine is pure: it inspects the session, the incoming message and the
// extractor output, mutates the session step and query, and returns a
// decision for the caller to act on. It performs no I/O, so whether a search
// may run — and whether language generation is allowed — is decided in
// exactly one place.
package dialogue

import (
	"regexp"
	"strings"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/lookup"
)

// Action tells the caller what this turn requires
type Action string

const (
	// ActionPrompt asks the user for the missing required fields
	ActionPrompt Action = "prompt"
	// ActionConfirm asks the user to confirm the collected query
	ActionConfirm Action = "confirm"
	// ActionSearch runs the aggregator for the confirmed query
	ActionSearch Action = "search"
	// ActionServeCached answers from the session's cached result
	ActionServeCached Action = "serve_cached"
)

// Decision is the outcome of advancing a session by one message
type Decision struct {
	Action  Action
	Missing []domain.FieldReason
	// Reset is set when this turn discarded the previous trip, either via an
	// explicit restart or a materially different query after results
	Reset bool
}

// AllowsGeneration reports whether the language model may phrase the reply
// for this decision. Search turns never reach the model, so it can never
// fabricate offer data.
func (d Decision) AllowsGeneration() bool {
	return d.Action == ActionPrompt || d.Action == ActionConfirm
}

// confirmation keyword set, english and portuguese. Matched as whole words,
// case-insensitively, against the normalized message.
var confirmRe = regexp.MustCompile(`\b(?:sim|yes|ok|confirmo|confirmar|confirma|confirm|buscar|busca|procurar|search|find|pode buscar|isso mesmo|isso)\b`)

// restart keyword set resets the session to collecting
var restartRe = regexp.MustCompile(`\b(?:recomecar|reiniciar|restart|nova busca|comecar de novo|outra viagem)\b`)

// Machine advances dialogue sessions
type Machine struct{}

// NewMachine creates a dialogue machine
func NewMachine() *Machine {
	return &Machine{}
}

// Advance merges the extracted query into the session and moves the step
// forward. extracted must be the extractor output for this message with the
// session's query as prior.
func (m *Machine) Advance(sess *domain.DialogueSession, message string, extracted domain.TravelQuery) Decision {
	text := lookup.Normalize(message)

	if restartRe.MatchString(text) {
		sess.Reset(extracted)
		return m.collect(sess, Decision{Reset: true})
	}

	switch sess.Step {
	case domain.StepCollecting:
		sess.Query = extracted
		return m.collect(sess, Decision{})

	case domain.StepConfirming:
		sess.Query = extracted
		if !sess.Query.Complete() {
			// a correction emptied nothing (merge is last-write-wins), but
			// guard the contract anyway
			sess.Step = domain.StepCollecting
			return m.collect(sess, Decision{})
		}
		if confirmRe.MatchString(text) {
			sess.Query.Confirmed = true
			sess.Step = domain.StepSearching
			return m.search(sess)
		}
		return Decision{Action: ActionConfirm}

	case domain.StepSearching:
		// idempotent re-entry while a search is running or just finished
		return m.search(sess)

	case domain.StepResultsReady:
		if m.materialChange(sess.Query, extracted) {
			seed := extracted
			seed.Confirmed = false
			sess.Reset(seed)
			return m.collect(sess, Decision{Reset: true})
		}
		return Decision{Action: ActionServeCached}
	}

	// unknown step, treat as a fresh session
	sess.Reset(extracted)
	return m.collect(sess, Decision{Reset: true})
}

// collect validates the required fields and either stays in collecting or
// moves on to confirming
func (m *Machine) collect(sess *domain.DialogueSession, d Decision) Decision {
	missing := sess.Query.MissingFields()
	if len(missing) > 0 {
		sess.Step = domain.StepCollecting
		d.Action = ActionPrompt
		d.Missing = missing
		return d
	}
	sess.Step = domain.StepConfirming
	d.Action = ActionConfirm
	return d
}

// search decides between running the aggregator and serving the cached
// result for the same query
func (m *Machine) search(sess *domain.DialogueSession) Decision {
	if sess.LastResult != nil && sess.LastResult.Query.Fingerprint() == sess.Query.Fingerprint() {
		sess.Step = domain.StepResultsReady
		return Decision{Action: ActionServeCached}
	}
	return Decision{Action: ActionSearch}
}

// materialChange reports whether the newly extracted query names a different
// origin, destination or date than the one the cached results answer
func (m *Machine) materialChange(current, extracted domain.TravelQuery) bool {
	return !strings.EqualFold(current.Fingerprint(), extracted.Fingerprint())
}
