package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/dialogue"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/extract"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/llm"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/lookup"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/repository/redis"
)

// Aggregator is the slice of the search aggregator the chat service needs
type Aggregator interface {
	Search(ctx context.Context, query domain.TravelQuery) (*domain.SearchResult, error)
}

// ChatService processes one chat turn end to end: extract, advance the
// dialogue, search when the machine says so, and phrase the reply
type ChatService struct {
	store      domain.SessionStore
	extractor  *extract.Extractor
	machine    *dialogue.Machine
	aggregator Aggregator
	generator  llm.Generator
	canned     llm.Generator
	results    *redis.ResultCache
	formatter  *Formatter
	lookup     *lookup.Service
}

// NewChatService creates the chat service. generator may be nil (the canned
// fallback always answers) and results may be nil (no cross-restart cache).
func NewChatService(
	store domain.SessionStore,
	extractor *extract.Extractor,
	machine *dialogue.Machine,
	aggregator Aggregator,
	generator llm.Generator,
	results *redis.ResultCache,
	lk *lookup.Service,
) *ChatService {
	return &ChatService{
		store:      store,
		extractor:  extractor,
		machine:    machine,
		aggregator: aggregator,
		generator:  generator,
		canned:     llm.NewCanned(),
		results:    results,
		formatter:  NewFormatter(lk),
		lookup:     lk,
	}
}

// HandleMessage is the sole entry point into the core per chat turn. The
// store's Get hands the session out under its turn lock, so concurrent turns
// on one session serialize; every exit path releases the lock through Save.
func (s *ChatService) HandleMessage(ctx context.Context, sessionID, text string) (*domain.ChatReply, error) {
	sess := s.store.Get(sessionID)
	sess.Append(domain.SpeakerUser, text)

	extracted := s.extractor.Extract(text, sess.Query)
	decision := s.machine.Advance(sess, text, extracted)

	log.Debug().
		Str("session_id", sess.ID).
		Str("step", string(sess.Step)).
		Str("action", string(decision.Action)).
		Bool("reset", decision.Reset).
		Msg("dialogue advanced")

	if decision.Action == dialogue.ActionSearch {
		return s.runSearch(ctx, sess)
	}

	var reply *domain.ChatReply
	switch decision.Action {
	case dialogue.ActionPrompt:
		reply = &domain.ChatReply{Message: s.phrase(ctx, llm.KindAskMissing, sess, decision.Missing)}

	case dialogue.ActionConfirm:
		reply = &domain.ChatReply{Message: s.phrase(ctx, llm.KindConfirm, sess, nil)}

	case dialogue.ActionServeCached:
		reply = s.serveCached(ctx, sess)
	}

	return s.finish(sess, reply), nil
}

// finish stamps the reply onto the session transcript and persists it,
// releasing the turn lock
func (s *ChatService) finish(sess *domain.DialogueSession, reply *domain.ChatReply) *domain.ChatReply {
	reply.SessionID = sess.ID
	sess.Append(domain.SpeakerAssistant, reply.Message)
	s.store.Save(sess)
	return reply
}

// serveCached answers from the session's result, falling back to the shared
// cache after a restart
func (s *ChatService) serveCached(ctx context.Context, sess *domain.DialogueSession) *domain.ChatReply {
	result := sess.LastResult
	if result == nil {
		cached, err := s.results.Get(ctx, sess.ID)
		if err != nil {
			log.Warn().Err(err).Str("session_id", sess.ID).Msg("result cache read failed")
		}
		if cached != nil && cached.Query.Fingerprint() == sess.Query.Fingerprint() {
			result = cached
			sess.LastResult = cached
		}
	}
	return s.formatter.Format(result)
}

// runSearch runs the aggregator at most once per session at a time. The
// search slot is taken while the turn lock is still held, then the turn is
// saved so the session stays answerable while the provider cascade runs; a
// turn arriving meanwhile sees the slot taken and gets the busy reply
// immediately instead of waiting out the search.
func (s *ChatService) runSearch(ctx context.Context, sess *domain.DialogueSession) (*domain.ChatReply, error) {
	// shared cache may already hold this exact query
	if cached, err := s.results.Get(ctx, sess.ID); err == nil && cached != nil &&
		cached.Query.Fingerprint() == sess.Query.Fingerprint() {
		sess.LastResult = cached
		sess.Step = domain.StepResultsReady
		return s.finish(sess, s.formatter.Format(cached)), nil
	}

	if !s.store.TryLockForSearch(sess.ID) {
		log.Info().Str("session_id", sess.ID).Msg("search already in flight for session")
		return s.finish(sess, &domain.ChatReply{
			Message: "Já estou buscando os melhores voos para você, um instante!",
		}), nil
	}

	sessionID := sess.ID
	query := sess.Query
	s.store.Save(sess)

	result, err := s.aggregator.Search(ctx, query)

	sess = s.store.Get(sessionID)
	defer s.store.Unlock(sessionID)
	if err != nil {
		// only the incomplete-query contract violation reaches here
		log.Error().Err(err).Str("session_id", sessionID).Msg("aggregator rejected query")
		s.store.Save(sess)
		return nil, err
	}

	// a concurrent turn may have reset the session while we searched; the
	// finished search is discarded rather than applied to the new trip
	if sess.Query.Fingerprint() != query.Fingerprint() {
		log.Info().Str("session_id", sessionID).Msg("session changed during search, discarding result")
		return s.finish(sess, &domain.ChatReply{
			Message: "Percebi que seus planos mudaram. Vamos ajustar a nova viagem antes de buscar de novo!",
		}), nil
	}

	sess.LastResult = result
	sess.Step = domain.StepResultsReady

	if err := s.results.Set(ctx, sessionID, result); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("result cache write failed")
	}

	return s.finish(sess, s.formatter.Format(result)), nil
}

// phrase asks the configured generator to word the reply and falls back to
// the canned templates when it is absent or errors
func (s *ChatService) phrase(ctx context.Context, kind llm.Kind, sess *domain.DialogueSession, missing []domain.FieldReason) string {
	req := llm.Request{
		Kind:    kind,
		Query:   sess.Query,
		Missing: missing,
		History: sess.History,
	}
	if sess.Query.Origin != "" {
		req.OriginName = s.lookup.DisplayName(sess.Query.Origin)
	}
	if sess.Query.Destination != "" {
		req.DestinationName = s.lookup.DisplayName(sess.Query.Destination)
	}

	if s.generator != nil && s.generator.IsConfigured() {
		msg, err := s.generator.Generate(ctx, req)
		if err == nil && msg != "" {
			return msg
		}
		if err != nil {
			log.Warn().Err(err).Str("generator", s.generator.Name()).Msg("generation failed, using canned reply")
		}
	}

	msg, _ := s.canned.Generate(ctx, req)
	return msg
}

// History returns the chat transcript for a session. Unknown ids stay
// unknown: reading history never creates a session.
func (s *ChatService) History(sessionID string) []domain.HistoryEntry {
	sess := s.store.Peek(sessionID)
	if sess == nil {
		return nil
	}
	return sess.History
}
