package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/api/handler"
	customMiddleware "github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/api/middleware"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/config"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/dialogue"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/extract"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/llm"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/llm/gemini"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/lookup"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/repository/memory"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/repository/redis"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/search"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/search/amadeus"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/search/travelpayouts"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/service"
)

// NewRouter creates and configures the HTTP router with the whole core
// wired: lookup, extractor, dialogue machine, provider cascade, session
// store and chat service. redisClient may be nil.
func NewRouter(cfg *config.Config, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Core components
	lookupService := lookup.NewService()
	extractor := extract.New(lookupService)
	machine := dialogue.NewMachine()
	store := memory.NewStore(cfg.Session.TTL)

	// Offer provider cascade. Order is the fallback priority and must not
	// change: the specific-date source for fixed queries; calendar, then
	// cheapest, then month-matrix for flexible ones.
	tpClient := travelpayouts.NewClient(cfg.Providers.TravelPayouts.Token, cfg.Providers.TravelPayouts.BaseURL)
	fixed := []search.OfferProvider{
		amadeus.NewProvider(cfg.Providers.Amadeus.APIKey, cfg.Providers.Amadeus.APISecret, cfg.Providers.Amadeus.BaseURL),
	}
	flexible := []search.OfferProvider{
		travelpayouts.NewCalendarProvider(tpClient),
		travelpayouts.NewCheapestProvider(tpClient),
		travelpayouts.NewMatrixProvider(tpClient),
	}
	aggregator := search.NewAggregator(fixed, flexible, cfg.Providers.Timeout, cfg.Providers.RedirectURL)

	for _, info := range aggregator.ProvidersInfo() {
		log.Info().
			Str("provider", info.Name).
			Str("mode", info.Mode).
			Bool("configured", info.Configured).
			Msg("offer provider registered")
	}

	// Language generation, only for collecting/confirming turns
	var generator llm.Generator
	if cfg.LLM.Gemini.APIKey != "" {
		generator = gemini.NewGenerator(cfg.LLM.Gemini.APIKey, cfg.LLM.Gemini.Model)
		log.Info().Str("model", cfg.LLM.Gemini.Model).Msg("gemini generator registered")
	} else {
		log.Warn().Msg("Gemini API key is empty, replies use canned templates")
	}

	// Optional Redis-backed pieces
	var resultCache *redis.ResultCache
	var rateLimiter *redis.RateLimiter
	if redisClient != nil {
		resultCache = redis.NewResultCache(redisClient, cfg.Session.ResultTTL)
		rateLimiter = redis.NewRateLimiter(redisClient, cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	chatService := service.NewChatService(store, extractor, machine, aggregator, generator, resultCache, lookupService)
	chatHandler := handler.NewChatHandler(chatService)

	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(redisClient))
		r.Get("/providers", handler.ListProviders(aggregator))

		r.Group(func(r chi.Router) {
			r.Use(rateLimitMiddleware.Limit)

			r.Post("/chat", chatHandler.Message)
			r.Get("/chat/{sessionID}/history", chatHandler.History)
		})
	})

	return r
}
