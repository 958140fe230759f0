package handler

import (
	"net/http"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/api/response"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/repository/redis"
	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/search"
)

// HealthCheck reports process liveness
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}

// ReadyCheck reports readiness, pinging Redis when it is configured
func ReadyCheck(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				response.ServiceUnavailable(w, "redis unavailable")
				return
			}
		}
		response.OK(w, map[string]string{"status": "ready"})
	}
}

// ListProviders reports the offer providers in cascade order per mode
func ListProviders(aggregator *search.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, aggregator.ProvidersInfo())
	}
}
