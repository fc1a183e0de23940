package health

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Checker reports process liveness and uptime.
type Checker struct {
	start time.Time
}

func NewChecker() *Checker {
	return &Checker{start: time.Now()}
}

type status struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Handler serves the health check response.
func (c *Checker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(status{
			Status:        "healthy",
			UptimeSeconds: int64(time.Since(c.start).Seconds()),
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to write health response")
		}
	})
}
