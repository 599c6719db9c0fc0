package core

import (
	"context"
	"net/http"
	"time"

	"holocene/internal/db"
)

// healthCheckTimeout bounds the whole store fan-out.
const healthCheckTimeout = 5 * time.Second

type healthResponse struct {
	Status string           `json:"status"`
	Stores []db.StoreStatus `json:"stores"`
}

// HandleHealth pings every configured store. It answers 200 when all of them
// respond and 503 otherwise. Stores without a connection string are listed but
// do not affect the verdict.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	statuses := s.Stores.Ping(ctx)

	healthy := true
	for _, st := range statuses {
		if st.Configured && !st.Healthy {
			healthy = false
		}
	}

	if !healthy {
		JSON(w, r, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Stores: statuses})
		return
	}
	JSON(w, r, http.StatusOK, healthResponse{Status: "healthy", Stores: statuses})
}
