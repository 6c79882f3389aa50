package handler

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/order-template-api/internal/scheduler"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Mesmo formato de Date.toISOString: UTC com milissegundos
const isoTimestamp = "2006-01-02T15:04:05.000Z07:00"

// StoreStatusProvider informa o resultado da última verificação da origem de dados
type StoreStatusProvider interface {
	Status() scheduler.ProbeStatus
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Datastore string `json:"datastore"`
	CheckedAt string `json:"checked_at,omitempty"`
}

// HealthcheckHandler sempre responde 200. O estado da origem de dados é só informativo.
func HealthcheckHandler(probe StoreStatusProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:    "OK",
			Timestamp: time.Now().UTC().Format(isoTimestamp),
			Datastore: scheduler.StoreUnknown,
		}

		if probe != nil {
			status := probe.Status()
			resp.Datastore = status.State
			if !status.CheckedAt.IsZero() {
				resp.CheckedAt = status.CheckedAt.UTC().Format(isoTimestamp)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
