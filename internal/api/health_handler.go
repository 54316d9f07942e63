package api

import (
	"net/http"

	"github.com/ignite/ses-ingest/internal/pkg/httputil"
)

// HandleHealth reports process liveness for load balancers.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]string{"status": "ok"})
}
