package intake

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultIPEndpoint = "https://api.ipify.org?format=json"

// IPLookup resolves the caller's public IP as best-effort enrichment.
// Failures yield the empty sentinel and never block the submission path.
type IPLookup struct {
	endpoint string
	client   *http.Client
	log      zerolog.Logger
}

func NewIPLookup(log zerolog.Logger) *IPLookup {
	return &IPLookup{
		endpoint: defaultIPEndpoint,
		client:   &http.Client{Timeout: 3 * time.Second},
		log:      log,
	}
}

func (l *IPLookup) Lookup(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return ""
	}
	resp, err := l.client.Do(req)
	if err != nil {
		l.log.Warn().Err(err).Msg("client ip lookup failed")
		return ""
	}
	defer resp.Body.Close()

	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		l.log.Warn().Err(err).Msg("client ip lookup returned garbage")
		return ""
	}
	return body.IP
}
