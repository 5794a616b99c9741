package llm

import (
	"net/http"

	"github.com/sashabaranov/go-openai"

	"parley/internal/config"
)

// NewClient creates the completion client. OpenRouter speaks the OpenAI wire
// format, so the stock client works against it once the base URL and
// credential are configured. The optional attribution headers ride along on
// every request through the wrapped transport.
func NewClient(cfg config.LLMConfig) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{
		Transport: &attributionTransport{
			referer: cfg.Referer,
			title:   cfg.Title,
			next:    http.DefaultTransport,
		},
	}
	return openai.NewClientWithConfig(clientCfg)
}

// attributionTransport injects OpenRouter's optional HTTP-Referer and
// X-Title headers when they are configured.
type attributionTransport struct {
	referer string
	title   string
	next    http.RoundTripper
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.referer == "" && t.title == "" {
		return t.next.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	if t.referer != "" {
		clone.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		clone.Header.Set("X-Title", t.title)
	}
	return t.next.RoundTrip(clone)
}
