package gateway

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/middleware"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

// Forwarder relays validated requests to the server and copies its answer back.
type Forwarder struct {
	baseURL string
	client  *http.Client
	tokens  *auth.TokenManager
}

// NewForwarder creates a Forwarder for the server at baseURL.
// tokens may be nil, in which case no service token is attached.
func NewForwarder(baseURL string, client *http.Client, tokens *auth.TokenManager) *Forwarder {
	return &Forwarder{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		tokens:  tokens,
	}
}

// Forward sends the current request upstream with the same method, path, query and body.
// The upstream status and body are returned verbatim.
func (f *Forwarder) Forward(c *gin.Context) {
	logger := zerolog.Ctx(c.Request.Context())

	body, err := requestBody(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}

	target := f.baseURL + c.Request.URL.Path
	if c.Request.URL.RawQuery != "" {
		target += "?" + c.Request.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target, bytes.NewReader(body))
	if err != nil {
		response.Error(c, fmt.Errorf("build upstream request: %w", err))
		return
	}

	actor := c.GetHeader(auth.UserHeader)
	if actor != "" {
		req.Header.Set(auth.UserHeader, actor)
	}
	if id := middleware.GetRequestID(c); id != "" {
		req.Header.Set(middleware.RequestIDHeader, id)
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if f.tokens != nil {
		token, err := f.tokens.Generate(actor)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("target", target).Msg("upstream request failed")
		c.AbortWithStatusJSON(http.StatusBadGateway, response.ErrorResponse{Error: "upstream unavailable"})
		return
	}
	defer resp.Body.Close()

	c.DataFromReader(resp.StatusCode, resp.ContentLength, resp.Header.Get("Content-Type"), resp.Body, nil)
}

// requestBody returns the body cached by ShouldBindBodyWith, or reads it.
func requestBody(c *gin.Context) ([]byte, error) {
	if cached, ok := c.Get(gin.BodyBytesKey); ok {
		if b, ok := cached.([]byte); ok {
			return b, nil
		}
	}
	if c.Request.Body == nil {
		return nil, nil
	}
	b, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return b, nil
}
