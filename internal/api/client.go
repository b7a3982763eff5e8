// Package api is the HTTP client for the message collection endpoints.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/msgboard/internal/config"
	"github.com/debemdeboas/msgboard/internal/model"
	"github.com/debemdeboas/msgboard/internal/routes"
)

var apiLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	apiLogger = l
}

type Client struct {
	http *resty.Client
}

type Option func(*resty.Client)

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		if d > 0 {
			c.SetTimeout(d)
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *resty.Client) {
		if ua != "" {
			c.SetHeader(config.HUserAgent, ua)
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader(config.HAccept, config.CTypeJSON)

	for _, opt := range opts {
		opt(rc)
	}

	rc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		r.SetHeader(config.HRequestID, uuid.NewString())
		return nil
	})

	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		apiLogger.Debug().
			Str("method", resp.Request.Method).
			Str("path", requestPath(resp)).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Str("request_id", resp.Request.Header.Get(config.HRequestID)).
			Msg("Request completed")
		return nil
	})

	rc.OnError(func(r *resty.Request, err error) {
		apiLogger.Error().
			Err(err).
			Str("method", r.Method).
			Str("url", r.URL).
			Str("request_id", r.Header.Get(config.HRequestID)).
			Msg("Request failed")
	})

	return &Client{http: rc}
}

// List fetches the full message collection in backend order.
func (c *Client) List(ctx context.Context) ([]model.Message, error) {
	messages := make([]model.Message, 0)
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&messages).
		ForceContentType(config.CTypeJSON).
		Get(routes.Messages)
	if err != nil {
		if resp != nil && resp.RawResponse != nil && resp.IsSuccess() {
			return nil, fmt.Errorf("decode message list: %w", err)
		}
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if resp.IsError() {
		return nil, newStatusError(resp)
	}

	// A JSON null decodes to a nil slice.
	if messages == nil {
		messages = make([]model.Message, 0)
	}
	return messages, nil
}

// Create posts content as a new message. The created record is not returned;
// callers reload the collection.
func (c *Client) Create(ctx context.Context, content string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(model.MessageBody{Content: content}).
		Post(routes.Messages)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	if resp.IsError() {
		return newStatusError(resp)
	}
	return nil
}

func (c *Client) Update(ctx context.Context, id model.MessageID, content string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam(routes.ParamID, id.String()).
		SetBody(model.MessageBody{Content: content}).
		Put(routes.Message)
	if err != nil {
		return fmt.Errorf("update message %s: %w", id, err)
	}
	if resp.IsError() {
		return newStatusError(resp)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, id model.MessageID) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam(routes.ParamID, id.String()).
		Delete(routes.Message)
	if err != nil {
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	if resp.IsError() {
		return newStatusError(resp)
	}
	return nil
}

func requestPath(resp *resty.Response) string {
	if resp.Request != nil && resp.Request.RawRequest != nil {
		return resp.Request.RawRequest.URL.Path
	}
	if resp.Request != nil {
		return resp.Request.URL
	}
	return ""
}
