package gemini

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"time"
)

// Client talks to the web chat endpoint. It keeps the conversation's Session and
// assumes at most one request in flight; it is not safe for concurrent use.
type Client struct {
	transport Transport
	endpoint  string
	timeout   time.Duration
	logger    *slog.Logger
	session   Session
}

// NewClient creates a Client with the given options.
func NewClient(opts ...ClientOption) *Client {
	o := clientOptions{
		endpoint: BaseURL + APIEndpoint,
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.transport == nil {
		o.transport = NewHTTPTransport(o.timeout)
	}
	return &Client{
		transport: o.transport,
		endpoint:  o.endpoint,
		timeout:   o.timeout,
		logger:    o.logger,
		session:   o.session,
	}
}

// Ask sends message and returns the decoded answer. A transport failure or a status
// other than 200 is returned as *APIError. A response from which no answer could be
// extracted is not an error: the answer is then "".
//
// The session is not advanced from the response; every turn is sent with the
// session the client was created with (or the empty one after Reset).
func (c *Client) Ask(ctx context.Context, message string) (string, error) {
	form, err := buildPayload(message, c.session)
	if err != nil {
		return "", &APIError{Err: err}
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("gemini request", "endpoint", c.endpoint, "message_len", len(message), "session", c.session.IsSet())
	status, body, err := c.transport.PostForm(ctx, c.endpoint, form)
	if err != nil {
		c.logger.Warn("gemini request failed", "error", err)
		return "", &APIError{Err: err}
	}
	if status != http.StatusOK {
		c.logger.Warn("gemini request rejected", "status", status)
		return "", &APIError{StatusCode: status, Err: fmt.Errorf("%w %d", ErrUnexpectedStatus, status)}
	}
	answer := Decode(string(body))
	if answer == "" {
		c.logger.Debug("gemini response had no answer", "body_len", len(body))
	}
	return answer, nil
}

// AskStream is Ask with the answer delivered as a single-pass sequence of words
// (see Tokens). The whole answer is fetched and decoded before the first word is yielded.
func (c *Client) AskStream(ctx context.Context, message string) (iter.Seq[string], error) {
	answer, err := c.Ask(ctx, message)
	if err != nil {
		return nil, err
	}
	return Tokens(answer), nil
}

// Session returns the current continuation identifiers.
func (c *Client) Session() Session { return c.session }

// Reset clears both continuation identifiers; the next request starts a new conversation.
func (c *Client) Reset() {
	c.session = Session{}
}

// Query asks a single question on a fresh Client.
func Query(ctx context.Context, message string, opts ...ClientOption) (string, error) {
	return NewClient(opts...).Ask(ctx, message)
}
