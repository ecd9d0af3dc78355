package gemini

import (
	"log/slog"
	"time"
)

// DefaultTimeout is the per-request timeout used by Client unless WithTimeout is given.
const DefaultTimeout = 30 * time.Second

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	transport Transport
	endpoint  string
	timeout   time.Duration
	logger    *slog.Logger
	session   Session
}

// WithTransport sets the transport used for requests (default: an HTTPTransport).
func WithTransport(t Transport) ClientOption {
	return func(o *clientOptions) {
		o.transport = t
	}
}

// WithEndpoint overrides the full request URL (default: BaseURL + APIEndpoint).
func WithEndpoint(rawURL string) ClientOption {
	return func(o *clientOptions) {
		o.endpoint = rawURL
	}
}

// WithTimeout sets the fixed per-request timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the logger for the client (default: slog.Default()).
func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *clientOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSession seeds the continuation identifiers, e.g. to resume a known conversation.
// The pair is only sent when both identifiers are non-empty.
func WithSession(conversationID, responseID string) ClientOption {
	return func(o *clientOptions) {
		o.session = Session{ConversationID: conversationID, ResponseID: responseID}
	}
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	timeout time.Duration
	logger  *slog.Logger
}

// WithDefaultTimeout bounds every Invoke with a context deadline. Zero (the default) means no deadline.
func WithDefaultTimeout(d time.Duration) RegistryOption {
	return func(o *registryOptions) {
		o.timeout = d
	}
}

// WithRegistryLogger sets the logger for registration and invocation events (default: slog.Default()).
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(o *registryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
