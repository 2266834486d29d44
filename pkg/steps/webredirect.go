package steps

import (
	"context"
	"fmt"

	"github.com/effective-digital/flowkit/pkg/codec"
	"github.com/effective-digital/flowkit/pkg/domain"
)

// StepWebRedirect is the step identifier the remote engine uses for web
// redirect steps.
const StepWebRedirect = "WEB_VIEW"

// Payload keys read by the web redirect step. secondParams carries the target
// URL; clientID identifies the calling client to the redirected site.
const (
	KeyRedirectURL = "secondParams"
	KeyClientID    = "clientID"
)

// URLOpener presents a URL to the user (in-app web view or external browser)
// and returns when the user has closed it. It is the host's boundary to the
// web surface.
type URLOpener interface {
	Open(ctx context.Context, url, clientID string) error
}

// URLOpenerFunc adapts a function to the URLOpener interface.
type URLOpenerFunc func(ctx context.Context, url, clientID string) error

// Open calls f.
func (f URLOpenerFunc) Open(ctx context.Context, url, clientID string) error {
	return f(ctx, url, clientID)
}

// WebRedirect opens a URL delivered in the instruction payload and resolves
// once the user closes the view. The remote engine expects an empty result
// entry for this step; there is no data to report back.
type WebRedirect struct {
	opener URLOpener
}

// NewWebRedirect creates the web redirect handler.
func NewWebRedirect(opener URLOpener) *WebRedirect {
	return &WebRedirect{opener: opener}
}

// Handle implements ports.StepHandler.
func (w *WebRedirect) Handle(ctx context.Context, payload []byte) (map[string]string, error) {
	instr, err := codec.Decode(payload, KeyRedirectURL, KeyClientID)
	if err != nil {
		return nil, err
	}

	url := instr.Param(KeyRedirectURL)
	if url == "" {
		return nil, fmt.Errorf("%w: web redirect without a target URL", domain.ErrDecodeFailed)
	}

	if err := w.opener.Open(ctx, url, instr.Param(KeyClientID)); err != nil {
		return nil, fmt.Errorf("open redirect url: %w", err)
	}

	return map[string]string{"": ""}, nil
}
