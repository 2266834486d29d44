package steps_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/effective-digital/flowkit/pkg/domain"
	"github.com/effective-digital/flowkit/pkg/steps"
)

func payload(jsonBody string) []byte {
	return []byte(base64.StdEncoding.EncodeToString([]byte(jsonBody)))
}

func TestWebRedirect_OpensURLAndResolvesEmpty(t *testing.T) {
	var gotURL, gotClientID string
	handler := steps.NewWebRedirect(steps.URLOpenerFunc(func(ctx context.Context, url, clientID string) error {
		gotURL, gotClientID = url, clientID
		return nil
	}))

	result, err := handler.Handle(context.Background(),
		payload(`{"stepName":"WEB_VIEW","secondParams":"https://x.test","clientID":"c1"}`))
	require.NoError(t, err)

	assert.Equal(t, "https://x.test", gotURL)
	assert.Equal(t, "c1", gotClientID)
	assert.Equal(t, map[string]string{"": ""}, result)
}

func TestWebRedirect_MissingURL(t *testing.T) {
	handler := steps.NewWebRedirect(steps.URLOpenerFunc(func(ctx context.Context, url, clientID string) error {
		t.Fatal("opener must not be called without a URL")
		return nil
	}))

	_, err := handler.Handle(context.Background(), payload(`{"stepName":"WEB_VIEW","clientID":"c1"}`))
	assert.ErrorIs(t, err, domain.ErrDecodeFailed)
}

func TestWebRedirect_OpenerFailure(t *testing.T) {
	handler := steps.NewWebRedirect(steps.URLOpenerFunc(func(ctx context.Context, url, clientID string) error {
		return errors.New("no browser available")
	}))

	_, err := handler.Handle(context.Background(),
		payload(`{"stepName":"WEB_VIEW","secondParams":"https://x.test"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no browser available")
}

func TestWebRedirect_MalformedPayload(t *testing.T) {
	handler := steps.NewWebRedirect(steps.URLOpenerFunc(func(ctx context.Context, url, clientID string) error {
		return nil
	}))

	_, err := handler.Handle(context.Background(), []byte("???"))
	assert.ErrorIs(t, err, domain.ErrDecodeFailed)
}
