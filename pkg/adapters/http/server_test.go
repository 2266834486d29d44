package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/effective-digital/flowkit"
	flowhttp "github.com/effective-digital/flowkit/pkg/adapters/http"
	"github.com/effective-digital/flowkit/pkg/domain"
)

// fakeEngine records the instruction and returns a scripted error.
type fakeEngine struct {
	instr flowkit.Instruction
	err   error
}

func (f *fakeEngine) Continue(ctx context.Context, instr flowkit.Instruction) error {
	f.instr = instr
	return f.err
}

func okSubmit(ctx context.Context, transitionID, processID string, result []byte) (*domain.ProcessInstance, error) {
	return &domain.ProcessInstance{ID: "p-next"}, nil
}

func post(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/flow/continue", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestPushListener_Accepted(t *testing.T) {
	engine := &fakeEngine{}
	handler := flowhttp.NewHandler(engine, okSubmit)

	rec := post(t, handler, `{"transitionId":"t-1","processId":"p-1","payload":"eyJzdGVwTmFtZSI6IldFQl9WSUVXIn0="}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "t-1", engine.instr.TransitionID)
	assert.Equal(t, "p-1", engine.instr.ProcessID)
	assert.Equal(t, "eyJzdGVwTmFtZSI6IldFQl9WSUVXIn0=", string(engine.instr.Payload))
	require.NotNil(t, engine.instr.Submit)
}

func TestPushListener_InvalidBody(t *testing.T) {
	handler := flowhttp.NewHandler(&fakeEngine{}, okSubmit)

	rec := post(t, handler, "{broken")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPushListener_MissingIdentifiers(t *testing.T) {
	handler := flowhttp.NewHandler(&fakeEngine{}, okSubmit)

	rec := post(t, handler, `{"payload":"eyJ9"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPushListener_RunInFlight(t *testing.T) {
	engine := &fakeEngine{err: domain.ErrRunInFlight}
	handler := flowhttp.NewHandler(engine, okSubmit)

	rec := post(t, handler, `{"transitionId":"t-1","processId":"p-1","payload":"x"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPushListener_RejectedInstruction(t *testing.T) {
	for _, err := range []error{domain.ErrDecodeFailed, domain.ErrUnknownStep} {
		engine := &fakeEngine{err: err}
		handler := flowhttp.NewHandler(engine, okSubmit)

		rec := post(t, handler, `{"transitionId":"t-1","processId":"p-1","payload":"x"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	}
}

func TestPushListener_SubmitFailure(t *testing.T) {
	engine := &fakeEngine{err: &domain.SubmitError{TransitionID: "t-1", ProcessID: "p-1", Err: assert.AnError}}
	handler := flowhttp.NewHandler(engine, okSubmit)

	rec := post(t, handler, `{"transitionId":"t-1","processId":"p-1","payload":"x"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
