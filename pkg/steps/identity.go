package steps

import (
	"context"
	"fmt"

	"github.com/effective-digital/flowkit/pkg/codec"
)

// StepIdentityCheck is the step identifier the remote engine uses for
// identity verification steps.
const StepIdentityCheck = "IDENTITY_CHECK"

// Payload keys read by the identity check step.
const (
	KeyVerificationToken = "token"
	KeyTransactionID     = "transactionId"
)

// Verifier runs the external identity verification interaction (typically a
// third-party SDK presenting its own UI) and returns the flat result map the
// remote engine expects. It must return exactly once.
type Verifier interface {
	Verify(ctx context.Context, token, transactionID string) (map[string]string, error)
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(ctx context.Context, token, transactionID string) (map[string]string, error)

// Verify calls f.
func (f VerifierFunc) Verify(ctx context.Context, token, transactionID string) (map[string]string, error) {
	return f(ctx, token, transactionID)
}

// IdentityCheck delegates to a host-supplied verifier, passing through the
// verification token and transaction id from the instruction payload. The
// verifier's result map is reported to the remote engine unchanged.
type IdentityCheck struct {
	verifier Verifier
}

// NewIdentityCheck creates the identity verification handler.
func NewIdentityCheck(verifier Verifier) *IdentityCheck {
	return &IdentityCheck{verifier: verifier}
}

// Handle implements ports.StepHandler.
func (h *IdentityCheck) Handle(ctx context.Context, payload []byte) (map[string]string, error) {
	instr, err := codec.Decode(payload, KeyVerificationToken, KeyTransactionID)
	if err != nil {
		return nil, err
	}

	result, err := h.verifier.Verify(ctx, instr.Param(KeyVerificationToken), instr.Param(KeyTransactionID))
	if err != nil {
		return nil, fmt.Errorf("identity verification: %w", err)
	}
	return result, nil
}
