package codec_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/effective-digital/flowkit/pkg/codec"
	"github.com/effective-digital/flowkit/pkg/domain"
)

func b64(s string) []byte {
	return []byte(base64.StdEncoding.EncodeToString([]byte(s)))
}

func TestDecode_WebRedirectPayload(t *testing.T) {
	payload := b64(`{"stepName":"WEB_VIEW","secondParams":"https://x.test","clientID":"c1"}`)

	instr, err := codec.Decode(payload, "secondParams", "clientID")
	require.NoError(t, err)

	assert.Equal(t, "WEB_VIEW", instr.Step)
	assert.Equal(t, "https://x.test", instr.Param("secondParams"))
	assert.Equal(t, "c1", instr.Param("clientID"))
}

func TestDecode_IgnoresUnknownKeys(t *testing.T) {
	payload := b64(`{"stepName":"WEB_VIEW","internal":"x","secondParams":"https://x.test"}`)

	instr, err := codec.Decode(payload, "secondParams")
	require.NoError(t, err)

	assert.Equal(t, "https://x.test", instr.Param("secondParams"))
	assert.Empty(t, instr.Param("internal"), "keys not requested must not be extracted")
}

func TestDecode_NoRequestedKeysPresent(t *testing.T) {
	payload := b64(`{"somethingElse":"v"}`)

	_, err := codec.Decode(payload, "secondParams")
	assert.ErrorIs(t, err, domain.ErrDecodeFailed)
}

func TestDecode_MissingStepIdentifier(t *testing.T) {
	payload := b64(`{"secondParams":"https://x.test"}`)

	_, err := codec.Decode(payload, "secondParams")
	assert.ErrorIs(t, err, domain.ErrDecodeFailed)
}

func TestDecode_EmptyStepIdentifier(t *testing.T) {
	payload := b64(`{"stepName":""}`)

	_, err := codec.Decode(payload)
	assert.ErrorIs(t, err, domain.ErrDecodeFailed)
}

func TestDecode_IsTotal(t *testing.T) {
	// Decode never panics; every malformed input maps to ErrDecodeFailed.
	cases := map[string][]byte{
		"empty":          nil,
		"not base64":     []byte("%%%%"),
		"not json":       b64("plain text"),
		"json array":     b64(`["a","b"]`),
		"json scalar":    b64(`42`),
		"truncated json": b64(`{"stepName":`),
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Decode(payload, "token")
			assert.ErrorIs(t, err, domain.ErrDecodeFailed)
		})
	}
}

func TestDecode_RawJSONAccepted(t *testing.T) {
	instr, err := codec.Decode([]byte(`{"stepName":"IDENTITY_CHECK","token":"abc"}`), "token")
	require.NoError(t, err)
	assert.Equal(t, "IDENTITY_CHECK", instr.Step)
	assert.Equal(t, "abc", instr.Param("token"))
}

func TestDecode_CoercesScalars(t *testing.T) {
	payload := b64(`{"stepName":"SIGNING","amount":120.5,"transactionId":991}`)

	instr, err := codec.Decode(payload, "amount", "transactionId")
	require.NoError(t, err)

	assert.Equal(t, "120.5", instr.Param("amount"))
	assert.Equal(t, "991", instr.Param("transactionId"))
}

func TestEncode_RoundTrip(t *testing.T) {
	result := map[string]string{
		"stepName": "WEB_VIEW",
		"status":   "done",
		"score":    "0.97",
	}

	encoded, err := codec.Encode(result)
	require.NoError(t, err)

	instr, err := codec.Decode(encoded, "status", "score")
	require.NoError(t, err)

	assert.Equal(t, "WEB_VIEW", instr.Step)
	assert.Equal(t, "done", instr.Param("status"))
	assert.Equal(t, "0.97", instr.Param("score"))
}

func TestEncode_EmptyKeyResult(t *testing.T) {
	// The web redirect step resolves with {"": ""} when the user just closes
	// the view; that must encode cleanly.
	encoded, err := codec.Encode(map[string]string{"": ""})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(string(encoded))
	require.NoError(t, err)
	assert.JSONEq(t, `{"":""}`, string(raw))
}

func TestEncode_NilMap(t *testing.T) {
	encoded, err := codec.Encode(nil)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(string(encoded))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}
