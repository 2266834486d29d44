// Package codec translates between the remote engine's opaque transport
// payloads and decoded step instructions. The wire form is a base64-encoded
// UTF-8 JSON object; only the keys a caller explicitly requests are extracted,
// and every extracted value is coerced to a string.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/effective-digital/flowkit/pkg/domain"
)

// StepKey is the payload key carrying the step identifier. Every decode
// requests it implicitly.
const StepKey = "stepName"

// Decode parses a transport payload and extracts the requested keys.
//
// Decode is total: it never panics and always returns either an instruction
// with a non-empty step identifier or an error wrapping
// domain.ErrDecodeFailed. Unknown keys in the payload are ignored. A payload
// in which none of the requested keys are found fails the decode; it does not
// yield an empty instruction.
func Decode(payload []byte, keys ...string) (domain.StepInstruction, error) {
	raw, err := decodeTransport(payload)
	if err != nil {
		return domain.StepInstruction{}, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.StepInstruction{}, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}

	requested := append([]string{StepKey}, keys...)

	found := make(map[string]any, len(requested))
	for _, key := range requested {
		if v, ok := fields[key]; ok {
			found[key] = v
		}
	}
	if len(found) == 0 {
		return domain.StepInstruction{}, fmt.Errorf("%w: none of the requested keys present", domain.ErrDecodeFailed)
	}

	params, err := coerce(found)
	if err != nil {
		return domain.StepInstruction{}, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}

	step := params[StepKey]
	if step == "" {
		return domain.StepInstruction{}, fmt.Errorf("%w: missing step identifier", domain.ErrDecodeFailed)
	}
	delete(params, StepKey)

	return domain.StepInstruction{Step: step, Params: params}, nil
}

// Encode serializes a handler's flat result map into the transport form used
// for requests. A nil map encodes as an empty JSON object.
func Encode(result map[string]string) ([]byte, error) {
	if result == nil {
		result = map[string]string{}
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncodeFailed, err)
	}

	out := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(out, raw)
	return out, nil
}

// decodeTransport strips the base64 layer. Payloads arriving from in-process
// callers are sometimes already decoded, so raw JSON is accepted as-is.
func decodeTransport(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	if payload[0] == '{' {
		return payload, nil
	}

	raw, err := base64.StdEncoding.DecodeString(string(payload))
	if err != nil {
		if raw, rawErr := base64.RawStdEncoding.DecodeString(string(payload)); rawErr == nil {
			return raw, nil
		}
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	return raw, nil
}

// coerce converts extracted values to strings, tolerating numeric and boolean
// JSON values the way the remote engine emits them.
func coerce(found map[string]any) (map[string]string, error) {
	params := make(map[string]string, len(found))
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &params,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(found); err != nil {
		return nil, err
	}
	return params, nil
}
