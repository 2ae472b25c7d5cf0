package gain

import (
	"encoding/base64"
	"strings"
	"unicode"
)

// DefaultPayload is the encoded descriptor of the accelerated gain
// module shipped with the package. It decodes to a VGK1 descriptor
// requiring no SIMD extensions with an 8192-frame block limit.
const DefaultPayload = "VkdLMQEAIAA="

// DecodePayload decodes a base64 module descriptor. Surrounding and
// embedded whitespace is ignored and both the padded and unpadded
// standard alphabets are accepted. Malformed input yields an empty
// slice rather than an error, so callers can feed the result straight
// into Load and let descriptor validation report the failure.
func DecodePayload(encoded string) []byte {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, encoded)

	if cleaned == "" {
		return nil
	}

	if raw, err := base64.StdEncoding.DecodeString(cleaned); err == nil {
		return raw
	}

	if raw, err := base64.RawStdEncoding.DecodeString(cleaned); err == nil {
		return raw
	}

	return nil
}
