// Package sharelink implements the legacy self-contained share link format:
// the whole form schema percent-encoded, then Base64-encoded, carried in a
// ?data= query parameter. Current links carry a short ?id= instead and
// require a store lookup; when both parameters are present, ?id= wins.
package sharelink

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/model"
)

// Encode serializes a form into a link payload. The JSON is percent-encoded
// before the Base64 pass so non-ASCII labels survive the byte-oriented
// encoding.
func Encode(form model.FormSchema) (string, error) {
	raw, err := json.Marshal(form)
	if err != nil {
		return "", fmt.Errorf("sharelink.encode: %w", err)
	}
	return base64.StdEncoding.EncodeToString([]byte(url.PathEscape(string(raw)))), nil
}

// Decode reverses Encode. Links pasted through chats and URL bars commonly
// arrive with '+' turned into spaces, so spaces are mapped back before
// decoding. A failure here is terminal for the link; there is no recovery
// short of generating a new one.
func Decode(encoded string) (model.FormSchema, error) {
	var form model.FormSchema

	safe := strings.ReplaceAll(encoded, " ", "+")
	raw, err := base64.StdEncoding.DecodeString(safe)
	if err != nil {
		return form, fmt.Errorf("sharelink.decode.base64: %w", err)
	}

	unescaped, err := url.PathUnescape(string(raw))
	if err != nil {
		return form, fmt.Errorf("sharelink.decode.unescape: %w", err)
	}

	if err := json.Unmarshal([]byte(unescaped), &form); err != nil {
		return form, fmt.Errorf("sharelink.decode.json: %w", err)
	}
	return form, nil
}
