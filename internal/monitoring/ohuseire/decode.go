package ohuseire

import (
	"encoding/json"
	"mime"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/ohuvaht/ohuvaht/internal/monitoring"
)

// decodeRecords parses a response body into records, tolerating broken
// charsets. Strict UTF-8 is tried first; then the charset the response
// declares, with unmappable bytes substituted; finally ISO-8859-1, which
// accepts every byte sequence. Only when all three fail is the body
// considered undecodable.
func decodeRecords(body []byte, contentType string) ([]record, error) {
	var lastErr error

	if utf8.Valid(body) {
		records, err := unmarshalRecords(body)
		if err == nil {
			return records, nil
		}
		lastErr = err
	}

	if name := declaredCharset(contentType); name != "" {
		if enc, err := htmlindex.Get(name); err == nil {
			if decoded, err := enc.NewDecoder().Bytes(body); err == nil {
				records, err := unmarshalRecords(decoded)
				if err == nil {
					return records, nil
				}
				lastErr = err
			}
		}
	}

	// ISO-8859-1 maps every byte to a code point, so this decode itself
	// cannot fail; only the JSON parse can.
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
	if err == nil {
		records, err := unmarshalRecords(decoded)
		if err == nil {
			return records, nil
		}
		lastErr = err
	} else if lastErr == nil {
		lastErr = err
	}

	return nil, &monitoring.DecodeError{Err: lastErr}
}

func unmarshalRecords(data []byte) ([]record, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// declaredCharset extracts the charset parameter from a Content-Type header.
func declaredCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}
