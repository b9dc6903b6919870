package platform

import (
	"bytes"
	"encoding/json"
	"io"
)

// Envelope is the platform API's general response convention:
// { code, message?, data, errors? }. It is not uniform across endpoints, so
// decoding stays lenient: data may be a bare object, an array, or a
// paginator-style { data: [...] } wrapper.
type Envelope struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

// listWrapper matches the paginator shape { data: [...] } nested inside the
// envelope's data field.
type listWrapper struct {
	Data json.RawMessage `json:"data"`
}

// unwrapList resolves the envelope data into the row array, accepting both a
// bare array and the { data: [...] } wrapper.
func unwrapList(data json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '[' {
		return trimmed
	}
	var wrapper listWrapper
	if err := json.Unmarshal(trimmed, &wrapper); err == nil && len(wrapper.Data) > 0 {
		return bytes.TrimSpace(wrapper.Data)
	}
	return trimmed
}

// Upload is one file part of a multipart write
type Upload struct {
	Field    string
	FileName string
	Reader   io.Reader
}

// ProgressFunc receives upload progress: bytes sent so far and the total
// request body size.
type ProgressFunc func(sent, total int64)

// progressReader reports read progress to a callback as the request body is
// consumed by the transport.
type progressReader struct {
	r        io.Reader
	total    int64
	sent     int64
	progress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.progress != nil {
			p.progress(p.sent, p.total)
		}
	}
	return n, err
}

// LoginResult is the successful outcome of /auth/account
type LoginResult struct {
	Token string `json:"token"`
}
