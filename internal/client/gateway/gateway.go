// Package gateway wraps outbound calls to the jobtrack API with a base
// address, credential attachment and a typed error taxonomy. It performs
// no session handling of its own.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Gateway issues HTTP requests against a configured base URL.
type Gateway struct {
	// BaseURL is the API base address, without a trailing slash.
	BaseURL string
	// Client is the underlying HTTP client.
	Client *http.Client
	// Log is the structured logger for request diagnostics.
	Log *zap.Logger
}

// New constructs a Gateway for the given base URL. The client carries a
// cookie jar so cross-origin session cookies set by the server are
// forwarded on subsequent calls.
func New(baseURL string, log *zap.Logger) *Gateway {
	jar, _ := cookiejar.New(nil)
	return &Gateway{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second, Jar: jar},
		Log:     log,
	}
}

// Do issues a JSON request to path. body, when non-nil, is marshalled as
// the request body; token, when non-empty, is attached as a bearer
// credential; out, when non-nil, receives the decoded response body.
// A non-2xx response yields *APIError, a transport failure *NetworkError.
func (g *Gateway) Do(ctx context.Context, method, path string, body any, token string, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return g.send(req, token, out)
}

// FormFile names a file to attach to a multipart request.
type FormFile struct {
	// Field is the multipart field name.
	Field string
	// Path is the local file to read.
	Path string
}

// DoForm issues a multipart/form-data request with the given scalar
// fields and optional file attachments. Semantics otherwise match Do.
func (g *Gateway) DoForm(ctx context.Context, method, path string, fields map[string]string, files []FormFile, token string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	for _, f := range files {
		src, err := os.Open(f.Path)
		if err != nil {
			return fmt.Errorf("open %s: %w", f.Path, err)
		}
		part, err := w.CreateFormFile(f.Field, filepath.Base(f.Path))
		if err != nil {
			src.Close()
			return fmt.Errorf("create form file %s: %w", f.Field, err)
		}
		if _, err := io.Copy(part, src); err != nil {
			src.Close()
			return fmt.Errorf("copy %s: %w", f.Path, err)
		}
		src.Close()
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.BaseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return g.send(req, token, out)
}

// send executes the request and decodes the response.
func (g *Gateway) send(req *http.Request, token string, out any) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		g.Log.Debug("request failed", zap.String("path", req.URL.Path), zap.Error(err))
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.Log.Debug("request rejected",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode))
		return &APIError{Status: resp.StatusCode, Message: extractMessage(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// extractMessage pulls a human-readable message out of an error body.
// The API answers with either {"error": "..."} or {"message": "..."}.
func extractMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
