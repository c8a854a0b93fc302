package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// StatusError is returned by DoRequest for any non 2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status code: %d, body: %s", e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status code: %d", e.Method, e.URL, e.StatusCode)
}

func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

type RequestOptions[T any] struct {
	Client      *http.Client
	Headers map[string]string
	Result  *T
}

func NewRequestOptions[T any](result *T) *RequestOptions[T] {
	return &RequestOptions[T]{
		Headers: make(map[string]string),
		Result:  result,
	}
}

func (o *RequestOptions[T]) AddHeader(key string, value string) {
	o.Headers[key] = value
}

// DoRequest performs a body-less request and returns the response body.
// When options carry a Result, the body is decoded into it instead.
func DoRequest[T any](method string, uri string, options *RequestOptions[T]) ([]byte, error) {
	httpClient := http.DefaultClient
	if options != nil && options.Client != nil {
		httpClient = options.Client
	}

	req, err := http.NewRequest(method, uri, nil)
	if err != nil {
		return nil, err
	}

	if options != nil {
		for key, value := range options.Headers {
			req.Header.Set(key, value)
		}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !(resp.StatusCode >= 200 && resp.StatusCode < 300) {
		statusErr := &StatusError{Method: method, URL: uri, StatusCode: resp.StatusCode}
		if resp.Header.Get("Content-Type") == "application/json" {
			var errorResponse map[string]any
			if body, err := io.ReadAll(resp.Body); err == nil && json.Unmarshal(body, &errorResponse) == nil {
				if msg, ok := errorResponse["error_description"].(string); ok {
					statusErr.Message = msg
				} else if msg, ok := errorResponse["message"].(string); ok {
					statusErr.Message = msg
				}
			}
		}
		return nil, statusErr
	}

	bytesBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if options != nil && options.Result != nil {
		return nil, json.Unmarshal(bytesBody, options.Result)
	}

	return bytesBody, nil
}
