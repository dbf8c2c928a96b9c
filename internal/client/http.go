package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnexpectedStatus is wrapped by every client when the upstream answers with a non-200 status.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// maxLoggedBody bounds how much of an error body ends up in logs and errors.
const maxLoggedBody = 512

// getJSON performs a GET and decodes a 200 response body into out. The request is
// bounded by the context deadline when there is one, otherwise by fallbackTimeout.
func getJSON(ctx context.Context, c *fasthttp.Client, requestURL string, headers map[string]string, fallbackTimeout time.Duration, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.DoDeadline(req, resp, deadline); err != nil {
			return fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.DoTimeout(req, resp, fallbackTimeout); err != nil {
			return fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	body := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		return fmt.Errorf("%w %d from %s: %s", ErrUnexpectedStatus, resp.StatusCode(), requestURL, truncate(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response from %s: %w", requestURL, err)
	}
	return nil
}

func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}
