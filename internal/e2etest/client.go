package e2etest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	neturl "net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Client is a session-cookie-aware HTTP client for driving the server in tests.
type Client struct {
	client *http.Client
	url    string
}

// NewClient creates a client with a cookie jar so that flash messages survive
// the POST-redirect-GET cycle.
func NewClient(url string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		client: &http.Client{Jar: jar}, //nolint:exhaustruct // rest of the defaults are fine.
		url:    url,
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			c.url+urlPath,
			nil,
		); err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		if resp, err = c.client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return fmt.Errorf("close response body: %w", err)
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return fmt.Errorf("close response body: %w", err)
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	if req, err = c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil); err != nil {
		return nil, fmt.Errorf("create request with context: %w", err)
	}
	if resp, err = c.client.Do(req); err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

// GetDoc fetches a URL and returns a goquery document.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	var (
		err  error
		resp *http.Response
		doc  *goquery.Document
	)
	if resp, err = c.Get(ctx, urlPath); err != nil {
		return nil, fmt.Errorf("client get: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if doc, err = goquery.NewDocumentFromReader(resp.Body); err != nil {
		return nil, fmt.Errorf("create document from reader: %w", err)
	}
	return doc, nil
}

// newRequestWithContext creates a new HTTP request to the server that respects the given context.
//
// POST requests are marked as same-origin so that they pass the server's
// cross-origin protection.
func (c *Client) newRequestWithContext(
	ctx context.Context,
	method, urlPath string,
	body io.Reader,
) (*http.Request, error) {
	var (
		req *http.Request
		err error
	)
	if req, err = http.NewRequest(method, c.url+urlPath, body); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if method == http.MethodPost {
		req.Header.Set("Sec-Fetch-Site", "same-origin")
	}
	return req.WithContext(ctx), nil
}

// PostForm posts raw form values to formActionURLPath and returns the response
// document. Use this for forms whose field names are known up front.
func (c *Client) PostForm(
	ctx context.Context,
	formActionURLPath string,
	formData neturl.Values,
) (*goquery.Document, error) {
	data := strings.NewReader(formData.Encode())
	req, err := c.newRequestWithContext(ctx, http.MethodPost, formActionURLPath, data)
	if err != nil {
		return nil, fmt.Errorf("new request with context: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	newDoc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("create document from reader: %w", err)
	}
	newDoc.Url = resp.Request.URL
	return newDoc, nil
}

// SubmitForm submits a form in the doc identified with action formActionUrlPath and returns the response document.
// formFields is a map of label text to value. The function will find the input by label and set its value.
func (c *Client) SubmitForm(
	ctx context.Context,
	doc *goquery.Document,
	formActionURLPath string,
	formFields map[string]string,
) (*goquery.Document, error) {
	formData := neturl.Values{}

	form, err := FindForm(doc, formActionURLPath)
	if err != nil {
		return nil, fmt.Errorf("find form: %w", err)
	}

	// Carry over hidden inputs like dates and identifiers.
	form.Find("input[type=hidden]").Each(func(_ int, input *goquery.Selection) {
		name, nameExists := input.Attr("name")
		value, valueExists := input.Attr("value")
		if nameExists && valueExists {
			formData.Set(name, value)
		}
	})

	// Find form inputs based on their labels
	for labelText, value := range formFields {
		var input *goquery.Selection
		if input, err = FindInputForLabel(form, labelText); err != nil {
			return nil, fmt.Errorf("find input for label: %w", err)
		}

		name, exists := input.Attr("name")
		if !exists {
			return nil, fmt.Errorf("input has no name attribute (label: %s, form_action: %s)",
				labelText, formActionURLPath)
		}

		formData.Add(name, value)
	}

	return c.PostForm(ctx, formActionURLPath, formData)
}
