// Package client is a small Go client for the blog HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// ErrStatus is returned for any response outside the 2xx and 303 range.
var ErrStatus = errors.New("unexpected status")

type Client struct {
	http.Client
	Addr  string
	Token string // bearer token; empty for anonymous calls
}

// New returns a client for addr that does not follow the redirects the
// service answers mutations with.
func New(addr, token string) *Client {
	c := &Client{Addr: addr, Token: token}
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return c
}

type Author struct {
	ID       int64  `json:"id"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
}

type Article struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category,omitempty"`
	AuthorID int64   `json:"authorId,omitempty"`
	Author   *Author `json:"author,omitempty"`
}

// StatusError carries the status and body of a failed call.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %d: %s", ErrStatus, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrStatus
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// ListArticles returns one page of articles, newest first.
func (c *Client) ListArticles(ctx context.Context, page int) ([]Article, error) {
	var out []Article
	err := c.call(ctx, http.MethodGet, "/articles?page="+strconv.Itoa(page), nil, &out)

	return out, err
}

// ListCategory returns every article in category.
func (c *Client) ListCategory(ctx context.Context, category string) ([]Article, error) {
	var out []Article
	err := c.call(ctx, http.MethodGet, "/articles/categories/"+category, nil, &out)

	return out, err
}

func (c *Client) GetArticle(ctx context.Context, id int64) (*Article, error) {
	out := &Article{}
	if err := c.call(ctx, http.MethodGet, articlePath(id), nil, out); err != nil {
		return nil, err
	}

	return out, nil
}

// CreateArticle posts a and returns the id the service assigned.
func (c *Client) CreateArticle(ctx context.Context, a Article) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	err := c.call(ctx, http.MethodPost, "/articles", a, &out)

	return out.ID, err
}

// EditArticle replaces the title and content of article id.
func (c *Client) EditArticle(ctx context.Context, id int64, title, content string) error {
	body := map[string]string{"title": title, "content": content}

	return c.call(ctx, http.MethodPut, articlePath(id), body, nil)
}

func (c *Client) DeleteArticle(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, articlePath(id), nil, nil)
}

func articlePath(id int64) string {
	return "/articles/" + strconv.FormatInt(id, 10)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, r)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	return req, nil
}

func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	ok := resp.StatusCode/100 == 2 || resp.StatusCode == http.StatusSeeOther
	if !ok {
		b, _ := io.ReadAll(resp.Body)

		return &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(b))}
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
