package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/bonangpanjinur/desawisata/internal/repository"

	"github.com/google/uuid"
)

// Client はリモートAPIへのHTTPクライアント。
// Bearerトークンをここで一元管理する（リクエスト毎に自動付与）。
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken はログイン後のトークンを差し込む。
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken はログアウト時にトークンを破棄する。
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// Authenticated はトークンを保持しているか（＝リモート同期して良いか）。
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// do はJSONリクエストを送り、レスポンスJSONをoutへデコードする。
// 4xx/5xxはレスポンスボディから人が読めるメッセージに変換する。
func (c *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", errorMessage(resp.StatusCode, data), repository.ErrNotFound)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return errors.New(errorMessage(resp.StatusCode, data))
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// errorMessage はWordPress系エラーボディ（message / error）から
// 表示に使えるメッセージを取り出す。
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			// HTMLタグが混ざることがあるので除去
			return strings.TrimSpace(htmlTagPattern.ReplaceAllString(payload.Message, ""))
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	return fmt.Sprintf("%d: %s", status, http.StatusText(status))
}
