package client

// http_client.go = handles HTTP client functionality for the mediaminder CLI.

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mediaminder/cmd/cli/dto"
)

// APIError is a non-2xx reply. Message is the server's "error" field when it sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// defines the HTTP client structure and methods
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// constructor for HTTP client
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// set token for HTTP client
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do sends body as JSON (when not nil) and decodes a 2xx reply into out (when not nil).
func (c *HTTPClient) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() // Ensure the response body is closed

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr dto.ErrorResponse
		// a body that is not JSON leaves Message empty
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// StatusCode returns the HTTP status of an APIError, 0 for any other error.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Auth

func (c *HTTPClient) Register(request *dto.RegisterRequest) (*dto.AuthResponse, error) {
	var result dto.AuthResponse
	if err := c.do(http.MethodPost, "/auth/register", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Login(request *dto.LoginRequest) (*dto.AuthResponse, error) {
	var result dto.AuthResponse
	if err := c.do(http.MethodPost, "/auth/login", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Media list

func (c *HTTPClient) ListMedia() ([]dto.UserMedia, error) {
	var result []dto.UserMedia
	if err := c.do(http.MethodGet, "/media", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) GetMedia(id int64) (*dto.UserMedia, error) {
	var result dto.UserMedia
	if err := c.do(http.MethodGet, fmt.Sprintf("/media/%d", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) AddMedia(request *dto.AddMediaRequest) (*dto.UserMedia, error) {
	var result dto.UserMedia
	if err := c.do(http.MethodPost, "/media", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) UpdateMedia(id int64, request dto.UpdateMediaRequest) (*dto.UserMedia, error) {
	var result dto.UserMedia
	if err := c.do(http.MethodPatch, fmt.Sprintf("/media/%d", id), request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteMedia(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/media/%d", id), nil, nil)
}

// Genres

func (c *HTTPClient) ListGenres(mediaType string) ([]dto.Genre, error) {
	path := "/genres"
	if mediaType != "" {
		path += "?media_type=" + url.QueryEscape(mediaType)
	}
	var result []dto.Genre
	if err := c.do(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) MediaGenres(id int64) ([]dto.Genre, error) {
	var result []dto.Genre
	if err := c.do(http.MethodGet, fmt.Sprintf("/media/%d/genres", id), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Profile

func (c *HTTPClient) GetProfile() (*dto.User, error) {
	var result dto.ProfileResponse
	if err := c.do(http.MethodGet, "/user/profile", nil, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

func (c *HTTPClient) UpdateProfile(request *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	var result dto.ProfileResponse
	if err := c.do(http.MethodPut, "/user/profile", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteAccount() error {
	return c.do(http.MethodDelete, "/user/account", nil, nil)
}
