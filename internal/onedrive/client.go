package onedrive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bagdasarian/staff-portal/internal/config"
	"github.com/rs/zerolog"
)

// ErrItemNotFound элемент отсутствует в диске.
var ErrItemNotFound = errors.New("onedrive: item not found")

type Item struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Size                 int64     `json:"size"`
	ETag                 string    `json:"eTag"`
	LastModifiedDateTime time.Time `json:"lastModifiedDateTime"`
	Folder               *struct {
		ChildCount int `json:"childCount"`
	} `json:"folder,omitempty"`
	File *struct {
		MimeType string `json:"mimeType"`
	} `json:"file,omitempty"`
}

func (i Item) IsFolder() bool { return i.Folder != nil }

type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph api status=%d code=%s: %s", e.Status, e.Code, e.Message)
}

// IsAuthError сообщает, что запрос не прошел из-за токена или прав.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrNoCredentials) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	var tokErr *TokenError
	return errors.As(err, &tokErr)
}

// IsTransient сообщает, что запрос может пройти при повторе: сетевая ошибка,
// 429 или 5xx.
func IsTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusTooManyRequests || apiErr.Status >= 500
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// TokenError ошибка получения токена.
type TokenError struct{ Err error }

func (e *TokenError) Error() string { return "onedrive: token: " + e.Err.Error() }
func (e *TokenError) Unwrap() error { return e.Err }

type Client struct {
	baseURL     string
	driveID     string
	http        *http.Client
	tokens      *TokenProvider
	log         zerolog.Logger
	maxAttempts int
	backoff     time.Duration
}

type Option func(*Client)

// WithBackoff задает базовую задержку между повторами.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func NewClient(cfg config.GraphConfig, tokens *TokenProvider, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		driveID:     cfg.DriveID,
		http:        &http.Client{Timeout: cfg.Timeout},
		tokens:      tokens,
		log:         log,
		maxAttempts: 3,
		backoff:     300 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) drivePath() string {
	if c.driveID != "" {
		return "/drives/" + url.PathEscape(c.driveID)
	}
	return "/me/drive"
}

// Root возвращает корневую папку диска.
func (c *Client) Root(ctx context.Context) (*Item, error) {
	var item Item
	if err := c.doJSON(ctx, http.MethodGet, c.drivePath()+"/root", nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ResolvePath ищет элемент по пути относительно корня диска.
func (c *Client) ResolvePath(ctx context.Context, path string) (*Item, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return c.Root(ctx)
	}
	var item Item
	if err := c.doJSON(ctx, http.MethodGet, c.drivePath()+"/root:/"+escapePath(path), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// EnsureFolderPath создает недостающие папки по пути и возвращает последнюю.
func (c *Client) EnsureFolderPath(ctx context.Context, path string) (*Item, error) {
	parent, err := c.Root(ctx)
	if err != nil {
		return nil, err
	}
	for _, segment := range strings.Split(strings.Trim(path, "/"), "/") {
		if segment == "" {
			continue
		}
		parent, err = c.FindOrCreateFolder(ctx, parent.ID, segment)
		if err != nil {
			return nil, err
		}
	}
	return parent, nil
}

func (c *Client) ListChildren(ctx context.Context, folderID string) ([]Item, error) {
	type page struct {
		Value    []Item `json:"value"`
		NextLink string `json:"@odata.nextLink"`
	}

	items := make([]Item, 0)
	next := c.drivePath() + "/items/" + url.PathEscape(folderID) + "/children?$top=200"
	for next != "" {
		var p page
		if err := c.doJSON(ctx, http.MethodGet, next, nil, &p); err != nil {
			return nil, err
		}
		items = append(items, p.Value...)
		next = p.NextLink
	}
	return items, nil
}

// FindChild ищет дочерний элемент по имени без учета регистра, как это делает OneDrive.
func (c *Client) FindChild(ctx context.Context, folderID, name string) (*Item, error) {
	children, err := c.ListChildren(ctx, folderID)
	if err != nil {
		return nil, err
	}
	for i := range children {
		if strings.EqualFold(children[i].Name, name) {
			return &children[i], nil
		}
	}
	return nil, ErrItemNotFound
}

func (c *Client) CreateFolder(ctx context.Context, parentID, name string) (*Item, error) {
	body := map[string]any{
		"name":                              name,
		"folder":                            map[string]any{},
		"@microsoft.graph.conflictBehavior": "fail",
	}
	var item Item
	err := c.doJSON(ctx, http.MethodPost, c.drivePath()+"/items/"+url.PathEscape(parentID)+"/children", body, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindOrCreateFolder создает папку; при конфликте имени возвращает существующую.
func (c *Client) FindOrCreateFolder(ctx context.Context, parentID, name string) (*Item, error) {
	item, err := c.CreateFolder(ctx, parentID, name)
	if err == nil {
		return item, nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
		return c.FindChild(ctx, parentID, name)
	}
	return nil, err
}

// DeleteItem удаляет элемент. Отсутствующий элемент считается удаленным.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	err := c.doJSON(ctx, http.MethodDelete, c.drivePath()+"/items/"+url.PathEscape(id), nil, nil)
	if errors.Is(err, ErrItemNotFound) {
		return nil
	}
	return err
}

func (c *Client) UploadFile(ctx context.Context, parentID, name string, content []byte) (*Item, error) {
	path := c.drivePath() + "/items/" + url.PathEscape(parentID) + ":/" + url.PathEscape(name) + ":/content"
	var item Item
	if err := c.doRaw(ctx, http.MethodPut, path, content, "text/csv", &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateFileContent(ctx context.Context, id string, content []byte) (*Item, error) {
	var item Item
	if err := c.doRaw(ctx, http.MethodPut, c.drivePath()+"/items/"+url.PathEscape(id)+"/content", content, "text/csv", &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) GetFileContent(ctx context.Context, id string) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.doRaw(ctx, http.MethodGet, c.drivePath()+"/items/"+url.PathEscape(id)+"/content", nil, "", &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = b
	}
	contentType := ""
	if payload != nil {
		contentType = "application/json"
	}
	return c.doRaw(ctx, method, path, payload, contentType, out)
}

// doRaw выполняет запрос с повторами на 429/5xx. out может быть *bytes.Buffer
// для сырого тела или любым значением для JSON.
func (c *Client) doRaw(ctx context.Context, method, path string, payload []byte, contentType string, out any) error {
	u := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		u = c.baseURL + path
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff * time.Duration(1<<(attempt-1))):
			}
		}

		retry, err := c.once(ctx, method, u, payload, contentType, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			return err
		}
		c.log.Debug().Err(err).Str("method", method).Str("url", u).Int("attempt", attempt+1).Msg("graph request retry")
	}
	return lastErr
}

func (c *Client) once(ctx context.Context, method, u string, payload []byte, contentType string, out any) (bool, error) {
	tok, err := c.tokens.Token()
	if err != nil {
		return false, &TokenError{Err: err}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return false, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	tok.SetAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := decodeAPIError(resp)
		switch {
		case resp.StatusCode == http.StatusNotFound:
			return false, fmt.Errorf("%w: %s", ErrItemNotFound, apiErr.Message)
		case resp.StatusCode == http.StatusUnauthorized:
			c.tokens.Invalidate()
			return false, apiErr
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return true, apiErr
		default:
			return false, apiErr
		}
	}

	switch dst := out.(type) {
	case nil:
		return false, nil
	case *bytes.Buffer:
		_, err = io.Copy(dst, resp.Body)
		return false, err
	default:
		if resp.StatusCode == http.StatusNoContent {
			return false, nil
		}
		return false, json.NewDecoder(resp.Body).Decode(out)
	}
}

func decodeAPIError(resp *http.Response) *APIError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(b))}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(b, &envelope) == nil && envelope.Error.Code != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}

func escapePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
