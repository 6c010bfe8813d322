package storageclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/sir_venger/filekeeper/pkg/storageproto"
)

// ErrNotFound: сторадж ответил 404 на запрос объекта.
var ErrNotFound = errors.New("storage object not found")

type PutObjectRequest struct {
	Key    string
	Reader io.Reader
	// Size < 0: длина неизвестна, тело уходит chunked.
	Size   int64
	Sha256 string
}

// ObjectInfo: ответ стораджа о сохранённом объекте.
type ObjectInfo struct {
	Key    string `json:"key"`
	Size   int64  `json:"size"`
	Sha256 string `json:"sha256"`
}

type Client interface {
	// PutObject Положить объект в хранилище
	PutObject(ctx context.Context, baseURL string, req PutObjectRequest) (ObjectInfo, error)
	// GetObject Достать объект из хранилища
	GetObject(ctx context.Context, baseURL, key string) (io.ReadCloser, error)
	// HeadObject Узнать размер и хеш объекта
	HeadObject(ctx context.Context, baseURL, key string) (ObjectInfo, error)
	// DeleteObject Удалить объект; отсутствие объекта ошибкой не считается
	DeleteObject(ctx context.Context, baseURL, key string) error
}

type httpClient struct {
	c *http.Client
}

// New создаёт HTTP-клиент по умолчанию.
func New() Client {
	return NewWithHTTPClient(&http.Client{})
}

// NewWithHTTPClient создаёт клиент поверх заданного http.Client.
func NewWithHTTPClient(c *http.Client) Client {
	return &httpClient{c: c}
}

// PutObject загружает объект в указанный storage.
func (h *httpClient) PutObject(ctx context.Context, baseURL string, req PutObjectRequest) (ObjectInfo, error) {
	u := storageproto.ObjectURL(baseURL, req.Key)
	body := req.Reader
	if req.Size == 0 || body == nil {
		body = http.NoBody
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u, body)
	if err != nil {
		return ObjectInfo{}, err
	}

	if req.Size >= 0 {
		httpReq.ContentLength = req.Size
	} else {
		httpReq.ContentLength = -1
	}
	if req.Sha256 != "" {
		httpReq.Header.Set(storageproto.HeaderChecksum, req.Sha256)
	}
	httpReq.Header.Set("Content-Type", "application/octet-stream")

	resp, err := h.c.Do(httpReq)
	if err != nil {
		return ObjectInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return ObjectInfo{}, fmt.Errorf("storage PUT failed: %s", resp.Status)
	}

	var info ObjectInfo
	if err = json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return ObjectInfo{}, fmt.Errorf("decode storage PUT response: %w", err)
	}
	return info, nil
}

// GetObject скачивает объект и возвращает поток с телом.
func (h *httpClient) GetObject(ctx context.Context, baseURL, key string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, storageproto.ObjectURL(baseURL, key), nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("storage GET failed: %s", resp.Status)
	}
}

// HeadObject запрашивает метаданные объекта без тела.
func (h *httpClient) HeadObject(ctx context.Context, baseURL, key string) (ObjectInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, storageproto.ObjectURL(baseURL, key), nil)
	if err != nil {
		return ObjectInfo{}, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return ObjectInfo{}, err
	}
	resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ObjectInfo{}, fmt.Errorf("%s: %w", key, ErrNotFound)
	default:
		return ObjectInfo{}, fmt.Errorf("storage HEAD failed: %s", resp.Status)
	}

	info := ObjectInfo{Key: key, Sha256: resp.Header.Get(storageproto.HeaderChecksum)}
	if v := resp.Header.Get(storageproto.HeaderSize); v != "" {
		if info.Size, err = strconv.ParseInt(v, 10, 64); err != nil {
			return ObjectInfo{}, fmt.Errorf("invalid %s header: %w", storageproto.HeaderSize, err)
		}
	}
	return info, nil
}

// DeleteObject удаляет объект со стораджа.
func (h *httpClient) DeleteObject(ctx context.Context, baseURL, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, storageproto.ObjectURL(baseURL, key), nil)
	if err != nil {
		return err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("storage DELETE failed: %s", resp.Status)
	}
	return nil
}
