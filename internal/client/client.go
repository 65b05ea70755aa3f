// Package client is the storefront's REST client for the catalog, order and
// user services.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MikeMC777/cafe-altura/internal/order"
	"github.com/MikeMC777/cafe-altura/internal/product"
	"github.com/MikeMC777/cafe-altura/internal/user"
)

// APIError is a non-2xx answer. Message is the server's {"error"} text when
// there is one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	HTTP    *http.Client
	BaseURL string
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SetToken sets the bearer token sent on every request. Empty clears it.
func (c *Client) SetToken(tok string) { c.token = tok }

func (c *Client) ListProducts(ctx context.Context) ([]product.Product, error) {
	var out []product.Product
	return out, c.do(ctx, http.MethodGet, "/api/granos", nil, &out)
}

func (c *Client) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	if err := c.do(ctx, http.MethodGet, "/api/granos/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Register(ctx context.Context, req user.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/api/usuarios/registro", req, nil)
}

func (c *Client) Login(ctx context.Context, email, password string) (*user.LoginResponse, error) {
	var res user.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/usuarios/login", user.LoginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]order.Order, error) {
	var out []order.Order
	return out, c.do(ctx, http.MethodGet, "/api/pedidos", nil, &out)
}

func (c *Client) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	var o order.Order
	if err := c.do(ctx, http.MethodGet, "/api/pedidos/"+url.PathEscape(id), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) CreateOrder(ctx context.Context, req order.CreateOrderRequest) (*order.Order, error) {
	var o order.Order
	if err := c.do(ctx, http.MethodPost, "/api/pedidos", req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) SetOrderStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	var o order.Order
	path := "/api/pedidos/" + url.PathEscape(id) + "/estado"
	if err := c.do(ctx, http.MethodPut, path, order.UpdateStatusRequest{Status: string(status)}, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Status: res.StatusCode, Message: res.Status}
		var e struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(res.Body).Decode(&e) == nil && e.Error != "" {
			apiErr.Message = e.Error
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
