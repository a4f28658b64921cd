package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ticket-qr-gate/internal/model"
	apperrors "ticket-qr-gate/pkg/app_errors"
)

// HTTPClient gate 端對驗證服務的 REST client
// 驗證結果以 body 的 statusCode 為準，HTTP 層非 2xx 仍嘗試解出 body
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ValidateCode 呼叫 validate-by-code 端點；網路層錯誤回傳 error，
// 應用層拒絕（statusCode != 200）以 ValidationResult 表達
func (c *HTTPClient) ValidateCode(ctx context.Context, code string) (*model.ValidationResult, error) {
	body, err := json.Marshal(model.ValidateCodeRequest{Code: code})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/qrcodes/validate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("validate request failed: %w", err)
	}
	defer resp.Body.Close()

	var result model.ValidationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode validate response: %w", err)
	}
	return &result, nil
}

// FetchOrder 取得訂單（含兩種票券形態與其 QR 紀錄），供顯示端攤平與倒數
func (c *HTTPClient) FetchOrder(ctx context.Context, orderID int) (*model.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/v1/orders/%d", c.baseURL, orderID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch order failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.ErrOrderNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch order: unexpected status %d", resp.StatusCode)
	}

	var order model.Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	return &order, nil
}
