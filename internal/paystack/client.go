// Пакет paystack — HTTP-клиент к Paystack API.
// Используются две операции: инициализация транзакции и верификация
// по референсу. Авторизация — секретным ключом в заголовке Bearer;
// токен статичен, кэширования не требуется.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Ошибки клиента.
var (
	// ErrUnavailable — Paystack недоступен или вернул неожиданный ответ.
	ErrUnavailable = errors.New("платёжный провайдер недоступен")
	// ErrTransactionNotFound — транзакция с таким референсом не найдена.
	ErrTransactionNotFound = errors.New("транзакция не найдена")
)

// currencyNGN — единственная валюта портала.
const currencyNGN = "NGN"

// Client — HTTP-клиент к Paystack API.
type Client struct {
	baseURL   string // Базовый URL API (без trailing slash)
	secretKey string // Секретный ключ (sk_...)

	httpClient *http.Client
	logger     *slog.Logger
}

// New создаёт клиент Paystack.
// baseURL — базовый URL API (обычно https://api.paystack.co).
// secretKey — секретный ключ аккаунта.
// httpClient — HTTP-клиент (nil — клиент по умолчанию с таймаутом 30s).
func New(baseURL, secretKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "paystack_client")),
	}
}

// Initialize инициализирует транзакцию.
// amountKobo — сумма в кобо; reference — собственный референс (может быть пустым,
// тогда Paystack сгенерирует свой).
func (c *Client) Initialize(ctx context.Context, email string, amountKobo int64, reference string, metadata map[string]string) (*InitializeResult, error) {
	reqBody := initializeRequest{
		Email:     email,
		Amount:    amountKobo,
		Currency:  currencyNGN,
		Reference: reference,
		Metadata:  metadata,
	}

	var resp initializeResponse
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", reqBody, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, resp.Message)
	}

	c.logger.Debug("Транзакция инициализирована",
		slog.String("reference", resp.Data.Reference),
		slog.Int64("amount_kobo", amountKobo),
	)
	return &resp.Data, nil
}

// Verify запрашивает состояние транзакции по референсу.
// Возвращает результат и для неуспешных платежей: решение о
// дальнейших действиях принимает вызывающий код.
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	path := "/transaction/verify/" + url.PathEscape(reference)

	var resp verifyResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, resp.Message)
	}

	return &resp.Data, nil
}

// do выполняет HTTP-запрос к API и декодирует ответ в out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("сериализация тела запроса: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("создание запроса: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: статус 404", ErrTransactionNotFound)
	case resp.StatusCode >= http.StatusInternalServerError:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: статус %d: %s", ErrUnavailable, resp.StatusCode, string(raw))
	case resp.StatusCode != http.StatusOK:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Paystack вернул статус %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("декодирование ответа Paystack: %w", err)
	}
	return nil
}
