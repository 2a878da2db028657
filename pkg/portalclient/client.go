// Пакет portalclient — Go SDK Portal API для клиентского сайта и
// back-office. Единственный источник сессии: каждый bearer-вызов
// берёт токен из одного и того же аксессора, подписчики получают
// уведомления о каждой смене сессии.
package portalclient

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
	"strconv"
	"sync"
	"time"
)

// Ошибки SDK.
var (
	// ErrNoSession — bearer-вызов без активной сессии.
	ErrNoSession = errors.New("нет активной сессии")
	// ErrSearchTimeout — поиск публикаций не уложился в отведённое время.
	ErrSearchTimeout = errors.New("поиск публикаций: превышено время ожидания")
)

// refreshSkew — запас до истечения access-токена, при котором
// выполняется упреждающая ротация.
const refreshSkew = 30 * time.Second

// postsSearchTimeout — фиксированный таймаут поиска публикаций.
const postsSearchTimeout = 5 * time.Second

// APIError — ошибка Portal API в стандартном формате.
type APIError struct {
	// StatusCode — HTTP-статус ответа
	StatusCode int
	// Code — машиночитаемый код (VALIDATION_ERROR, NOT_FOUND, ...)
	Code string
	// Message — описание
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("portal api: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// Option — опция конструктора клиента.
type Option func(*Client)

// WithHTTPClient задаёт HTTP-клиент вместо клиента по умолчанию.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger задаёт логгер SDK.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithStoredRefreshToken передаёт refresh-токен, сохранённый с прошлого
// запуска. Сессия остаётся неопределённой до первого Resolve.
func WithStoredRefreshToken(token string) Option {
	return func(c *Client) { c.storedRefresh = token }
}

// Client — клиент Portal API.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger

	storedRefresh string

	mu       sync.RWMutex
	session  *Session
	resolved bool
	subs     map[int]func(*Session)
	nextSub  int
}

// New создаёт клиент Portal API.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default(),
		subs:    make(map[int]func(*Session)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(slog.String("component", "portalclient"))
	return c
}

// Session возвращает копию текущей сессии или nil.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	sess := *c.session
	return &sess
}

// Resolved сообщает, определено ли состояние сессии.
func (c *Client) Resolved() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolved
}

// Resolve блокирующе определяет состояние сессии: сохранённый
// refresh-токен обменивается на новую пару, его отсутствие или любая
// ошибка означает «сессии нет» (fail closed). Повторные вызовы
// возвращаются сразу.
func (c *Client) Resolve(ctx context.Context) error {
	c.mu.Lock()
	if c.resolved {
		c.mu.Unlock()
		return nil
	}
	stored := c.storedRefresh
	c.mu.Unlock()

	if stored == "" {
		c.setSession(nil)
		return nil
	}

	sess, err := c.refresh(ctx, stored)
	if err != nil {
		c.logger.Debug("Сохранённая сессия не восстановлена", slog.String("error", err.Error()))
		c.setSession(nil)
		return nil
	}
	c.setSession(sess)
	return nil
}

// OnSessionChange подписывает fn на смены сессии и возвращает
// функцию отписки. Отписка идемпотентна.
func (c *Client) OnSessionChange(fn func(*Session)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// setSession публикует новую сессию и уведомляет подписчиков.
func (c *Client) setSession(sess *Session) {
	c.mu.Lock()
	c.session = sess
	c.resolved = true
	subs := make([]func(*Session), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(sess)
	}
}

// --- Аутентификация ---

// SignIn выполняет вход и публикует новую сессию.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var sess Session
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/sign-in", map[string]string{
		"email":    email,
		"password": password,
	}, &sess, false)
	if err != nil {
		return nil, err
	}
	c.setSession(&sess)
	return c.Session(), nil
}

// SignOut отзывает refresh-сессию и очищает состояние клиента.
func (c *Client) SignOut(ctx context.Context) error {
	sess := c.Session()
	if sess == nil {
		return nil
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/sign-out", map[string]string{
		"refresh_token": sess.RefreshToken,
	}, nil, false)
	// Локальная сессия очищается в любом случае
	c.setSession(nil)
	return err
}

// refresh обменивает refresh-токен на новую пару токенов.
func (c *Client) refresh(ctx context.Context, refreshToken string) (*Session, error) {
	var sess Session
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	}, &sess, false)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// bearerToken возвращает действующий access-токен, при необходимости
// выполняя упреждающую ротацию. Ошибка ротации сбрасывает сессию.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	sess := c.Session()
	if sess == nil {
		return "", ErrNoSession
	}

	if time.Until(sess.ExpiresAt) > refreshSkew {
		return sess.AccessToken, nil
	}

	rotated, err := c.refresh(ctx, sess.RefreshToken)
	if err != nil {
		c.logger.Warn("Ротация сессии не удалась", slog.String("error", err.Error()))
		c.setSession(nil)
		return "", ErrNoSession
	}
	c.setSession(rotated)
	return rotated.AccessToken, nil
}

// --- Каталог услуг ---

// Services возвращает каталог услуг.
func (c *Client) Services(ctx context.Context) ([]ServiceOffering, error) {
	var out []ServiceOffering
	if err := c.do(ctx, http.MethodGet, "/api/v1/services", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// Service возвращает услугу по слагу.
func (c *Client) Service(ctx context.Context, id string) (*ServiceOffering, error) {
	var out ServiceOffering
	if err := c.do(ctx, http.MethodGet, "/api/v1/services/"+url.PathEscape(id), nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateServicePricing обновляет ценовые поля услуги. Требует admin.
func (c *Client) UpdateServicePricing(ctx context.Context, id, price string, originalPrice *string) (*ServiceOffering, error) {
	body := map[string]any{"price": price}
	if originalPrice != nil {
		body["original_price"] = *originalPrice
	}
	var out ServiceOffering
	if err := c.do(ctx, http.MethodPut, "/api/v1/services/"+url.PathEscape(id), body, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Контент ---

// Slides возвращает слайды; section — опциональный фильтр.
func (c *Client) Slides(ctx context.Context, section string) (*SlideList, error) {
	path := "/api/v1/slides"
	if section != "" {
		path += "?section=" + url.QueryEscape(section)
	}
	var out SlideList
	if err := c.do(ctx, http.MethodGet, path, nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostsQuery — параметры списка публикаций.
type PostsQuery struct {
	Category string
	Q        string
	Limit    int
	Offset   int
}

// Posts возвращает страницу публикаций. Запросы с поисковой строкой
// ограничены фиксированным таймаутом; его превышение возвращается
// отдельным видом ошибки ErrSearchTimeout.
func (c *Client) Posts(ctx context.Context, query PostsQuery) (*PostList, error) {
	params := url.Values{}
	if query.Category != "" {
		params.Set("category", query.Category)
	}
	if query.Q != "" {
		params.Set("q", query.Q)
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		params.Set("offset", strconv.Itoa(query.Offset))
	}
	path := "/api/v1/posts"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	if query.Q != "" {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, postsSearchTimeout)
		defer cancel()
	}

	var out PostList
	if err := c.do(ctx, http.MethodGet, path, nil, &out, false); err != nil {
		if query.Q != "" && errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrSearchTimeout
		}
		return nil, err
	}
	return &out, nil
}

// GetPost возвращает публикацию по UUID.
func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodGet, "/api/v1/posts/"+url.PathEscape(id), nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost удаляет публикацию. Требует admin.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/posts/"+url.PathEscape(id), nil, nil, true)
}

// DeleteSlide удаляет слайд. Требует admin.
func (c *Client) DeleteSlide(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/slides/"+url.PathEscape(id), nil, nil, true)
}

// --- Заявки ---

// StageApplication записывает черновик заявки в pending-слот.
func (c *Client) StageApplication(ctx context.Context, draft *ApplicationDraft) error {
	return c.do(ctx, http.MethodPost, "/api/v1/applications/stage", draft, nil, false)
}

// Applications возвращает страницу реестра заявок. Требует admin.
func (c *Client) Applications(ctx context.Context, status string, limit, offset int) (*ApplicationList, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	path := "/api/v1/applications"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var out ApplicationList
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdvanceApplicationStatus продвигает статус заявки. Требует admin.
func (c *Client) AdvanceApplicationStatus(ctx context.Context, id, status string) (*Application, error) {
	var out Application
	err := c.do(ctx, http.MethodPut, "/api/v1/applications/"+url.PathEscape(id)+"/status",
		map[string]string{"status": status}, &out, true)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Track возвращает заявки по email директора или платёжному референсу.
func (c *Client) Track(ctx context.Context, email, reference string) (*TrackResult, error) {
	params := url.Values{}
	if email != "" {
		params.Set("email", email)
	}
	if reference != "" {
		params.Set("reference", reference)
	}
	var out TrackResult
	if err := c.do(ctx, http.MethodGet, "/api/v1/track?"+params.Encode(), nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Платежи и журнал ---

// InitializePayment создаёт checkout-сессию у провайдера.
func (c *Client) InitializePayment(ctx context.Context, serviceID, email string) (*PaymentInit, error) {
	var out PaymentInit
	err := c.do(ctx, http.MethodPost, "/api/v1/payments/initialize", map[string]string{
		"service_id": serviceID,
		"email":      email,
	}, &out, false)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmPayment подтверждает платёж по референсу.
func (c *Client) ConfirmPayment(ctx context.Context, reference string) (*ConfirmResult, error) {
	var out ConfirmResult
	err := c.do(ctx, http.MethodPost, "/api/v1/payments/confirm", map[string]string{
		"reference": reference,
	}, &out, false)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckoutSession возвращает checkout-сессию по референсу.
func (c *Client) CheckoutSession(ctx context.Context, reference string) (*CheckoutSession, error) {
	var out CheckoutSession
	if err := c.do(ctx, http.MethodGet, "/api/v1/payments/session/"+url.PathEscape(reference), nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// Transactions возвращает страницу журнала платежей. Требует admin.
func (c *Client) Transactions(ctx context.Context, limit, offset int) (*TransactionList, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	path := "/api/v1/transactions"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var out TransactionList
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Транспорт ---

// do выполняет HTTP-вызов Portal API: JSON-кодирование тела,
// bearer-авторизация (authed=true), декодирование ответа и
// стандартных ошибок {"error":{"code","message"}}.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("кодирование запроса: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("создание запроса: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, err := c.bearerToken(ctx)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Таймаут контекста пробрасывается как есть для различения вида ошибки
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("запрос %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("декодирование ответа: %w", err)
		}
	}
	return nil
}

// decodeAPIError декодирует стандартное тело ошибки Portal API.
func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error.Code == "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       "UNKNOWN",
			Message:    resp.Status,
		}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       body.Error.Code,
		Message:    body.Error.Message,
	}
}
