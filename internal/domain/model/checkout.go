package model

import "time"

// Статусы checkout-сессии.
const (
	// CheckoutAwaitingPayment — платёж инициализирован, подтверждение не получено.
	CheckoutAwaitingPayment = "awaiting_payment"
	// CheckoutConfirmed — провайдер подтвердил успешный платёж.
	CheckoutConfirmed = "confirmed"
	// CheckoutCancelled — клиент отказался или провайдер отклонил платёж.
	CheckoutCancelled = "cancelled"
)

// CheckoutSession — состояние одного checkout-прохода.
// Живёт в Redis от инициализации платежа до подтверждения или истечения TTL.
type CheckoutSession struct {
	// Reference — референс транзакции платёжного провайдера (ключ сессии)
	Reference string `json:"reference"`
	// ServiceID — слаг оплачиваемой услуги
	ServiceID string `json:"service_id"`
	// ServiceTitle — название услуги на момент инициализации
	ServiceTitle string `json:"service_title"`
	// Email — email плательщика
	Email string `json:"email"`
	// AmountNaira — сумма в найрах
	AmountNaira int64 `json:"amount_naira"`
	// AmountKobo — сумма в кобо, переданная провайдеру
	AmountKobo int64 `json:"amount_kobo"`
	// AccessCode — access code провайдера для платёжного виджета
	AccessCode string `json:"access_code"`
	// AuthorizationURL — страница оплаты провайдера
	AuthorizationURL string `json:"authorization_url"`
	// Status — статус сессии
	Status string `json:"status"`
	// CreatedAt — время инициализации
	CreatedAt time.Time `json:"created_at"`
	// ExpiresAt — конец checkout-отсчёта. Информационное поле:
	// истечение не отменяет транзакцию на стороне провайдера.
	ExpiresAt time.Time `json:"expires_at"`
}

// RefreshSession — серверная сторона refresh-сессии.
// Ключом служит сам refresh-токен; при ротации старый ключ удаляется.
type RefreshSession struct {
	// AccountID — UUID учётной записи
	AccountID string `json:"account_id"`
	// Email — email учётной записи
	Email string `json:"email"`
	// CreatedAt — время выпуска сессии
	CreatedAt time.Time `json:"created_at"`
}
