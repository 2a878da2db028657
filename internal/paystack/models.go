// models.go — структуры запросов и ответов Paystack API.
package paystack

// initializeRequest — тело POST /transaction/initialize.
type initializeRequest struct {
	// Email — email плательщика.
	Email string `json:"email"`
	// Amount — сумма в кобо (минорные единицы).
	Amount int64 `json:"amount"`
	// Currency — валюта (NGN).
	Currency string `json:"currency"`
	// Reference — собственный референс транзакции (опционально).
	Reference string `json:"reference,omitempty"`
	// Metadata — произвольные метаданные транзакции.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// apiEnvelope — общий конверт ответов Paystack.
type apiEnvelope struct {
	// Status — успех вызова API (не платежа).
	Status bool `json:"status"`
	// Message — сообщение API.
	Message string `json:"message"`
}

// InitializeResult — данные успешной инициализации транзакции.
type InitializeResult struct {
	// AuthorizationURL — страница оплаты Paystack.
	AuthorizationURL string `json:"authorization_url"`
	// AccessCode — код для инициализации платёжного виджета.
	AccessCode string `json:"access_code"`
	// Reference — референс транзакции.
	Reference string `json:"reference"`
}

// initializeResponse — полный ответ POST /transaction/initialize.
type initializeResponse struct {
	apiEnvelope
	Data InitializeResult `json:"data"`
}

// VerifyResult — данные ответа верификации транзакции.
type VerifyResult struct {
	// Status — статус платежа: success, failed, abandoned, pending.
	Status string `json:"status"`
	// Reference — референс транзакции.
	Reference string `json:"reference"`
	// Amount — сумма в кобо.
	Amount int64 `json:"amount"`
	// Currency — валюта.
	Currency string `json:"currency"`
	// GatewayResponse — текстовый ответ шлюза.
	GatewayResponse string `json:"gateway_response"`
	// PaidAt — время оплаты (строка ISO 8601, пустая для неоплаченных).
	PaidAt string `json:"paid_at"`
	// Channel — канал оплаты (card, bank, ussd).
	Channel string `json:"channel"`
	// Customer — данные плательщика.
	Customer VerifyCustomer `json:"customer"`
}

// VerifyCustomer — плательщик в ответе верификации.
type VerifyCustomer struct {
	// Email — email плательщика.
	Email string `json:"email"`
}

// Succeeded сообщает, что платёж прошёл успешно.
func (v *VerifyResult) Succeeded() bool {
	return v.Status == "success"
}

// verifyResponse — полный ответ GET /transaction/verify/{reference}.
type verifyResponse struct {
	apiEnvelope
	Data VerifyResult `json:"data"`
}
