// checkout.go — состояние checkout-прохода на стороне клиента.
// Selecting → AwaitingPayment → Confirmed | Cancelled. Дедлайн
// отсчёта — чистая UI-аффордация: его истечение ничего не отменяет.
package portalclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode"
)

// Состояния checkout-прохода.
type CheckoutState int

const (
	// StateSelecting — выбор услуги и заполнение анкеты.
	StateSelecting CheckoutState = iota
	// StateAwaitingPayment — транзакция создана, ожидается оплата.
	StateAwaitingPayment
	// StateConfirmed — платёж подтверждён.
	StateConfirmed
	// StateCancelled — проход отменён.
	StateCancelled
)

// Ошибки checkout-прохода.
var (
	// ErrInvalidSelection — пустой выбор или нечисловая цена; сетевые
	// вызовы не выполняются.
	ErrInvalidSelection = errors.New("некорректный выбор услуги или цены")
	// ErrCheckoutBusy — предыдущий переход ещё выполняется.
	ErrCheckoutBusy = errors.New("переход checkout уже выполняется")
	// ErrWrongState — операция недопустима в текущем состоянии.
	ErrWrongState = errors.New("операция недопустима в текущем состоянии checkout")
)

// CheckoutOutcome — итог подтверждения платежа.
type CheckoutOutcome struct {
	// Result — ответ сервера на подтверждение
	Result *ConfirmResult
	// ReceiptLink — ссылка на WhatsApp с предзаполненным чеком
	ReceiptLink string
}

// Checkout — клиентский state machine checkout-прохода.
type Checkout struct {
	client *Client
	// contactPhone — номер WhatsApp для ссылки-чека (формат E.164 без +)
	contactPhone string

	mu       sync.Mutex
	state    CheckoutState
	inFlight bool
	session  *CheckoutSession
	deadline time.Time
}

// NewCheckout создаёт checkout-проход в состоянии Selecting.
func NewCheckout(client *Client, contactPhone string) *Checkout {
	return &Checkout{
		client:       client,
		contactPhone: contactPhone,
		state:        StateSelecting,
	}
}

// State возвращает текущее состояние прохода.
func (co *Checkout) State() CheckoutState {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.state
}

// Deadline возвращает дедлайн отсчёта (нулевое время до инициализации).
func (co *Checkout) Deadline() time.Time {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.deadline
}

// Session возвращает checkout-сессию сервера (nil до инициализации).
func (co *Checkout) Session() *CheckoutSession {
	co.mu.Lock()
	defer co.mu.Unlock()
	if co.session == nil {
		return nil
	}
	sess := *co.session
	return &sess
}

// Begin переводит проход Selecting → AwaitingPayment: валидирует выбор
// и цену локально, записывает черновик в pending-слот и инициализирует
// платёж у провайдера. Некорректный выбор отклоняется до любого
// сетевого вызова.
func (co *Checkout) Begin(ctx context.Context, draft *ApplicationDraft, displayPrice string) (*PaymentInit, error) {
	co.mu.Lock()
	if co.state != StateSelecting && co.state != StateCancelled {
		co.mu.Unlock()
		return nil, ErrWrongState
	}
	if co.inFlight {
		co.mu.Unlock()
		return nil, ErrCheckoutBusy
	}
	co.inFlight = true
	co.mu.Unlock()

	defer func() {
		co.mu.Lock()
		co.inFlight = false
		co.mu.Unlock()
	}()

	if draft == nil || draft.ServiceID == "" {
		return nil, ErrInvalidSelection
	}
	if _, err := parseDisplayAmount(displayPrice); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}

	if err := co.client.StageApplication(ctx, draft); err != nil {
		return nil, err
	}

	init, err := co.client.InitializePayment(ctx, draft.ServiceID, draft.DirectorEmail)
	if err != nil {
		return nil, err
	}

	co.mu.Lock()
	co.state = StateAwaitingPayment
	co.session = &init.Session
	co.deadline = init.Session.ExpiresAt
	co.mu.Unlock()

	return init, nil
}

// Confirm переводит проход AwaitingPayment → Confirmed: подтверждает
// платёж по референсу и строит ссылку-чек. Ошибка записи транзакции
// на сервере не откатывает подтверждение.
func (co *Checkout) Confirm(ctx context.Context, reference string) (*CheckoutOutcome, error) {
	co.mu.Lock()
	if co.state != StateAwaitingPayment {
		co.mu.Unlock()
		return nil, ErrWrongState
	}
	if co.inFlight {
		co.mu.Unlock()
		return nil, ErrCheckoutBusy
	}
	co.inFlight = true
	co.mu.Unlock()

	defer func() {
		co.mu.Lock()
		co.inFlight = false
		co.mu.Unlock()
	}()

	result, err := co.client.ConfirmPayment(ctx, reference)
	if err != nil {
		return nil, err
	}

	co.mu.Lock()
	co.state = StateConfirmed
	if result.Session != nil {
		co.session = result.Session
	}
	co.mu.Unlock()

	return &CheckoutOutcome{
		Result:      result,
		ReceiptLink: co.receiptLink(result),
	}, nil
}

// Cancel возвращает проход в Selecting и снимает флаг выполнения.
func (co *Checkout) Cancel() {
	co.mu.Lock()
	defer co.mu.Unlock()
	co.state = StateSelecting
	co.inFlight = false
	co.session = nil
	co.deadline = time.Time{}
}

// receiptLink строит ссылку WhatsApp с предзаполненным текстом чека.
func (co *Checkout) receiptLink(result *ConfirmResult) string {
	if co.contactPhone == "" {
		return ""
	}

	// Текст чека — на языке клиентского сайта
	var b strings.Builder
	b.WriteString("Hello! I have just paid for")
	if result.Session != nil {
		fmt.Fprintf(&b, " %q (₦%d)", result.Session.ServiceTitle, result.Session.AmountNaira)
	} else {
		b.WriteString(" a registration service")
	}
	if result.Application != nil {
		fmt.Fprintf(&b, ". Payment reference: %s", result.Application.PaymentRef)
	} else if result.Session != nil {
		fmt.Fprintf(&b, ". Payment reference: %s", result.Session.Reference)
	}

	return "https://wa.me/" + co.contactPhone + "?text=" + url.QueryEscape(b.String())
}

// parseDisplayAmount разбирает отображаемую цену ("₦55,000") в сумму
// в найрах: все нецифровые символы отбрасываются, нулевые и пустые
// значения отклоняются.
func parseDisplayAmount(display string) (int64, error) {
	var amount int64
	seen := false
	for _, r := range display {
		if !unicode.IsDigit(r) {
			continue
		}
		seen = true
		amount = amount*10 + int64(r-'0')
	}
	if !seen {
		return 0, fmt.Errorf("цена %q не содержит цифр", display)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("цена %q должна быть положительной", display)
	}
	return amount, nil
}
