// types.go — типы данных Portal API, видимые потребителям SDK.
package portalclient

import "time"

// Session — активная сессия back-office.
type Session struct {
	// AccessToken — подписанный JWT для bearer-вызовов
	AccessToken string `json:"access_token"`
	// RefreshToken — opaque-токен ротации
	RefreshToken string `json:"refresh_token"`
	// ExpiresAt — момент истечения access-токена
	ExpiresAt time.Time `json:"expires_at"`
	// Email — email учётной записи
	Email string `json:"email"`
	// Role — роль (admin, client)
	Role string `json:"role"`
}

// IsAdmin сообщает, принадлежит ли сессия администратору.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == "admin"
}

// FormField — поле анкеты услуги.
type FormField struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// ServiceOffering — услуга регистрации в каталоге.
type ServiceOffering struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Price — цена в найрах, только цифры
	Price string `json:"price"`
	// DisplayPrice — цена для отображения, формат "₦55,000"
	DisplayPrice         string      `json:"display_price"`
	OriginalPrice        *string     `json:"original_price,omitempty"`
	DisplayOriginalPrice *string     `json:"display_original_price,omitempty"`
	FormSchema           []FormField `json:"form_schema"`
	Position             int         `json:"position"`
}

// Slide — медиаслайд маркетинговой секции.
type Slide struct {
	ID        string    `json:"id"`
	Section   string    `json:"section"`
	MediaURL  string    `json:"media_url"`
	MediaType string    `json:"media_type"`
	CreatedAt time.Time `json:"created_at"`
}

// SlideList — ответ списка слайдов.
type SlideList struct {
	Items []Slide `json:"items"`
	Total int     `json:"total"`
}

// Post — публикация новостного раздела.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Category  string    `json:"category"`
	MediaURL  *string   `json:"media_url,omitempty"`
	MediaType *string   `json:"media_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PostList — страница публикаций.
type PostList struct {
	Items   []Post `json:"items"`
	Total   int    `json:"total"`
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
	HasMore bool   `json:"has_more"`
}

// ApplicationDraft — черновик заявки для pending-слота.
type ApplicationDraft struct {
	ServiceID     string            `json:"service_id"`
	ProposedName1 string            `json:"proposed_name_1,omitempty"`
	ProposedName2 string            `json:"proposed_name_2,omitempty"`
	DirectorName  string            `json:"director_name"`
	DirectorEmail string            `json:"director_email"`
	DirectorPhone string            `json:"director_phone,omitempty"`
	Address       string            `json:"address,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
}

// Application — заявка, сохранённая в реестре.
type Application struct {
	ID            string            `json:"id"`
	ServiceID     string            `json:"service_id"`
	ProposedName1 string            `json:"proposed_name_1"`
	ProposedName2 *string           `json:"proposed_name_2,omitempty"`
	DirectorName  string            `json:"director_name"`
	DirectorEmail string            `json:"director_email"`
	DirectorPhone string            `json:"director_phone"`
	Address       string            `json:"address"`
	Fields        map[string]string `json:"fields,omitempty"`
	Status        string            `json:"status"`
	PaymentRef    string            `json:"payment_ref"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ApplicationList — страница реестра заявок.
type ApplicationList struct {
	Items   []Application `json:"items"`
	Total   int           `json:"total"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
	HasMore bool          `json:"has_more"`
}

// TrackResult — результат отслеживания заявок.
type TrackResult struct {
	Items []Application `json:"items"`
	Total int           `json:"total"`
}

// Transaction — запись журнала платежей.
type Transaction struct {
	ID        string    `json:"id"`
	Client    string    `json:"client"`
	Service   string    `json:"service"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TransactionList — страница журнала платежей.
type TransactionList struct {
	Items   []Transaction `json:"items"`
	Total   int           `json:"total"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
	HasMore bool          `json:"has_more"`
}

// CheckoutSession — состояние checkout-прохода на сервере.
type CheckoutSession struct {
	Reference        string    `json:"reference"`
	ServiceID        string    `json:"service_id"`
	ServiceTitle     string    `json:"service_title"`
	Email            string    `json:"email"`
	AmountNaira      int64     `json:"amount_naira"`
	AmountKobo       int64     `json:"amount_kobo"`
	AccessCode       string    `json:"access_code"`
	AuthorizationURL string    `json:"authorization_url"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// PaymentInit — ответ инициализации платежа.
type PaymentInit struct {
	Session   CheckoutSession `json:"session"`
	PublicKey string          `json:"public_key"`
}

// ConfirmResult — ответ подтверждения платежа.
type ConfirmResult struct {
	Session        *CheckoutSession `json:"session,omitempty"`
	Application    *Application     `json:"application,omitempty"`
	Transaction    *Transaction     `json:"transaction,omitempty"`
	RegistrySynced bool             `json:"registry_synced"`
}
