package model

import "time"

// Статусы заявки. Продвигаются только действием администратора.
const (
	ApplicationPending    = "pending"
	ApplicationProcessing = "processing"
	ApplicationCompleted  = "completed"
)

// ValidApplicationStatus проверяет допустимость статуса заявки.
func ValidApplicationStatus(status string) bool {
	switch status {
	case ApplicationPending, ApplicationProcessing, ApplicationCompleted:
		return true
	}
	return false
}

// ApplicationDraft — черновик заявки, введённый клиентом.
// До подтверждения оплаты живёт только в pending-слоте Redis;
// строка в БД не создаётся.
type ApplicationDraft struct {
	// ServiceID — слаг выбранной услуги
	ServiceID string `json:"service_id"`
	// ProposedName1 — первый вариант названия компании
	ProposedName1 string `json:"proposed_name_1"`
	// ProposedName2 — второй вариант названия (опционально)
	ProposedName2 string `json:"proposed_name_2,omitempty"`
	// DirectorName — ФИО директора
	DirectorName string `json:"director_name"`
	// DirectorEmail — email директора (ключ pending-слота)
	DirectorEmail string `json:"director_email"`
	// DirectorPhone — телефон директора
	DirectorPhone string `json:"director_phone"`
	// Address — адрес регистрации
	Address string `json:"address"`
	// Fields — дополнительные поля анкеты услуги
	Fields map[string]string `json:"fields,omitempty"`
	// StagedAt — время записи в слот
	StagedAt time.Time `json:"staged_at"`
}

// Application — заявка на регистрацию, сохранённая в БД.
// Инвариант: строка создаётся только с непустым PaymentRef.
type Application struct {
	// ID — UUID заявки
	ID string
	// ServiceID — слаг услуги
	ServiceID string
	// ProposedName1 — первый вариант названия
	ProposedName1 string
	// ProposedName2 — второй вариант названия
	ProposedName2 string
	// DirectorName — ФИО директора
	DirectorName string
	// DirectorEmail — email директора
	DirectorEmail string
	// DirectorPhone — телефон директора
	DirectorPhone string
	// Address — адрес регистрации
	Address string
	// Fields — дополнительные поля анкеты услуги
	Fields map[string]string
	// Status — статус заявки (pending, processing, completed)
	Status string
	// PaymentRef — референс платёжного провайдера
	PaymentRef string
	// CreatedAt — время создания строки
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}

// Transaction — аудиторская запись об успешном платеже.
// Создаётся один раз и далее не изменяется.
type Transaction struct {
	// ID — UUID записи
	ID string
	// Client — имя или email клиента
	Client string
	// Service — название оплаченной услуги
	Service string
	// Amount — сумма в найрах (целые единицы)
	Amount int64
	// Status — статус платежа (success)
	Status string
	// CreatedAt — время создания записи
	CreatedAt time.Time
}

// Account — учётная запись back-office.
// Роль не хранится: она вычисляется из email (см. пакет role).
type Account struct {
	// ID — UUID учётной записи
	ID string
	// Email — адрес (нижний регистр, уникальный)
	Email string
	// PasswordHash — bcrypt-хэш пароля
	PasswordHash string
	// CreatedAt — время создания
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}
