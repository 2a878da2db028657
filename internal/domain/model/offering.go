package model

import "time"

// Допустимые виды полей анкеты. Закрытое множество: generic-рендереры
// на стороне клиента работают только с этими видами.
const (
	FieldText     = "text"
	FieldDate     = "date"
	FieldSelect   = "select"
	FieldTextarea = "textarea"
	FieldEmail    = "email"
	FieldTel      = "tel"
)

// FormField — описание одного поля анкеты услуги.
// Хранится в service_offerings.form_schema (jsonb).
type FormField struct {
	// Name — машинное имя поля (ключ в данных заявки)
	Name string `json:"name"`
	// Label — подпись поля
	Label string `json:"label"`
	// Kind — вид поля (text, date, select, textarea, email, tel)
	Kind string `json:"kind"`
	// Required — обязательность поля
	Required bool `json:"required"`
	// Options — варианты выбора (только для kind=select)
	Options []string `json:"options,omitempty"`
}

// ValidFieldKind проверяет, входит ли вид поля в закрытое множество.
func ValidFieldKind(kind string) bool {
	switch kind {
	case FieldText, FieldDate, FieldSelect, FieldTextarea, FieldEmail, FieldTel:
		return true
	}
	return false
}

// ServiceOffering — услуга регистрации в каталоге.
// Ценовые поля авторитетны на сервере; клиент объединяет их
// со своим локальным шаблоном при каждом fetch.
type ServiceOffering struct {
	// ID — слаг услуги (например, "company")
	ID string
	// Title — отображаемое название
	Title string
	// Price — цена в найрах, только цифры (например, "55000")
	Price string
	// OriginalPrice — цена до скидки, только цифры (опционально)
	OriginalPrice *string
	// Description — описание услуги
	Description string
	// FormSchema — схема анкеты услуги
	FormSchema []FormField
	// Position — порядок сортировки в каталоге
	Position int
	// CreatedAt — время создания записи
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}
