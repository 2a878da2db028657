// Пакет money — разбор и форматирование цен в найрах.
// Цены приходят строками вида "₦55,000"; сумма для платёжного
// провайдера передаётся в кобо (минорные единицы, ×100).
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// KoboPerNaira — множитель минорных единиц найры.
const KoboPerNaira = 100

// ErrInvalidAmount — цена не содержит положительной суммы.
var ErrInvalidAmount = errors.New("некорректная сумма: ожидается положительное целое число найр")

// ParseAmount извлекает сумму в найрах из строки цены.
// Все нецифровые символы (знак валюты, разделители тысяч, пробелы)
// отбрасываются. Сумма должна быть строго положительной:
// "₦0" и строки без цифр отклоняются до любого сетевого вызова.
func ParseAmount(price string) (int64, error) {
	var digits strings.Builder
	for _, r := range price {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, price)
	}

	amount, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, price)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, price)
	}

	return amount, nil
}

// ToKobo переводит сумму из найр в кобо для платёжного провайдера.
func ToKobo(naira int64) int64 {
	return naira * KoboPerNaira
}

// FormatNaira форматирует сумму в найрах для отображения: 60000 → "₦60,000".
func FormatNaira(amount int64) string {
	if amount < 0 {
		return "-" + FormatNaira(-amount)
	}

	s := strconv.FormatInt(amount, 10)

	// Расставляем разделители тысяч справа налево
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return "₦" + b.String()
}

// FormatPrice форматирует строку цены из БД (только цифры) для отображения.
// Невалидные значения возвращаются как есть, чтобы не терять данные.
func FormatPrice(price string) string {
	amount, err := ParseAmount(price)
	if err != nil {
		return price
	}
	return FormatNaira(amount)
}
