// Пакет role — вычисление роли учётной записи.
// Роль никогда не хранится в БД: она выводится из email в момент
// выпуска токена и попадает в JWT как подписанный claim, который
// сервер перепроверяет на каждом защищённом endpoint.
// Инвариант: ровно одна административная учётная запись.
package role

import "strings"

// Роли портала.
const (
	// RoleAdmin — единственная привилегированная учётная запись back-office.
	RoleAdmin = "admin"
	// RoleClient — любая другая аутентифицированная учётная запись.
	RoleClient = "client"
)

// ForEmail возвращает роль для адреса: admin, если адрес совпадает
// с единственным административным, иначе client.
// Сравнение регистронезависимое, пробелы по краям игнорируются.
func ForEmail(email, adminEmail string) string {
	if normalize(email) == normalize(adminEmail) && normalize(adminEmail) != "" {
		return RoleAdmin
	}
	return RoleClient
}

// IsValidRole проверяет, является ли строка допустимой ролью.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleClient
}

// normalize приводит адрес к каноническому виду для сравнения.
func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
