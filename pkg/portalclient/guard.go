// guard.go — решение о допуске к защищённым страницам back-office.
// Неопределённая сессия сначала блокирующе разрешается, затем
// применяется таблица решений; любая ошибка трактуется как
// отсутствие сессии (fail closed).
package portalclient

import "context"

// Decision — решение guard'а.
type Decision int

const (
	// DecisionRedirect — перенаправить на страницу входа, ничего не рендерить.
	DecisionRedirect Decision = iota
	// DecisionRender — рендерить запрошенную страницу.
	DecisionRender
)

// Guard — проверка допуска к страницам back-office.
type Guard struct {
	client *Client
}

// NewGuard создаёт guard поверх клиента Portal API.
func NewGuard(client *Client) *Guard {
	return &Guard{client: client}
}

// Allow возвращает решение о допуске. requireAdmin дополнительно
// требует роль admin. До первого решения состояние сессии
// разрешается блокирующе: страница не успевает мелькнуть
// неавторизованному пользователю.
func (g *Guard) Allow(ctx context.Context, requireAdmin bool) Decision {
	if err := g.client.Resolve(ctx); err != nil {
		return DecisionRedirect
	}

	sess := g.client.Session()
	if sess == nil {
		return DecisionRedirect
	}
	if requireAdmin && !sess.IsAdmin() {
		return DecisionRedirect
	}
	return DecisionRender
}
