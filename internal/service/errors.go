// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import "errors"

var (
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrConflict — конфликт (дублирующийся ресурс).
	ErrConflict = errors.New("конфликт — ресурс уже существует")
	// ErrValidation — ошибка валидации входных данных.
	ErrValidation = errors.New("ошибка валидации")
	// ErrPaymentUnavailable — платёжный провайдер недоступен.
	ErrPaymentUnavailable = errors.New("платёжный провайдер недоступен")
	// ErrPaymentNotConfirmed — провайдер не подтвердил успешность платежа.
	ErrPaymentNotConfirmed = errors.New("платёж не подтверждён провайдером")
)
