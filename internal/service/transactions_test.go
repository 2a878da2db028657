package service

import (
	"context"
	"errors"
	"testing"
)

// TestRecord_Success — ручная запись платежа.
func TestRecord_Success(t *testing.T) {
	txns := &mockTxns{}
	svc := NewTransactionService(txns, testLogger())

	txn, err := svc.Record(context.Background(), "  ada@test.com ", " Регистрация LTD ", 55000, "")
	if err != nil {
		t.Fatalf("Record() вернул ошибку: %v", err)
	}

	if txn.Client != "ada@test.com" {
		t.Errorf("Client = %q, ожидается обрезанный ada@test.com", txn.Client)
	}
	if txn.Service != "Регистрация LTD" {
		t.Errorf("Service = %q, ожидается обрезанное название", txn.Service)
	}
	if txn.Status != "success" {
		t.Errorf("Status = %q, ожидается success по умолчанию", txn.Status)
	}
	if len(txns.created) != 1 {
		t.Errorf("записей в журнале: %d, ожидается 1", len(txns.created))
	}
}

// TestRecord_Validation — обязательные поля записи.
func TestRecord_Validation(t *testing.T) {
	tests := []struct {
		name    string
		client  string
		service string
		amount  int64
	}{
		{"пустой client", "  ", "Регистрация LTD", 55000},
		{"пустой service", "ada@test.com", "", 55000},
		{"нулевая сумма", "ada@test.com", "Регистрация LTD", 0},
		{"отрицательная сумма", "ada@test.com", "Регистрация LTD", -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns := &mockTxns{}
			svc := NewTransactionService(txns, testLogger())

			_, err := svc.Record(context.Background(), tt.client, tt.service, tt.amount, "success")
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ожидалась ErrValidation, получено %v", err)
			}
			if len(txns.created) != 0 {
				t.Error("невалидная запись попала в журнал")
			}
		})
	}
}
