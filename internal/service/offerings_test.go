package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/repository"
)

// pricingOfferings — мок каталога с записью обновлений цен.
type pricingOfferings struct {
	mockOfferings
	updates int
}

func (m *pricingOfferings) UpdatePricing(_ context.Context, id, price string, originalPrice *string) error {
	o, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	m.updates++
	o.Price = price
	o.OriginalPrice = originalPrice
	return nil
}

func newOfferingFixture() (*OfferingService, *pricingOfferings) {
	offerings := &pricingOfferings{}
	offerings.byID = map[string]*model.ServiceOffering{
		"ltd-registration": {
			ID:    "ltd-registration",
			Title: "Регистрация LTD",
			Price: "55000",
		},
	}
	svc := NewOfferingService(offerings, testLogger())
	return svc, offerings
}

// TestOfferingGet_NotFound — запрос неизвестной услуги.
func TestOfferingGet_NotFound(t *testing.T) {
	svc, _ := newOfferingFixture()

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
}

// TestUpdatePricing_Normalizes — цена с символом валюты и разделителями
// нормализуется до строки из цифр перед записью.
func TestUpdatePricing_Normalizes(t *testing.T) {
	svc, offerings := newOfferingFixture()

	orig := "₦75,000"
	o, err := svc.UpdatePricing(context.Background(), "ltd-registration", "₦60,000", &orig)
	if err != nil {
		t.Fatalf("UpdatePricing() вернул ошибку: %v", err)
	}

	if o.Price != "60000" {
		t.Errorf("Price = %q, ожидается 60000", o.Price)
	}
	if o.OriginalPrice == nil || *o.OriginalPrice != "75000" {
		t.Errorf("OriginalPrice = %v, ожидается 75000", o.OriginalPrice)
	}
	if offerings.updates != 1 {
		t.Errorf("обновлений в БД: %d, ожидается 1", offerings.updates)
	}
}

// TestUpdatePricing_EmptyOriginal — пустая original_price сбрасывает скидку.
func TestUpdatePricing_EmptyOriginal(t *testing.T) {
	svc, _ := newOfferingFixture()

	empty := ""
	o, err := svc.UpdatePricing(context.Background(), "ltd-registration", "60000", &empty)
	if err != nil {
		t.Fatalf("UpdatePricing() вернул ошибку: %v", err)
	}
	if o.OriginalPrice != nil {
		t.Errorf("OriginalPrice = %q, ожидается nil", *o.OriginalPrice)
	}
}

// TestUpdatePricing_Invalid — невалидные цены отклоняются до записи в БД.
func TestUpdatePricing_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		price         string
		originalPrice *string
	}{
		{"нецифровая цена", "по запросу", nil},
		{"нулевая цена", "0", nil},
		{"невалидная original_price", "60000", strPtr("бесплатно")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, offerings := newOfferingFixture()

			_, err := svc.UpdatePricing(context.Background(), "ltd-registration", tt.price, tt.originalPrice)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ожидалась ErrValidation, получено %v", err)
			}
			if offerings.updates != 0 {
				t.Error("невалидная цена записана в БД")
			}
		})
	}
}

// TestUpdatePricing_NotFound — обновление неизвестной услуги.
func TestUpdatePricing_NotFound(t *testing.T) {
	svc, _ := newOfferingFixture()

	_, err := svc.UpdatePricing(context.Background(), "missing", "60000", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
}

func strPtr(s string) *string { return &s }
