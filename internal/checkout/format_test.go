package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/cart"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/domain"
)

func shoe(id int, name, price string) domain.Product {
	return domain.Product{
		ID:     id,
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Brand:  "Nike",
		Sizes:  []domain.Size{"41", "42"},
		Colors: []string{"black", "white"},
	}
}

func TestFormatOrder_PaidShipping(t *testing.T) {
	store := cart.NewStore()
	p := shoe(1, "Nike Air", "100")
	store.AddItem(p, "42", "black")
	store.AddItem(p, "42", "black")

	msg := FormatOrder(validCustomer(), store.Snapshot())

	want := "\nطلب جديد:\n\n" +
		"معلومات العميل:\n" +
		"الاسم: Ahmed Alami\n" +
		"رقم الجوال: 0612345678\n" +
		"العنوان: 12 Rue Hassan II, Maarif\n" +
		"المدينة: Casablanca\n\n" +
		"المنتجات:\n" +
		"Nike Air\nالمقاس: 42 | اللون: black\nالكمية: 2 | السعر: 200 ريال\n" +
		"\n\nملخص الطلب:\n" +
		"المجموع الفرعي: 200 ريال\n" +
		"الشحن: 50 ريال\n" +
		"الإجمالي النهائي: 250 ريال\n\n" +
		"طريقة الدفع: الدفع عند الاستلام"

	assert.Equal(t, want, msg.Body)
	assert.Equal(t, "Ahmed Alami", msg.Name)
	assert.Equal(t, "0612345678", msg.Contact)
	assert.Empty(t, msg.Reference)
}

func TestFormatOrder_FreeShippingAndSeveralItems(t *testing.T) {
	store := cart.NewStore()
	store.AddItem(shoe(1, "Nike Air", "100"), "42", "black")
	store.AddItem(shoe(3, "Clarks Desert", "389.99"), "41", "white")
	store.UpdateQuantity(3, "41", "white", 2)

	body := FormatOrder(validCustomer(), store.Snapshot()).Body

	assert.Contains(t, body, "Nike Air\nالمقاس: 42 | اللون: black\nالكمية: 1 | السعر: 100 ريال\n\n"+
		"Clarks Desert\nالمقاس: 41 | اللون: white\nالكمية: 2 | السعر: 779.98 ريال\n")
	assert.Contains(t, body, "المجموع الفرعي: 879.98 ريال\n")
	assert.Contains(t, body, "الشحن: مجاني\n")
	assert.Contains(t, body, "الإجمالي النهائي: 879.98 ريال\n")
}

func TestFormatOrder_ThresholdIsNotFree(t *testing.T) {
	store := cart.NewStore()
	store.AddItem(shoe(1, "Boot", "500"), "42", "black")

	body := FormatOrder(validCustomer(), store.Snapshot()).Body

	assert.Contains(t, body, "الشحن: 50 ريال\n")
	assert.Contains(t, body, "الإجمالي النهائي: 550 ريال\n")
}
