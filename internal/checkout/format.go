package checkout

import (
	"fmt"
	"strings"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/domain"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/relay"
)

const (
	currency         = "ريال"
	freeShipping     = "مجاني"
	paymentOnArrival = "الدفع عند الاستلام"
)

// FormatOrder renders the order text for customer and snap. The customer is
// assumed to be valid.
func FormatOrder(customer Customer, snap domain.CartSnapshot) relay.Message {
	items := make([]string, len(snap.Items))
	for i, li := range snap.Items {
		items[i] = formatLine(li)
	}

	shipping := freeShipping
	if !snap.Summary.FreeShipping() {
		shipping = amount(snap.Summary.Shipping.String())
	}

	var b strings.Builder
	b.WriteString("\nطلب جديد:\n\n")
	b.WriteString("معلومات العميل:\n")
	fmt.Fprintf(&b, "الاسم: %s\n", customer.Name)
	fmt.Fprintf(&b, "رقم الجوال: %s\n", customer.Phone)
	fmt.Fprintf(&b, "العنوان: %s\n", customer.Address)
	fmt.Fprintf(&b, "المدينة: %s\n\n", customer.City)
	b.WriteString("المنتجات:\n")
	b.WriteString(strings.Join(items, "\n"))
	b.WriteString("\n\nملخص الطلب:\n")
	fmt.Fprintf(&b, "المجموع الفرعي: %s\n", amount(snap.Summary.Subtotal.String()))
	fmt.Fprintf(&b, "الشحن: %s\n", shipping)
	fmt.Fprintf(&b, "الإجمالي النهائي: %s\n\n", amount(snap.Summary.Total.String()))
	fmt.Fprintf(&b, "طريقة الدفع: %s", paymentOnArrival)

	return relay.Message{
		Name:    customer.Name,
		Contact: customer.Phone,
		Body:    b.String(),
	}
}

func formatLine(li domain.LineItem) string {
	return fmt.Sprintf("%s\nالمقاس: %s | اللون: %s\nالكمية: %d | السعر: %s\n",
		li.Name, li.Size, li.Color, li.Quantity, amount(li.LineTotal().String()))
}

func amount(v string) string {
	return v + " " + currency
}
