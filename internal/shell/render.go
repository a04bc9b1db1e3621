package shell

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/domain"
)

const (
	labelCurrency  = "ريال"
	labelFree      = "مجاني"
	labelInStock   = "متوفر"
	labelSoldOut   = "نفذت الكمية"
	labelCartEmpty = "السلة فارغة"
	labelNoResults = "لا توجد منتجات"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func price(v fmt.Stringer) string {
	return v.String() + " " + labelCurrency
}

// RenderProducts writes one row per product. wished marks wishlisted rows and
// may be nil.
func RenderProducts(w io.Writer, products []domain.Product, wished func(id int) bool) {
	if len(products) == 0 {
		fmt.Fprintln(w, labelNoResults)
		return
	}

	tw := newTabWriter(w)
	for i := range products {
		p := &products[i]
		stock := labelInStock
		if !p.InStock {
			stock = labelSoldOut
		}
		mark := ""
		if wished != nil && wished(p.ID) {
			mark = "♥"
		}
		fmt.Fprintf(tw, "#%d\t%s\t%s\t%s\t%s/%s\t★%.1f (%d)\t%s\t%s\n",
			p.ID, p.Name, p.Brand, price(p.Price), p.Category, p.Type, p.Rating, p.Reviews, stock, mark)
	}
	_ = tw.Flush()
}

// RenderDetail writes the product page of d.
func RenderDetail(w io.Writer, d *domain.ProductDetail) {
	fmt.Fprintf(w, "#%d %s\n", d.ID, d.Name)
	fmt.Fprintf(w, "%s\n", d.Description)
	fmt.Fprintf(w, "السعر: %s\n", price(d.Price))

	sizes := make([]string, len(d.Sizes))
	for i, s := range d.Sizes {
		sizes[i] = string(s)
	}
	fmt.Fprintf(w, "المقاسات: %s\n", strings.Join(sizes, ", "))
	fmt.Fprintf(w, "الألوان: %s\n", strings.Join(d.Colors, ", "))

	stock := labelInStock
	if !d.InStock {
		stock = labelSoldOut
	}
	fmt.Fprintf(w, "التوفر: %s\n", stock)
	fmt.Fprintf(w, "التقييم: ★%.1f (%d)\n", d.Rating, d.Reviews)

	stars := make([]int, 0, len(d.RatingBreakdown))
	for s := range d.RatingBreakdown {
		stars = append(stars, s)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(stars)))
	for _, s := range stars {
		fmt.Fprintf(w, "  %d★ %d\n", s, d.RatingBreakdown[s])
	}
	for _, img := range d.Images {
		fmt.Fprintf(w, "  %s\n", img)
	}
}

// RenderCart writes the line items and the price breakdown of snap.
func RenderCart(w io.Writer, snap domain.CartSnapshot) {
	if snap.Empty() {
		fmt.Fprintln(w, labelCartEmpty)
		return
	}

	tw := newTabWriter(w)
	for _, li := range snap.Items {
		fmt.Fprintf(tw, "#%d\t%s\tالمقاس: %s\tاللون: %s\tx%d\t%s\n",
			li.ID, li.Name, li.Size, li.Color, li.Quantity, price(li.LineTotal()))
	}
	_ = tw.Flush()

	shipping := labelFree
	if !snap.Summary.FreeShipping() {
		shipping = price(snap.Summary.Shipping)
	}
	fmt.Fprintf(w, "عدد المنتجات: %d\n", snap.Count)
	fmt.Fprintf(w, "المجموع الفرعي: %s\n", price(snap.Summary.Subtotal))
	fmt.Fprintf(w, "الشحن: %s\n", shipping)
	fmt.Fprintf(w, "الإجمالي: %s\n", price(snap.Summary.Total))
}
