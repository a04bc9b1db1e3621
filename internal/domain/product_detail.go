package domain

// ProductDetail is an enriched product response for the product page. It fills
// presentation defaults the seed may leave out.
type ProductDetail struct {
	Product
	Description     string      `json:"description"`
	RatingBreakdown map[int]int `json:"ratingBreakdown"`
}

// ratingShares is the percentage of reviews attributed to each star rating.
var ratingShares = map[int]int{5: 50, 4: 30, 3: 10, 2: 7, 1: 3}

// NewProductDetail derives the product page view of p.
func NewProductDetail(p Product) ProductDetail {
	p = p.Clone()
	if len(p.Images) == 0 && p.Image != "" {
		p.Images = []string{p.Image}
	}

	breakdown := make(map[int]int, len(ratingShares))
	for stars, share := range ratingShares {
		breakdown[stars] = p.Reviews * share / 100
	}

	return ProductDetail{
		Product:         p,
		Description:     p.Name + " - " + p.Brand,
		RatingBreakdown: breakdown,
	}
}
