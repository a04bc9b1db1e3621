package domain

// FilterAll matches every value of a listing filter field.
const FilterAll = "all"

// Filter narrows the product listing page. An empty field or FilterAll
// matches everything; both fields must match.
type Filter struct {
	Category string
	Type     string
}

// Wildcard reports whether v matches every value.
func Wildcard(v string) bool {
	return v == "" || v == FilterAll
}
