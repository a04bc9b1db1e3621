// Package seed decodes the static product catalog loaded at startup.
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/domain"
)

//go:embed products.json
var defaultSeed []byte

// ErrEmptySeed is returned when a seed holds no products.
var ErrEmptySeed = errors.New("seed contains no products")

type document struct {
	Products []domain.Product `json:"products"`
}

// Default returns the products of the embedded development seed.
func Default() ([]domain.Product, error) {
	return Parse(bytes.NewReader(defaultSeed))
}

// Load reads products from the seed file at path. An empty path loads the
// embedded seed.
func Load(path string) ([]domain.Product, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	products, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return products, nil
}

// Parse decodes a seed document. Both {"products": [...]} and a bare product
// array are accepted.
func Parse(r io.Reader) ([]domain.Product, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	data = bytes.TrimSpace(data)

	var products []domain.Product
	if len(data) > 0 && data[0] == '[' {
		err = json.Unmarshal(data, &products)
	} else {
		var doc document
		err = json.Unmarshal(data, &doc)
		products = doc.Products
	}
	if err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if len(products) == 0 {
		return nil, ErrEmptySeed
	}
	return products, nil
}
