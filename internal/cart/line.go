package cart

import (
	"encoding/json"
	"fmt"
)

// CartLine is one product entry in the quote cart, keyed by OEM SKU.
type CartLine struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
	AddedAt     string `json:"addedAt"`
}

// ProductInput is the descriptor supplied when adding a product to the cart.
type ProductInput struct {
	SKU         string
	Name        string
	ImageID     string
	Description string
}

// storedLine tolerates legacy payloads written before quantity existed.
type storedLine struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description,omitempty"`
	Quantity    *int   `json:"quantity,omitempty"`
	AddedAt     string `json:"addedAt"`
}

// EncodeLines serializes the line list for durable storage.
func EncodeLines(lines []CartLine) ([]byte, error) {
	data, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("encoding cart lines: %w", err)
	}
	return data, nil
}

// DecodeLines rehydrates a stored line list, normalizing old shapes into the
// current CartLine form: a line missing quantity defaults to 1, and lines that
// would violate the quantity floor are dropped. Duplicate SKUs keep the first
// occurrence.
func DecodeLines(data []byte) ([]CartLine, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var stored []storedLine
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decoding cart lines: %w", err)
	}

	lines := make([]CartLine, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, s := range stored {
		if s.SKU == "" {
			continue
		}
		if _, dup := seen[s.SKU]; dup {
			continue
		}
		quantity := 1
		if s.Quantity != nil {
			quantity = *s.Quantity
		}
		if quantity <= 0 {
			continue
		}
		seen[s.SKU] = struct{}{}
		lines = append(lines, CartLine{
			SKU:         s.SKU,
			Name:        s.Name,
			ImageURL:    s.ImageURL,
			Description: s.Description,
			Quantity:    quantity,
			AddedAt:     s.AddedAt,
		})
	}
	return lines, nil
}
