package cart

import (
	"github.com/adaezeumeh/thriftline-backend/internal/catalog"
	"github.com/adaezeumeh/thriftline-backend/internal/storage"
)

// LineDTO is one cart row joined with its product snapshot.
type LineDTO struct {
	ID        int64              `json:"id"`
	ProductID int64              `json:"productId"`
	Quantity  int                `json:"quantity"`
	Product   catalog.ProductDTO `json:"product"`
}

// CartDTO is the full cart view returned to clients.
type CartDTO struct {
	Items []LineDTO `json:"items"`
	Total float64   `json:"total"`
}

func toLineDTO(line storage.CartLine) LineDTO {
	return LineDTO{
		ID:        line.Item.ID,
		ProductID: line.Item.ProductID,
		Quantity:  line.Item.Quantity,
		Product:   catalog.ToProductDTO(line.Product),
	}
}
