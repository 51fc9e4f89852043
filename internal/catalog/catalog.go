package catalog

// Product is one entry of the fixed storefront catalog.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

var products = []Product{
	{
		ID:          1,
		Name:        "Producto Premium A",
		Description: "Descripción detallada del producto premium A",
		Price:       99.99,
		Image:       "https://via.placeholder.com/300x200?text=Producto+A",
	},
	{
		ID:          2,
		Name:        "Producto Estándar B",
		Description: "Descripción detallada del producto estándar B",
		Price:       59.99,
		Image:       "https://via.placeholder.com/300x200?text=Producto+B",
	},
	{
		ID:          3,
		Name:        "Producto Básico C",
		Description: "Descripción detallada del producto básico C",
		Price:       29.99,
		Image:       "https://via.placeholder.com/300x200?text=Producto+C",
	},
	{
		ID:          4,
		Name:        "Producto Deluxe D",
		Description: "Descripción detallada del producto deluxe D",
		Price:       149.99,
		Image:       "https://via.placeholder.com/300x200?text=Producto+D",
	},
	{
		ID:          5,
		Name:        "Producto Especial E",
		Description: "Descripción detallada del producto especial E",
		Price:       79.99,
		Image:       "https://via.placeholder.com/300x200?text=Producto+E",
	},
}

// Products returns the catalog. The slice is a copy; callers may not mutate
// the catalog through it.
func Products() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
