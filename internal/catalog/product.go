package catalog

// Product represents a wall-art print offered by the store. BasePrice is
// the USD price of the small canvas variant; every displayed price is
// derived from it through the pricing table.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	NameHe    string  `json:"nameHe,omitempty"`
	NameRu    string  `json:"nameRu,omitempty"`
	BasePrice float64 `json:"basePrice"`
	ImageURL  string  `json:"imageUrl,omitempty"`
}

// Seed returns the initial product list used until real catalog data is
// loaded.
func Seed() []Product {
	return []Product{
		{ID: "1", Name: "Abstract Sunset", NameHe: "שקיעה מופשטת", NameRu: "Абстрактный закат", BasePrice: 50, ImageURL: "/assets/image1.jpg"},
		{ID: "2", Name: "Mountain Serenity", NameHe: "שלווה הררית", NameRu: "Горное спокойствие", BasePrice: 50, ImageURL: "/assets/image2.jpg"},
		{ID: "3", Name: "Urban Dreams", NameHe: "חלומות עירוניים", NameRu: "Городские мечты", BasePrice: 50, ImageURL: "/assets/placeholder1.jpg"},
		{ID: "4", Name: "Ocean Waves", NameHe: "גלי אוקיינוס", NameRu: "Океанские волны", BasePrice: 50, ImageURL: "/assets/placeholder2.jpg"},
	}
}
