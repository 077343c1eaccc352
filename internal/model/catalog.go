package model

// Category is a service or product category shown on the home screen.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon,omitempty" yaml:"icon"`
}

// Fixer is a service provider listed in the catalog.
type Fixer struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Category   string   `json:"category" yaml:"category"`
	Services   []string `json:"services,omitempty" yaml:"services"`
	Rating     float64  `json:"rating" yaml:"rating"`
	Reviews    int      `json:"reviews" yaml:"reviews"`
	HourlyRate float64  `json:"hourlyRate" yaml:"hourly_rate"`
	Location   string   `json:"location" yaml:"location"`
	Avatar     string   `json:"avatar,omitempty" yaml:"avatar"`
	Verified   bool     `json:"verified" yaml:"verified"`
	Available  bool     `json:"available" yaml:"available"`
}

// Product is a goods marketplace listing.
type Product struct {
	ID        string  `json:"id" yaml:"id"`
	Title     string  `json:"title" yaml:"title"`
	Category  string  `json:"category" yaml:"category"`
	Price     float64 `json:"price" yaml:"price"`
	Condition string  `json:"condition,omitempty" yaml:"condition"`
	Seller    string  `json:"seller" yaml:"seller"`
	Image     string  `json:"image,omitempty" yaml:"image"`
	Location  string  `json:"location,omitempty" yaml:"location"`
}
