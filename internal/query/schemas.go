package query

import (
	"strings"

	"local-market-backend/internal/model"
)

var BookingSchema = Schema[model.Booking]{
	Text: []func(model.Booking) string{
		func(b model.Booking) string { return b.Service },
		func(b model.Booking) string { return b.FixerName },
		func(b model.Booking) string { return b.Address },
	},
	Fields: map[string]func(model.Booking) string{
		"status":   func(b model.Booking) string { return string(b.Status) },
		"fixer_id": func(b model.Booking) string { return b.FixerID },
	},
	Sorts: map[string]func(a, b model.Booking) int{
		"date":       By(func(b model.Booking) string { return b.Date + " " + b.Time }),
		"price":      By(func(b model.Booking) float64 { return b.Price }),
		"created_at": By(func(b model.Booking) int64 { return b.CreatedAt.UnixNano() }),
	},
}

var BarterSchema = Schema[model.Barter]{
	Text: []func(model.Barter) string{
		func(b model.Barter) string { return b.Title },
		func(b model.Barter) string { return b.Description },
		func(b model.Barter) string { return b.LookingFor },
	},
	Fields: map[string]func(model.Barter) string{
		"category": func(b model.Barter) string { return b.Category },
		"owner":    func(b model.Barter) string { return b.User.Name },
	},
	Sorts: map[string]func(a, b model.Barter) int{
		"title":      By(func(b model.Barter) string { return strings.ToLower(b.Title) }),
		"created_at": By(func(b model.Barter) int64 { return b.CreatedAt.UnixNano() }),
	},
}

var FixerSchema = Schema[model.Fixer]{
	Text: []func(model.Fixer) string{
		func(f model.Fixer) string { return f.Name },
		func(f model.Fixer) string { return f.Category },
		func(f model.Fixer) string { return strings.Join(f.Services, " ") },
	},
	Fields: map[string]func(model.Fixer) string{
		"category": func(f model.Fixer) string { return f.Category },
		"location": func(f model.Fixer) string { return f.Location },
	},
	Sorts: map[string]func(a, b model.Fixer) int{
		"rating":  By(func(f model.Fixer) float64 { return f.Rating }),
		"price":   By(func(f model.Fixer) float64 { return f.HourlyRate }),
		"reviews": By(func(f model.Fixer) int { return f.Reviews }),
		"name":    By(func(f model.Fixer) string { return strings.ToLower(f.Name) }),
	},
}

var ProductSchema = Schema[model.Product]{
	Text: []func(model.Product) string{
		func(p model.Product) string { return p.Title },
		func(p model.Product) string { return p.Seller },
	},
	Fields: map[string]func(model.Product) string{
		"category":  func(p model.Product) string { return p.Category },
		"condition": func(p model.Product) string { return p.Condition },
	},
	Sorts: map[string]func(a, b model.Product) int{
		"price": By(func(p model.Product) float64 { return p.Price }),
		"title": By(func(p model.Product) string { return strings.ToLower(p.Title) }),
	},
}
