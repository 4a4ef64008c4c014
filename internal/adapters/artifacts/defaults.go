package artifacts

import "github.com/corey/intentd/internal/ports"

// Defaults returns the built-in vocabulary used when neither the
// cache nor the artifact files are available. A small confectionery
// dataset, enough to keep recognition useful.
func Defaults() ports.ArtifactSet {
	return ports.ArtifactSet{
		Gazetteer: ports.Gazetteer{
			Entities: ports.GazetteerEntities{
				Manufacturers: []string{"Cadbury", "Mars", "Nestle", "Ferrero", "Thorntons"},
				Brands:        []string{"Dairy Milk", "Galaxy", "KitKat", "Snickers", "Roses"},
				Categories:    []string{"Chocolate", "Confectionery", "Biscuits"},
				Products:      []string{"Chocolate Bars", "Boxed Chocolates", "Seasonal"},
			},
			Metrics: []string{
				"revenue", "sales", "market share", "growth", "volume",
				"price", "promotion", "elasticity", "margin", "profit",
			},
			Timewords: []string{
				"Q1", "Q2", "Q3", "Q4", "quarter", "month", "year",
				"YTD", "MTD", "QTD", "last", "previous", "current",
			},
			SpecialTokens: []string{"vs", "versus", "compare", "analyze", "show"},
		},
		Aliases: []ports.Alias{
			{Type: ports.TypeManufacturer, Name: "Cadbury", Alias: "cadburys", Confidence: 0.9},
			{Type: ports.TypeManufacturer, Name: "Cadbury", Alias: "cadbury's", Confidence: 0.9},
			{Type: ports.TypeBrand, Name: "Dairy Milk", Alias: "dairy milk chocolate", Confidence: 0.9},
			{Type: ports.TypeMetric, Name: "market share", Alias: "share", Confidence: 0.9},
			{Type: ports.TypeMetric, Name: "revenue", Alias: "sales", Confidence: 0.9},
		},
	}
}
