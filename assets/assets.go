package assets

import "embed"

// CatalogFS embeds the static food catalog the draw engine samples from.
//
//go:embed catalog/foods.json
var CatalogFS embed.FS

// CatalogPath is the path of the default catalog inside CatalogFS.
const CatalogPath = "catalog/foods.json"
