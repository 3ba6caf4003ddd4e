package recommend

// CatalogItem is the capability surface the generic engine needs from a
// catalog entry: identity, categorical tags, a text blob for the vector
// space, and a static quality rating on a 0-5 scale.
type CatalogItem interface {
	ItemID() string
	ItemTitle() string
	ItemTags() []string
	ItemText() string
	Quality() float64
}
