// Package cart implements the in-memory sale cart builder: the stepwise
// category → subcategory → product → extras workflow an operator walks
// through to assemble a multi-item sale before submitting it.
//
// The package is pure domain logic. It holds a read-only catalog snapshot
// for the life of one cart and never touches HTTP or storage; guard
// failures are reported as apperr values so the transport layer maps them
// uniformly.
package cart

import "github.com/google/uuid"

// Category is a catalog category with its ordered subcategory names.
type Category struct {
	ID            uuid.UUID
	Name          string
	SubCategories []string
}

// HasSubCategory reports whether name is one of the category's subcategories.
func (c Category) HasSubCategory(name string) bool {
	for _, sub := range c.SubCategories {
		if sub == name {
			return true
		}
	}
	return false
}

// Product is a sellable catalog item placed under a category/subcategory.
type Product struct {
	ID          uuid.UUID
	Name        string
	PriceCents  int64
	CategoryID  uuid.UUID
	SubCategory string
}

// Extra is an add-on with its own price. Only extras that were active when
// the snapshot was taken belong in a Catalog.
type Extra struct {
	ID         uuid.UUID
	Name       string
	PriceCents int64
}

// Catalog is the read-only snapshot of catalog data a builder works
// against. It is captured once when the cart is opened; later catalog
// changes do not affect it (committed lines keep their snapshotted
// prices either way).
type Catalog struct {
	Categories []Category
	Products   []Product
	Extras     []Extra
}

// CategoryByID returns the category with the given id, if present.
func (c Catalog) CategoryByID(id uuid.UUID) (Category, bool) {
	for _, category := range c.Categories {
		if category.ID == id {
			return category, true
		}
	}
	return Category{}, false
}

// ExtraByID returns the extra with the given id, if present.
func (c Catalog) ExtraByID(id uuid.UUID) (Extra, bool) {
	for _, extra := range c.Extras {
		if extra.ID == id {
			return extra, true
		}
	}
	return Extra{}, false
}

// ProductsFor returns the products placed under the given category and
// subcategory, in catalog order.
func (c Catalog) ProductsFor(categoryID uuid.UUID, subCategory string) []Product {
	var matched []Product
	for _, product := range c.Products {
		if product.CategoryID == categoryID && product.SubCategory == subCategory {
			matched = append(matched, product)
		}
	}
	return matched
}
