package furniq

import "strings"

// Category identifies the attribute a dictionary describes.
type Category int

// Categories recognized by the extraction pipeline.
const (
	CategoryProductType Category = iota + 1
	CategoryBrand
	CategoryProductName
	CategoryFeature
	CategoryStyle
	CategoryPlace
)

// Categories returns every known category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryProductType,
		CategoryBrand,
		CategoryProductName,
		CategoryFeature,
		CategoryStyle,
		CategoryPlace,
	}
}

var categoryNames = map[Category]string{
	CategoryProductType: "ProductType",
	CategoryBrand:       "Brand",
	CategoryProductName: "ProductName",
	CategoryFeature:     "Feature",
	CategoryStyle:       "Style",
	CategoryPlace:       "Place",
}

// String returns the category name, e.g. "ProductType".
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// ParseCategory converts a category name to a Category. Matching ignores case
// and accepts hyphen or underscore separators ("product-type").
func ParseCategory(s string) (Category, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	for c, name := range categoryNames {
		if strings.ToLower(name) == key {
			return c, nil
		}
	}
	return 0, Errorf(EINVALID, "unknown category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
