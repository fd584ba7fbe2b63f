package cart

import (
	"regexp"
	"strings"
)

var skuFilenameRe = regexp.MustCompile(`[^a-z0-9-]+`)

// ImageResolver picks the image URL captured on a cart line at add-time.
type ImageResolver struct {
	BaseURL      string
	FallbackPath string
}

// Resolve prefers an explicit image identifier, then a filename derived from
// the SKU, then the fixed fallback path.
func (r ImageResolver) Resolve(product ProductInput) string {
	if product.ImageID != "" {
		return r.join(product.ImageID)
	}
	if filename := skuFilename(product.SKU); filename != "" {
		return r.join(filename)
	}
	return r.FallbackPath
}

func (r ImageResolver) join(name string) string {
	base := strings.TrimSuffix(r.BaseURL, "/")
	if base == "" {
		return name
	}
	return base + "/" + name
}

func skuFilename(sku string) string {
	slug := strings.ToLower(strings.TrimSpace(sku))
	slug = skuFilenameRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return ""
	}
	return slug + ".webp"
}
