package cache

import (
	"fmt"
	"time"
)

// Catalog cache keys. Only catalog data is cached; evaluation results are
// recomputed on every request and never stored.
const (
	CatalogTTL = 5 * time.Minute
)

func CatalogKey(catalogID uint) string {
	return fmt.Sprintf("catalog:%d", catalogID)
}

func CatalogQuestionsKey(catalogID uint) string {
	return fmt.Sprintf("catalog:%d:questions", catalogID)
}

func CatalogPattern(catalogID uint) string {
	return fmt.Sprintf("catalog:%d*", catalogID)
}
