package content

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID builds "<prefix>-<unix-ms>-<random>". The store additionally retries
// on the (unlikely) clash with an id already in the collection.
func NewID(prefix string, nowMillis int64) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%d-%s", prefix, nowMillis, suffix)
}
