package pipeline

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"matchmill/internal/game"
)

const keyTimeLayout = "2006-01-02-15-04"

// KeyGenerator returns a key function producing "<PREFIX>/<UTC start>-<slug>"
// where slug is six random hex characters.
func KeyGenerator(prefix string) func(start float64) string {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	return func(start float64) string {
		slug := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
		stamp := game.TimeFromSeconds(start).Format(keyTimeLayout)
		if prefix == "" {
			return fmt.Sprintf("%s-%s", stamp, slug)
		}
		return fmt.Sprintf("%s/%s-%s", prefix, stamp, slug)
	}
}
