package trove

import (
	"strings"

	"github.com/google/uuid"
)

// Suffixer produces an alternate name for a command whose (namespace, name)
// collides with a stored one. It must return a name different from its input.
type Suffixer func(name string) string

// suffixLength is the number of random characters appended to a colliding name.
const suffixLength = 5

// RandomSuffix appends a dash and five random hexadecimal characters.
func RandomSuffix(name string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return name + "-" + id[:suffixLength]
}
