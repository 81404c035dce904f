package lots

import (
	"regexp"
	"strings"
)

var (
	lotPrefix   = regexp.MustCompile(`lote[\s_:-]*`)
	nonAlnumKey = regexp.MustCompile(`[^a-z0-9]`)
)

// Key canonicalizes a lot identifier so that ids from the webhook and ids on the
// site plan graphic can be matched: "Lote_12", " lote-12 " and "LOTE 12" all map
// to "lote12". Key is idempotent.
func Key(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = lotPrefix.ReplaceAllString(s, "lote")
	return nonAlnumKey.ReplaceAllString(s, "")
}
