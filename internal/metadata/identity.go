package metadata

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// NamespaceFragment is the UUID v5 namespace for fragment identities.
var NamespaceFragment = uuid.NewSHA1(uuid.NameSpaceURL, []byte("sqlbundle/fragment-identity/v1"))

// FragmentID returns a deterministic UUID v5 for a fragment path relative to
// the working directory. Paths are compared case-insensitively with
// forward slashes and without a leading "./".
//
//	"./procs/Add_Order.sql" and "procs/add_order.sql" share an ID.
func FragmentID(relPath string) uuid.UUID {
	return uuid.NewSHA1(NamespaceFragment, []byte(normalizePath(relPath)))
}

func normalizePath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.ToLower(p)
	return strings.TrimPrefix(p, "./")
}
