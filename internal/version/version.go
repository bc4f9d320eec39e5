package version

import (
	"fmt"

	"github.com/FrenchBear/myglob/pkg/myglob"
)

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/FrenchBear/myglob/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/FrenchBear/myglob/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/FrenchBear/myglob/internal/version.Date={{.Date}}
)

// String renders the binary version along with the library version it embeds
func String() string {
	return fmt.Sprintf("myglob version %s\n  commit:  %s\n  built:   %s\n  library: %s\n",
		Version, Commit, Date, myglob.Version())
}
