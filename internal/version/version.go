// Package version reports the build of pgq. The variables are set at link time:
//
//	go build -ldflags "-X github.com/vibesql/pgq/internal/version.Version=1.2.0"
package version

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	Version   = "0.1.0"
	GitCommit = "dev"
	BuildDate = "unknown"
)

// Info is a snapshot of the link-time variables plus the Go runtime.
type Info struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
	Platform  string
}

func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Short is the bare version, used as the cobra Version.
func (i Info) Short() string {
	return i.Version
}

// String is the one-line form written to the debug log.
func (i Info) String() string {
	return fmt.Sprintf("pgq %s (%s, %s, %s %s)", i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}

// Full is what pgq --version prints.
func (i Info) Full() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pgq %s\n", i.Version)
	fmt.Fprintf(&b, "  commit:   %s\n", i.GitCommit)
	fmt.Fprintf(&b, "  built:    %s\n", i.BuildDate)
	fmt.Fprintf(&b, "  go:       %s\n", i.GoVersion)
	fmt.Fprintf(&b, "  platform: %s\n", i.Platform)
	return b.String()
}
