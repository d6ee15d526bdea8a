package buildinfo

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"
	"text/tabwriter"
)

const Unknown = "unknown"

// APIVersions lists the RSD API versions the object model implements.
var APIVersions = []string{"2.1", "2.2", "2.3"}

// set through -ldflags -X at release time
var (
	gitVersion  = Unknown
	gitRevision = Unknown
	date        = Unknown

	Info info
)

type info struct {
	Version     string   `json:"version"`
	Revision    string   `json:"revision"`
	Date        string   `json:"build_date"`
	Module      string   `json:"module"`
	GoVersion   string   `json:"go_version"`
	Platform    string   `json:"platform"`
	APIVersions []string `json:"rsd_api_versions"`
}

func init() {
	Info = info{
		Version:     gitVersion,
		Revision:    gitRevision,
		Date:        date,
		Module:      Unknown,
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		APIVersions: APIVersions,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	Info.Module = bi.Main.Path
	if Info.Version == Unknown && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		Info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && Info.Revision == Unknown {
			Info.Revision = s.Value
		}
	}
}

// Print writes the build information as an aligned table.
func Print(dest io.Writer) error {
	w := tabwriter.NewWriter(dest, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Version:\t%s\n", Info.Version)
	fmt.Fprintf(w, "Revision:\t%s\n", Info.Revision)
	fmt.Fprintf(w, "Build Date:\t%s\n", Info.Date)
	fmt.Fprintf(w, "Module:\t%s\n", Info.Module)
	fmt.Fprintf(w, "Go Version:\t%s\n", Info.GoVersion)
	fmt.Fprintf(w, "Platform:\t%s\n", Info.Platform)
	fmt.Fprintf(w, "RSD API Versions:\t%s\n", strings.Join(Info.APIVersions, ", "))
	return w.Flush()
}

// UserAgent is sent with every request to the management service.
func UserAgent() string {
	return fmt.Sprintf("rsdfish/%s (%s; %s)", Info.Version, Info.GoVersion, Info.Platform)
}

func JSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(Info)
}
