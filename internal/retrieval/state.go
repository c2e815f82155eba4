package retrieval

// State is the position of one retrieval in its lifecycle. Retrieve returns
// the terminal state reached by the call.
type State int

const (
	NotInstalled State = iota
	Downloading
	Downloaded
	DownloadFailed
	Extracting
	Installed
	ExtractFailed
	// AlreadyInstalled means the installed check passed and nothing was fetched.
	AlreadyInstalled
)

var stateNames = map[State]string{
	NotInstalled:     "not-installed",
	Downloading:      "downloading",
	Downloaded:       "downloaded",
	DownloadFailed:   "download-failed",
	Extracting:       "extracting",
	Installed:        "installed",
	ExtractFailed:    "extract-failed",
	AlreadyInstalled: "already-installed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// OK reports whether the package is installed after reaching s.
func (s State) OK() bool {
	return s == Installed || s == AlreadyInstalled
}
