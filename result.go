package catalystdetect

// Status is the outcome of classifying a bundle.
type Status string

const (
	StatusCatalyst     Status = "Catalyst"
	StatusNotCatalyst  Status = "NotCatalyst"
	StatusUnresolvable Status = "Unresolvable"
)

// Message returns the human-presentable form of s.
func (s Status) Message() string {
	switch s {
	case StatusCatalyst:
		return "✅ This app is a Mac Catalyst app."
	case StatusNotCatalyst:
		return "❌ This app is NOT a Mac Catalyst app."
	default:
		return "Failed to find executable."
	}
}

// Result is the classification of a single bundle.
type Result struct {
	Status  Status `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
	// Reason is set only when Status is StatusUnresolvable.
	Reason      string `json:"reason,omitempty" yaml:"reason,omitempty"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	// IconPath is empty when the manifest names no icon.
	IconPath         string   `json:"iconPath,omitempty" yaml:"iconPath,omitempty"`
	ExecutablePath   string   `json:"executablePath,omitempty" yaml:"executablePath,omitempty"`
	ExecutableDigest string   `json:"executableDigest,omitempty" yaml:"executableDigest,omitempty"`
	LinkedLibraries  []string `json:"linkedLibraries,omitempty" yaml:"linkedLibraries,omitempty"`
	// Diagnostic holds why linkage inspection produced nothing, if it failed.
	// It never changes Status.
	Diagnostic string `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
}
