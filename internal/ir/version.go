package ir

// Version constants for the resolved IR and the tool.
const (
	// IRVersion is the resolved IR schema version. Bumping it invalidates fingerprints.
	IRVersion = "1"

	// ToolVersion is the brilir version.
	ToolVersion = "0.1.0"
)
