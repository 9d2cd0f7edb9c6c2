// Package domain provides the core models shared by the import pipeline,
// the view coordinator and the recall list.
package domain

// SourceKind identifies where an import came from.
type SourceKind string

// Source kinds. The string values are persisted in the recall list.
const (
	SourceURL       SourceKind = "url"
	SourcePaste     SourceKind = "paste"
	SourceSelection SourceKind = "selection"
)

// Valid reports whether k is one of the known source kinds.
func (k SourceKind) Valid() bool {
	switch k {
	case SourceURL, SourcePaste, SourceSelection:
		return true
	default:
		return false
	}
}

// DefaultTitle returns the title used when a document declares none.
func (k SourceKind) DefaultTitle() string {
	switch k {
	case SourcePaste:
		return "Pasted Spec"
	case SourceSelection:
		return "Selected Spec"
	default:
		return "Preview"
	}
}

// ImportRequest is a single user action asking for a document to be shown.
type ImportRequest struct {
	Kind  SourceKind
	Value string
	// Label is set when replaying a recall entry; it wins over the derived title.
	Label string
}

// SchemaVersion is the API description flavour detected on a parsed document.
type SchemaVersion int

const (
	VersionUnknown SchemaVersion = iota
	VersionSwagger2
	VersionOpenAPI3
)

func (v SchemaVersion) String() string {
	switch v {
	case VersionSwagger2:
		return "swagger2"
	case VersionOpenAPI3:
		return "openapi3"
	default:
		return "unknown"
	}
}

// ParsedDocument is the canonical decoded form of an API description.
type ParsedDocument struct {
	Root    map[string]any
	Version SchemaVersion
}

// DetectVersion inspects the discriminator keys of a decoded document.
func DetectVersion(root map[string]any) SchemaVersion {
	if _, ok := root["openapi"]; ok {
		return VersionOpenAPI3
	}
	if _, ok := root["swagger"]; ok {
		return VersionSwagger2
	}
	return VersionUnknown
}

// Title returns info.title when it is a non-empty string.
func (d *ParsedDocument) Title() string {
	if d == nil {
		return ""
	}
	info, ok := d.Root["info"].(map[string]any)
	if !ok {
		return ""
	}
	title, _ := info["title"].(string)
	return title
}
