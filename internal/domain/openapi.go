package domain

// OpenAPIDocument is a flattened summary of a parsed API description,
// used by exports and the session summary endpoint.
type OpenAPIDocument struct {
	Title         string   `json:"title"`
	Version       string   `json:"version"`
	Description   string   `json:"description,omitempty"`
	SchemaVersion string   `json:"schemaVersion"`
	Servers       []Server `json:"servers,omitempty"`
	Tags          []Tag    `json:"tags,omitempty"`
	Paths         []Path   `json:"paths,omitempty"`
	Schemas       []string `json:"schemas,omitempty"`
}

// Server represents an API server.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Tag represents an OpenAPI tag.
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Path represents an API endpoint path.
type Path struct {
	Path       string      `json:"path"`
	Operations []Operation `json:"operations"`
}

// Operation represents an HTTP operation on a path.
type Operation struct {
	Method      string      `json:"method"`
	Summary     string      `json:"summary,omitempty"`
	Description string      `json:"description,omitempty"`
	OperationID string      `json:"operationId,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty"`
	HasBody     bool        `json:"hasBody,omitempty"`
	Responses   []Response  `json:"responses,omitempty"`
}

// Parameter represents a request parameter.
type Parameter struct {
	Name        string `json:"name"`
	In          string `json:"in"` // query, path, header, cookie
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// Response represents an API response.
type Response struct {
	StatusCode  string `json:"statusCode"`
	Description string `json:"description,omitempty"`
}

// OperationCount returns the number of operations across all paths.
func (d *OpenAPIDocument) OperationCount() int {
	n := 0
	for _, p := range d.Paths {
		n += len(p.Operations)
	}
	return n
}
