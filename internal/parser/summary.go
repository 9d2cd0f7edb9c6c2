package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
)

// ErrUnknownSchema is returned when a document is neither Swagger 2 nor OpenAPI 3.
var ErrUnknownSchema = errors.New("document declares neither openapi nor swagger")

var methodOrder = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

// Summarize loads doc through kin-openapi and flattens it into the export
// model. Swagger 2 documents are upgraded to OpenAPI 3 first. External
// references are never followed.
func Summarize(doc *domain.ParsedDocument) (*domain.OpenAPIDocument, error) {
	data, err := json.Marshal(doc.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	var spec *openapi3.T

	switch doc.Version {
	case domain.VersionOpenAPI3:
		loader := openapi3.NewLoader()
		loader.IsExternalRefsAllowed = false

		spec, err = loader.LoadFromData(data)
		if err != nil {
			return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
		}
	case domain.VersionSwagger2:
		var v2 openapi2.T
		if err := json.Unmarshal(data, &v2); err != nil {
			return nil, fmt.Errorf("failed to load Swagger document: %w", err)
		}

		spec, err = openapi2conv.ToV3(&v2)
		if err != nil {
			return nil, fmt.Errorf("failed to upgrade Swagger document: %w", err)
		}
	default:
		return nil, ErrUnknownSchema
	}

	summary := convertSpec(spec)
	summary.SchemaVersion = doc.Version.String()

	return summary, nil
}

func convertSpec(spec *openapi3.T) *domain.OpenAPIDocument {
	doc := &domain.OpenAPIDocument{}

	if spec.Info != nil {
		doc.Title = spec.Info.Title
		doc.Version = spec.Info.Version
		doc.Description = spec.Info.Description
	}

	for _, server := range spec.Servers {
		if server == nil {
			continue
		}
		doc.Servers = append(doc.Servers, domain.Server{
			URL:         server.URL,
			Description: server.Description,
		})
	}

	for _, tag := range spec.Tags {
		if tag != nil {
			doc.Tags = append(doc.Tags, domain.Tag{
				Name:        tag.Name,
				Description: tag.Description,
			})
		}
	}

	if spec.Paths != nil {
		paths := spec.Paths.Map()
		keys := make([]string, 0, len(paths))
		for k := range paths {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			doc.Paths = append(doc.Paths, domain.Path{
				Path:       k,
				Operations: convertOperations(paths[k]),
			})
		}
	}

	if spec.Components != nil {
		for name := range spec.Components.Schemas {
			doc.Schemas = append(doc.Schemas, name)
		}
		sort.Strings(doc.Schemas)
	}

	return doc
}

func convertOperations(item *openapi3.PathItem) []domain.Operation {
	if item == nil {
		return nil
	}

	var operations []domain.Operation

	for _, method := range methodOrder {
		op := item.GetOperation(method)
		if op == nil {
			continue
		}

		operation := domain.Operation{
			Method:      method,
			Summary:     op.Summary,
			Description: op.Description,
			OperationID: op.OperationID,
			Tags:        op.Tags,
			HasBody:     op.RequestBody != nil,
		}

		for _, param := range op.Parameters {
			if param == nil || param.Value == nil {
				continue
			}

			operation.Parameters = append(operation.Parameters, domain.Parameter{
				Name:        param.Value.Name,
				In:          param.Value.In,
				Description: param.Value.Description,
				Required:    param.Value.Required,
			})
		}

		if op.Responses != nil {
			responses := op.Responses.Map()
			codes := make([]string, 0, len(responses))
			for code := range responses {
				codes = append(codes, code)
			}
			sort.Strings(codes)

			for _, code := range codes {
				resp := domain.Response{StatusCode: code}
				if ref := responses[code]; ref != nil && ref.Value != nil && ref.Value.Description != nil {
					resp.Description = *ref.Value.Description
				}
				operation.Responses = append(operation.Responses, resp)
			}
		}

		operations = append(operations, operation)
	}

	return operations
}
