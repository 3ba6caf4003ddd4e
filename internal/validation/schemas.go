// Package validation guards the catalog and feedback ingestion surfaces
// with JSON-schema checks. The engine itself accepts whatever it is given;
// data integrity is the loader's responsibility, so this is where malformed
// payloads are stopped.
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationResult carries the outcome of a schema check.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// SchemaValidator validates ingestion payloads against embedded schemas.
type SchemaValidator struct {
	schemas map[string]*gojsonschema.Schema
}

const movieSchema = `{
	"type": "object",
	"required": ["id", "title", "genres"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"title": {"type": "string", "minLength": 1},
		"genres": {"type": "array", "items": {"type": "string"}, "minItems": 1},
		"cast": {"type": "array", "items": {"type": "string"}},
		"director": {"type": "string"},
		"language": {"type": "string"},
		"overview": {"type": "string"},
		"rating": {"type": "number", "minimum": 0, "maximum": 10},
		"poster_path": {"type": "string"}
	}
}`

const songSchema = `{
	"type": "object",
	"required": ["id", "title", "artist", "genres"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"title": {"type": "string", "minLength": 1},
		"artist": {"type": "string", "minLength": 1},
		"album": {"type": "string"},
		"genres": {"type": "array", "items": {"type": "string"}, "minItems": 1},
		"mood": {"type": "string"},
		"energy": {"type": "number", "minimum": 0, "maximum": 100},
		"description": {"type": "string"},
		"rating": {"type": "number", "minimum": 0, "maximum": 5}
	}
}`

const podcastSchema = `{
	"type": "object",
	"required": ["id", "title", "categories"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"title": {"type": "string", "minLength": 1},
		"host": {"type": "string"},
		"categories": {"type": "array", "items": {"type": "string"}, "minItems": 1},
		"language": {"type": "string"},
		"description": {"type": "string"},
		"rating": {"type": "number", "minimum": 0, "maximum": 5}
	}
}`

const feedbackSchema = `{
	"type": "object",
	"required": ["user_id", "item_id", "domain", "feedback_type"],
	"properties": {
		"user_id": {"type": "string", "minLength": 1},
		"item_id": {"type": "string", "minLength": 1},
		"domain": {"type": "string", "enum": ["movie", "music", "podcast"]},
		"feedback_type": {"type": "string", "enum": ["like", "dislike", "rating"]},
		"rating": {"type": "number", "minimum": 0, "maximum": 5}
	}
}`

// NewSchemaValidator compiles the embedded ingestion schemas.
func NewSchemaValidator() (*SchemaValidator, error) {
	sources := map[string]string{
		"movie":    movieSchema,
		"song":     songSchema,
		"podcast":  podcastSchema,
		"feedback": feedbackSchema,
	}

	sv := &SchemaValidator{schemas: make(map[string]*gojsonschema.Schema, len(sources))}
	for name, source := range sources {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s schema: %w", name, err)
		}
		sv.schemas[name] = schema
	}
	return sv, nil
}

func (sv *SchemaValidator) ValidateMovie(data interface{}) *ValidationResult {
	return sv.validate("movie", data)
}

func (sv *SchemaValidator) ValidateSong(data interface{}) *ValidationResult {
	return sv.validate("song", data)
}

func (sv *SchemaValidator) ValidatePodcast(data interface{}) *ValidationResult {
	return sv.validate("podcast", data)
}

func (sv *SchemaValidator) ValidateFeedback(data interface{}) *ValidationResult {
	return sv.validate("feedback", data)
}

func (sv *SchemaValidator) validate(name string, data interface{}) *ValidationResult {
	schema, ok := sv.schemas[name]
	if !ok {
		return &ValidationResult{Valid: false, Errors: []string{fmt.Sprintf("unknown schema %q", name)}}
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return &ValidationResult{Valid: false, Errors: []string{err.Error()}}
	}
	if result.Valid() {
		return &ValidationResult{Valid: true}
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}
	return &ValidationResult{Valid: false, Errors: errs}
}
