// Package openapi derives form descriptors from the JSON request body of an
// OpenAPI 3 operation. Documents are loaded with kin-openapi; callers only
// see descriptor types.
package openapi
