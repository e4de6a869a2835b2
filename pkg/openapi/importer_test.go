package openapi_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/descriptor"
	"github.com/goliatone/go-dynform/pkg/openapi"
)

const petstore = `openapi: 3.0.3
info:
  title: Pets
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: ok
    post:
      operationId: createPet
      summary: Create a pet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name, species]
              properties:
                name:
                  type: string
                  title: Pet name
                  minLength: 2
                  maxLength: 40
                  x-dynform-order: 1
                species:
                  type: string
                  enum: [cat, dog]
                  default: dog
                  x-dynform-order: 2
                age:
                  type: integer
                  minimum: 0
                  maximum: 30
                ownerEmail:
                  type: string
                  format: email
                  description: Who to contact.
                tags:
                  type: array
                  items:
                    type: string
                    enum: [indoor, outdoor]
                vaccinated:
                  type: boolean
                address:
                  type: object
                  properties:
                    street:
                      type: string
      responses:
        "201":
          description: created
  /pets/{id}:
    put:
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                name:
                  type: string
      responses:
        "200":
          description: ok
`

func TestImporter_Descriptors(t *testing.T) {
	doc, err := openapi.NewImporter().Descriptors(context.Background(), []byte(petstore), "createPet")
	if err != nil {
		t.Fatalf("descriptors: %v", err)
	}

	want := descriptor.Document{
		Name: "createPet",
		Fields: []descriptor.Descriptor{
			descriptor.Field{Label: "Pet name", Type: "text", IsRequired: descriptor.Bool(true), MinLength: descriptor.Int(2), MaxLength: descriptor.Int(40)},
			descriptor.Field{Label: "Species", Type: "select", IsRequired: descriptor.Bool(true), Options: []descriptor.Choice{{Text: "cat"}, {Text: "dog", Selected: true}}},
			descriptor.Field{Label: "Age", Type: "number", IsRequired: descriptor.Bool(false), Min: descriptor.Float(0), Max: descriptor.Float(30)},
			descriptor.Field{Label: "Owner Email", Type: "email", IsRequired: descriptor.Bool(false), Help: "Who to contact."},
			descriptor.Field{Label: "Tags", Type: "checkbox", IsRequired: descriptor.Bool(false), Items: []descriptor.Choice{{Text: "indoor"}, {Text: "outdoor"}}},
			descriptor.Field{Label: "Vaccinated", Type: "checkbox", IsRequired: descriptor.Bool(false), Items: []descriptor.Choice{{Text: "Vaccinated", Value: "true"}}},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestImporter_Operations(t *testing.T) {
	ops, err := openapi.NewImporter().Operations(context.Background(), []byte(petstore))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	want := []openapi.Operation{
		{ID: "createPet", Method: "POST", Path: "/pets", Summary: "Create a pet"},
		{ID: "put:/pets/{id}", Method: "PUT", Path: "/pets/{id}"},
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestImporter_CustomLabeler(t *testing.T) {
	importer := openapi.NewImporter(openapi.WithLabeler(strings.ToUpper))
	doc, err := importer.Descriptors(context.Background(), []byte(petstore), "put:/pets/{id}")
	if err != nil {
		t.Fatalf("descriptors: %v", err)
	}
	if got := doc.Fields[0].(descriptor.Field).Label; got != "NAME" {
		t.Fatalf("expected labeler output, got %q", got)
	}
}

func TestImporter_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := openapi.Descriptors(ctx, nil, "createPet"); !errors.Is(err, openapi.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := openapi.Descriptors(ctx, []byte(petstore), "missing"); !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := openapi.Descriptors(ctx, []byte(petstore), "listPets"); !errors.Is(err, openapi.ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
	if _, err := openapi.Descriptors(ctx, []byte("openapi: [unterminated"), "createPet"); err == nil {
		t.Fatalf("expected load error")
	}
}
