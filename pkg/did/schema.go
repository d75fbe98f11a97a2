// Copyright (C) 2026 AgentMesh Project
//
// This file is part of agentauth-go.
//
// agentauth-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// agentauth-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with agentauth-go.  If not, see <https://www.gnu.org/licenses/>.

package did

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchemaJSON constrains resolved DID documents before they reach
// the typed model. Authentication entries are restricted to string
// references per the authentication core's data model.
const documentSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "verificationMethod"],
  "properties": {
    "@context": {
      "oneOf": [
        {"type": "string"},
        {"type": "array", "items": {"type": "string"}}
      ]
    },
    "id": {"type": "string", "pattern": "^did:[a-z0-9]+:.+"},
    "controller": {"type": "string"},
    "verificationMethod": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "type"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "type": {"type": "string", "minLength": 1},
          "controller": {"type": "string"},
          "publicKeyMultibase": {"type": "string"},
          "publicKeyJwk": {
            "type": "object",
            "required": ["kty", "crv", "x"],
            "properties": {
              "kty": {"type": "string"},
              "crv": {"type": "string"},
              "x": {"type": "string"},
              "y": {"type": "string"}
            }
          }
        }
      }
    },
    "authentication": {
      "type": "array",
      "items": {"type": "string"}
    },
    "service": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "type", "serviceEndpoint"],
        "properties": {
          "id": {"type": "string"},
          "type": {"type": "string"},
          "serviceEndpoint": {"type": "string"}
        }
      }
    }
  }
}`

var (
	documentSchemaOnce sync.Once
	documentSchema     *gojsonschema.Schema
	documentSchemaErr  error
)

func compiledDocumentSchema() (*gojsonschema.Schema, error) {
	documentSchemaOnce.Do(func() {
		documentSchema, documentSchemaErr = gojsonschema.NewSchema(
			gojsonschema.NewStringLoader(documentSchemaJSON))
	})
	return documentSchema, documentSchemaErr
}

func validateDocumentJSON(raw []byte) error {
	schema, err := compiledDocumentSchema()
	if err != nil {
		return fmt.Errorf("%w: schema compilation: %v", ErrInvalidDocument, err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(details, "; "))
	}
	return nil
}
