package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "Civic Issues API",
    "description": "Citizen issue intake with photo upload",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/issue": {
      "post": {
        "summary": "Report a civic issue",
        "consumes": ["multipart/form-data"],
        "produces": ["application/json"],
        "tags": ["issues"],
        "parameters": [
          {"name": "description", "in": "formData", "type": "string", "required": true},
          {"name": "location", "in": "formData", "type": "string", "required": true},
          {"name": "citizenId", "in": "formData", "type": "string", "required": true},
          {"name": "issueType", "in": "formData", "type": "string", "required": false},
          {"name": "image", "in": "formData", "type": "file", "required": true}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.IssueResponse"}},
          "400": {"description": "Missing required fields", "schema": {"$ref": "#/definitions/models.IssueResponse"}},
          "500": {"description": "Server error", "schema": {"$ref": "#/definitions/models.IssueResponse"}}
        }
      }
    }
  },
  "definitions": {
    "models.IssueReport": {
      "type": "object",
      "properties": {
        "citizenId": {"type": "string"},
        "location": {"type": "string"},
        "issueType": {"type": "string"},
        "description": {"type": "string"},
        "imagePath": {"type": "string"}
      }
    },
    "models.IssueResponse": {
      "type": "object",
      "properties": {
        "success": {"type": "boolean"},
        "message": {"type": "string"},
        "data": {"$ref": "#/definitions/models.IssueReport"}
      }
    }
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
