// Package docs registers the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/extract": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Reads a General Procedure Claim PDF (multipart field \"pdf\") or previously extracted text (JSON) and returns the case number, claimant and defendants.",
                "consumes": ["multipart/form-data", "application/json"],
                "produces": ["application/json"],
                "tags": ["extraction"],
                "summary": "Extract case details from a GPC",
                "parameters": [
                    {"type": "file", "description": "GPC PDF", "name": "pdf", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ExtractedCase"}},
                    "400": {"description": "Missing input, non-PDF upload or invalid extraction", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "429": {"description": "Extraction provider rate limited", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "500": {"description": "Extraction failed", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/generate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Fills the Affidavit of Service template for one defendant. Pass encoding=base64 for a base64 body.",
                "consumes": ["application/json"],
                "produces": ["application/vnd.openxmlformats-officedocument.wordprocessingml.document"],
                "tags": ["affidavits"],
                "summary": "Generate an Affidavit of Service",
                "parameters": [
                    {"description": "Case details and the defendant served", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.AffidavitRequest"}},
                    {"type": "string", "description": "Set to base64 to receive a base64-encoded body", "name": "encoding", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Affidavit .docx", "schema": {"type": "file"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "500": {"description": "Template missing or render failed", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/batches": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Processes every uploaded PDF in order and returns a zip with the affidavits and manifest.xlsx.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/zip", "application/json"],
                "tags": ["affidavits"],
                "summary": "Generate affidavits for a batch of GPCs",
                "parameters": [
                    {"type": "file", "description": "GPC PDFs (repeat the field)", "name": "pdfs", "in": "formData", "required": true},
                    {"type": "string", "description": "Set to json for a summary", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Zip bundle", "schema": {"type": "file"}},
                    "400": {"description": "No files or too many files", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "413": {"description": "Upload too large", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Defendant": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "domain.ExtractedCase": {
            "type": "object",
            "properties": {
                "caseNumber": {"type": "string"},
                "claimant": {"type": "string"},
                "claimantAddress": {"type": "string"},
                "registry": {"type": "string"},
                "dateLodged": {"type": "string"},
                "filename": {"type": "string"},
                "defendants": {"type": "array", "items": {"$ref": "#/definitions/domain.Defendant"}}
            }
        },
        "domain.AffidavitRequest": {
            "type": "object",
            "properties": {
                "caseNumber": {"type": "string"},
                "claimant": {"type": "string"},
                "claimantAddress": {"type": "string"},
                "registry": {"type": "string"},
                "defendantName": {"type": "string"},
                "defendantAddress": {"type": "string"},
                "defendantIndex": {"type": "integer"},
                "dateLodged": {"type": "string"},
                "allDefendants": {"type": "array", "items": {"$ref": "#/definitions/domain.Defendant"}}
            }
        },
        "handler.ErrorBody": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "EXTRACTION_FAILED"},
                "details": {"type": "string"},
                "error": {"type": "string", "example": "failed to extract data from GPC"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "GPC Affidavit API",
	Description:      "Reads WA Magistrates Court General Procedure Claims and fills Affidavit of Service forms.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
