// Package docs registers the OpenAPI document of the pontual API with swag.
// Import it for its side effect; swaggerkit serves it under /api/docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/meta/health": {"get": {"tags": ["Meta"], "summary": "Liveness and uptime", "produces": ["application/json"],
            "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Envelope"}}}}},
        "/meta/ready": {"get": {"tags": ["Meta"], "summary": "Readiness of the record store and analytics mirror", "produces": ["application/json"],
            "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Envelope"}}}}},
        "/meta/version": {"get": {"tags": ["Meta"], "summary": "Build and version info", "produces": ["application/json"],
            "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Envelope"}}}}},
        "/meta/heuristics": {"get": {"tags": ["Meta"], "summary": "Audit heuristics in effect", "produces": ["application/json"],
            "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Envelope"}}}}},
        "/ingest/documents": {"post": {
            "tags": ["Ingest"],
            "summary": "Ingest already-extracted attendance documents",
            "description": "Each document is normalized, aggregated and stored on its own; a bad document never fails the batch",
            "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [
                {"name": "X-Batch-ID", "in": "header", "type": "string", "required": false, "description": "Client batch id echoed in the result"},
                {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BatchInput"}}
            ],
            "responses": {"200": {"description": "per-document outcomes", "schema": {"$ref": "#/definitions/Envelope"}},
                "400": {"description": "invalid body", "schema": {"$ref": "#/definitions/Envelope"}}}}},
        "/ingest/uploads": {"post": {
            "tags": ["Ingest"],
            "summary": "Upload timesheet files (.xlsx, .pdf, .json) for extraction and ingestion",
            "consumes": ["multipart/form-data"], "produces": ["application/json"],
            "parameters": [{"name": "documents", "in": "formData", "type": "file", "required": true, "description": "Timesheet files"}],
            "responses": {"200": {"description": "per-document outcomes", "schema": {"$ref": "#/definitions/Envelope"}},
                "422": {"description": "upload too large or unreadable", "schema": {"$ref": "#/definitions/Envelope"}}}}},
        "/audit/report": {"post": {
            "tags": ["Audit"],
            "summary": "Full audit over stored records",
            "description": "Duplicate groups, suspicious names, calendar findings and statistics. Nothing is modified",
            "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReportInput"}}],
            "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Envelope"}}}}},
        "/audit/duplicates": {"post": {
            "tags": ["Audit"],
            "summary": "Employee/period keys ingested more than once, with the current record marked",
            "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReportInput"}}],
            "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Envelope"}}}}},
        "/audit/names": {"post": {
            "tags": ["Audit"],
            "summary": "Screen names for extraction damage",
            "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NamesInput"}}],
            "responses": {"200": {"description": "one verdict per distinct name", "schema": {"$ref": "#/definitions/Envelope"}}}}},
        "/audit/report.xlsx": {"get": {
            "tags": ["Audit"],
            "summary": "Audit report as an .xlsx workbook",
            "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
            "parameters": [
                {"name": "period", "in": "query", "type": "string", "required": false, "description": "Period as MM/YYYY"},
                {"name": "employee", "in": "query", "type": "string", "required": false, "description": "Exact employee name"}
            ],
            "responses": {"200": {"description": "workbook", "schema": {"type": "file"}}}}}
    },
    "definitions": {
        "Envelope": {"type": "object", "properties": {
            "status_code": {"type": "integer", "example": 200},
            "status": {"type": "string", "example": "OK"},
            "code": {"type": "integer"},
            "error": {"type": "string"},
            "field": {"type": "string"},
            "details": {"type": "array", "items": {"$ref": "#/definitions/WireError"}},
            "request_id": {"type": "string"},
            "data": {"type": "object"}
        }},
        "WireError": {"type": "object", "properties": {
            "code": {"type": "integer"},
            "message": {"type": "string"},
            "field": {"type": "string"}
        }},
        "RawDocument": {"type": "object", "properties": {
            "employee_name": {"type": "string", "example": "Breno Silva"},
            "period": {"type": "string", "example": "07/2025"},
            "source_file": {"type": "string", "example": "ponto-07.xlsx"},
            "signature_present": {"type": "boolean"},
            "days": {"type": "array", "items": {"type": "object"}}
        }},
        "BatchInput": {"type": "object", "required": ["documents"], "properties": {
            "documents": {"type": "array", "minItems": 1, "maxItems": 500, "items": {"$ref": "#/definitions/RawDocument"}}
        }},
        "ReportInput": {"type": "object", "properties": {
            "period": {"type": "string", "example": "07/2025"},
            "employee": {"type": "string", "example": "Breno Silva"}
        }},
        "NamesInput": {"type": "object", "required": ["names"], "properties": {
            "names": {"type": "array", "minItems": 1, "maxItems": 1000, "items": {"type": "string"}}
        }}
    }
}`

// SwaggerInfo holds the exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Pontual API",
	Description:      "Attendance ingestion, reconciliation and audit endpoints",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
