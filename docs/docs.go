// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/employees": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Employees"], "summary": "List employees", "parameters": [{"type": "string", "name": "q", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Employees"], "summary": "Create employee", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/employees/{document}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Employees"], "summary": "Get employee", "parameters": [{"type": "string", "name": "document", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["Employees"], "summary": "Update employee", "parameters": [{"type": "string", "name": "document", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Employees"], "summary": "Delete employee", "parameters": [{"type": "string", "name": "document", "in": "path", "required": true}, {"type": "string", "name": "reason", "in": "query"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/radio-units": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["RadioUnits"], "summary": "List radio units", "parameters": [{"type": "string", "name": "q", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["RadioUnits"], "summary": "Create radio unit", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/radio-units/{code}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["RadioUnits"], "summary": "Get radio unit", "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["RadioUnits"], "summary": "Update radio unit", "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["RadioUnits"], "summary": "Delete radio unit", "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}, {"type": "string", "name": "reason", "in": "query"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/operator-accounts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["OperatorAccounts"], "summary": "List operator accounts", "parameters": [{"type": "string", "name": "q", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["OperatorAccounts"], "summary": "Create operator account", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/operator-accounts/{username}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["OperatorAccounts"], "summary": "Get operator account", "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["OperatorAccounts"], "summary": "Update operator account", "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["OperatorAccounts"], "summary": "Delete operator account", "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}, {"type": "string", "name": "reason", "in": "query"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/loans": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Loans"], "summary": "List loans", "parameters": [{"type": "string", "name": "employee", "in": "query"}, {"type": "string", "name": "radio_unit", "in": "query"}, {"type": "integer", "name": "page", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Loans"], "summary": "Assign radio unit", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/loans/return": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Loans"], "summary": "Return radio unit", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/audit-log": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Audit"], "summary": "List audit log", "parameters": [{"type": "string", "name": "aggregate", "in": "query"}, {"type": "integer", "name": "page", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "RF Loans API",
	Description:      "Radio unit loan tracking API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
