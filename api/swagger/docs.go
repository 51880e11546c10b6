// Package swagger registers the OpenAPI document served at /swagger.
package swagger

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
        "/api/team-review/timesheets/{id}/projects/{projectId}/approve": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["team-review"],
                "summary": "Approve a timesheet for a project",
                "parameters": [
                    {"type": "string", "description": "Timesheet ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Project ID", "name": "projectId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/team-review/timesheets/{id}/projects/{projectId}/reject": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["team-review"],
                "summary": "Reject a timesheet for a project",
                "parameters": [
                    {"type": "string", "description": "Timesheet ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Project ID", "name": "projectId", "in": "path", "required": true},
                    {"description": "Rejection reason", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RejectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/team-review/projects/{projectId}/weeks/approve": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["team-review"],
                "summary": "Approve a project-week",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "projectId", "in": "path", "required": true},
                    {"description": "Week range", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ProjectWeekBody"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/team-review/projects/{projectId}/weeks/reject": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["team-review"],
                "summary": "Reject a project-week",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "projectId", "in": "path", "required": true},
                    {"description": "Week range and reason", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ProjectWeekBody"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/team-review/timesheets/verify": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["team-review"],
                "summary": "Bulk verify timesheets",
                "parameters": [
                    {"description": "Timesheet IDs", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.BatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/team-review/timesheets/bill": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["team-review"],
                "summary": "Bulk bill timesheets",
                "parameters": [
                    {"description": "Timesheet IDs", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.BatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/team-review/timesheets/{id}/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["team-review"],
                "summary": "Get approval history",
                "parameters": [
                    {"type": "string", "description": "Timesheet ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Number of items per page (default 20)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "handler.BatchRequest": {
            "type": "object",
            "required": ["timesheet_ids"],
            "properties": {"timesheet_ids": {"type": "array", "items": {"type": "string"}}}
        },
        "handler.ProjectWeekBody": {
            "type": "object",
            "required": ["week_end", "week_start"],
            "properties": {
                "reason": {"type": "string"},
                "week_end": {"type": "string", "example": "2025-03-09"},
                "week_start": {"type": "string", "example": "2025-03-03"}
            }
        },
        "handler.RejectRequest": {
            "type": "object",
            "required": ["reason"],
            "properties": {"reason": {"type": "string"}}
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"type": "string"},
                "status": {"type": "string"},
                "status_code": {"type": "integer"}
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
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Timesheet Team Review API",
	Description:      "Multi-project timesheet approval, verification and billing.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
