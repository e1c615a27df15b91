package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Teaching Scheduler API",
        "description": "Teacher roster, weekly calendar and workload dashboard backed by Postgres",
        "version": "0.1.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Observability", "description": "Health snapshot and request metrics"},
        {"name": "Teachers", "description": "Teacher roster"},
        {"name": "Calendar", "description": "Weekly teaching calendar"},
        {"name": "Dashboard", "description": "Teacher workload aggregation"},
        {"name": "Tables", "description": "Read-only table inspector"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Observability"],
                "summary": "Service health snapshot",
                "parameters": [
                    {"name": "detailed", "in": "query", "type": "boolean"},
                    {"name": "checkDatabase", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HealthResponse"}},
                    "500": {"description": "Health check failed", "schema": {"$ref": "#/definitions/HealthErrorResponse"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Observability"],
                "summary": "Request counters and process memory in text exposition format",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/check-teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Sample the teachers table",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TeacherSampleResponse"}},
                    "500": {"description": "Query failed", "schema": {"$ref": "#/definitions/QueryErrorResponse"}}
                }
            }
        },
        "/teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List teachers",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "type", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Weekly calendar grouped by weekday",
                "parameters": [
                    {"name": "weekday", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/export": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Download the calendar as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "required": true},
                    {"name": "weekday", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File attachment", "schema": {"type": "file"}},
                    "400": {"description": "Invalid format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/workload": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Classes per teacher and native split",
                "parameters": [
                    {"name": "refresh", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tables": {
            "get": {
                "tags": ["Tables"],
                "summary": "List inspectable tables",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tables/{name}": {
            "get": {
                "tags": ["Tables"],
                "summary": "Read raw rows from an inspectable table",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "name", "in": "path", "type": "string", "required": true},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown table or bad limit", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "DatabaseHealth": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "offline": {"type": "boolean"},
                "lastError": {"type": "string"},
                "pingResult": {"type": "string"},
                "pingError": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "timestamp": {"type": "string"},
                "version": {"type": "string"},
                "uptime": {"type": "number"},
                "environment": {"type": "string"},
                "database": {"$ref": "#/definitions/DatabaseHealth"},
                "system": {"type": "object"},
                "process": {"type": "object"}
            }
        },
        "HealthErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "TeacherSampleResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "count": {"type": "integer"},
                "sample": {"type": "array", "items": {"type": "object"}},
                "columns": {"type": "array", "items": {"type": "string"}}
            }
        },
        "QueryErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
