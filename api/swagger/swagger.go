package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Asignación de Equipos API",
        "description": "Equipment request tracking and fulfillment for construction operating units",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Shared-password session"},
        {"name": "Requests", "description": "Equipment request lifecycle"},
        {"name": "Fulfillment", "description": "Own/rent/buy assignments"},
        {"name": "Reports", "description": "Per-status reports and exports"},
        {"name": "Lookups", "description": "Operating units, categories, equipment catalog"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Open a session with the shared password",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "Session token issued"},
                    "401": {"description": "Invalid password"}
                }
            }
        },
        "/auth/password": {
            "put": {
                "tags": ["Auth"],
                "summary": "Replace the shared password",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Password rotated"},
                    "401": {"description": "Current password does not match"}
                }
            }
        },
        "/requests": {
            "get": {
                "tags": ["Requests"],
                "summary": "List effective requests",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "category_id", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "Flattened projection rows"}}
            },
            "post": {
                "tags": ["Requests"],
                "summary": "File a new equipment request",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/requests/stats": {
            "get": {
                "tags": ["Requests"],
                "summary": "Dashboard counters",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Pending quantity and per-kind counts"}}
            }
        },
        "/requests/{id}": {
            "put": {
                "tags": ["Requests"],
                "summary": "Edit a pending request",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Updated"},
                    "409": {"description": "Request is no longer pending"}
                }
            },
            "delete": {
                "tags": ["Requests"],
                "summary": "Delete a pending request",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/requests/{id}/assign/own": {
            "post": {
                "tags": ["Fulfillment"],
                "summary": "Assign owned machinery, one unit per line item",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Assigned"},
                    "400": {"description": "Batch exceeds remaining quantity"}
                }
            }
        },
        "/requests/{id}/assign/rent": {
            "post": {
                "tags": ["Fulfillment"],
                "summary": "Assign rented units, one per duration",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Assigned"}}
            }
        },
        "/requests/{id}/assign/buy": {
            "post": {
                "tags": ["Fulfillment"],
                "summary": "Cover the remaining quantity with a purchase",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Assigned, request stays PARTIAL"},
                    "409": {"description": "Already fully assigned"}
                }
            }
        },
        "/assignments/{id}/buy": {
            "patch": {
                "tags": ["Fulfillment"],
                "summary": "Patch vendor/delivery on a purchase assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Patched"}}
            }
        },
        "/effective/{id}/complete": {
            "post": {
                "tags": ["Fulfillment"],
                "summary": "Manually close the request behind an effective row",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Completed"}}
            }
        },
        "/effective/{id}": {
            "delete": {
                "tags": ["Fulfillment"],
                "summary": "Undo an effective row (return to pending)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Undone"}}
            }
        },
        "/reports/{status}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Status report grouped by operating unit",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "status", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Grouped rows"}}
            }
        },
        "/reports/{status}/export": {
            "post": {
                "tags": ["Reports"],
                "summary": "Export a status report as PDF or CSV",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "status", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Signed download link"}}
            }
        },
        "/export/{token}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a generated export",
                "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "File stream"},
                    "401": {"description": "Invalid or expired link"}
                }
            }
        },
        "/units": {
            "get": {"tags": ["Lookups"], "summary": "List operating units", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Lookups"], "summary": "Add an operating unit", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/units/{id}": {
            "put": {"tags": ["Lookups"], "summary": "Rename an operating unit", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "Renamed"}}},
            "delete": {"tags": ["Lookups"], "summary": "Delete an operating unit", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/categories": {
            "get": {"tags": ["Lookups"], "summary": "List equipment categories", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Lookups"], "summary": "Add an equipment category", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/categories/{id}": {
            "put": {"tags": ["Lookups"], "summary": "Rename an equipment category", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "Renamed"}}},
            "delete": {"tags": ["Lookups"], "summary": "Delete an equipment category", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/equipment": {
            "get": {"tags": ["Lookups"], "summary": "List the owned-machinery catalog", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"}
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
                "pagination": {"type": "object"},
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
