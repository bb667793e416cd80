package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Wazai Maps API",
        "description": "Map sessions over the tech event search API: markers, selection, list, calendar and exports.",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Sessions", "description": "Map session lifecycle and searches"},
        {"name": "List", "description": "Sorted event list and calendar"},
        {"name": "Selection", "description": "Selected event and detail panel"},
        {"name": "Map", "description": "Camera, markers and clicks"},
        {"name": "Export", "description": "CSV, PDF and iCalendar downloads"},
        {"name": "Providers", "description": "Provider picker and search cache"}
    ],
    "paths": {
        "/health": {
            "get": {"summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is failing"}
                }
            }
        },
        "/metrics": {
            "get": {"summary": "Prometheus metrics", "produces": ["text/plain"], "responses": {"200": {"description": "OK"}}}
        },
        "/metrics/summary": {
            "get": {"summary": "Metrics snapshot", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/providers": {
            "get": {
                "tags": ["Providers"],
                "summary": "Provider picker options",
                "description": "ALL comes first. When the search API is down only ALL is returned and meta.degraded is set.",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/cache": {
            "delete": {
                "tags": ["Providers"],
                "summary": "Drop cached search responses",
                "responses": {"204": {"description": "Invalidated"}, "500": {"description": "Cache error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/sessions": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Open a map session",
                "description": "Starts the first search immediately with the given or default parameters.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/CreateSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Search queue unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/sessions/{id}": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Session state",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Unknown session"}}
            },
            "delete": {
                "tags": ["Sessions"],
                "summary": "Close a session",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Closed"}, "404": {"description": "Unknown session"}}
            }
        },
        "/api/v1/sessions/{id}/search": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Start a new search",
                "description": "Replaces the parameters, clears the selection and supersedes any in-flight search.",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/SearchRequest"}}
                ],
                "responses": {"202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Invalid payload"}}
            }
        },
        "/api/v1/sessions/{id}/events": {
            "get": {
                "tags": ["List"],
                "summary": "Event list",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "order", "in": "query", "type": "string", "enum": ["asc", "desc"]},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/sessions/{id}/calendar": {
            "get": {
                "tags": ["List"],
                "summary": "Calendar view",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "type": "string", "description": "YYYY-MM-DD, defaults to today"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad date"}}
            }
        },
        "/api/v1/sessions/{id}/selection": {
            "put": {
                "tags": ["Selection"],
                "summary": "Select an event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectRequest"}}
                ],
                "responses": {"200": {"description": "Detail view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Event not in results"}}
            },
            "delete": {
                "tags": ["Selection"],
                "summary": "Close the detail panel",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Cleared"}}
            }
        },
        "/api/v1/sessions/{id}/detail": {
            "get": {
                "tags": ["Selection"],
                "summary": "Detail panel of the selected event",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "204": {"description": "Nothing selected"}}
            }
        },
        "/api/v1/sessions/{id}/map": {
            "get": {
                "tags": ["Map"],
                "summary": "Camera and marker render list",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/sessions/{id}/viewport": {
            "put": {
                "tags": ["Map"],
                "summary": "Resize, pan or zoom the map",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ViewportRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Invalid viewport"}}
            }
        },
        "/api/v1/sessions/{id}/map/click": {
            "post": {
                "tags": ["Map"],
                "summary": "Click on the map",
                "description": "A marker hit selects its event; any other click clears the selection.",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClickRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/sessions/{id}/export": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the event list",
                "produces": ["text/csv", "application/pdf", "text/calendar"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf", "ics"]},
                    {"name": "order", "in": "query", "type": "string", "enum": ["asc", "desc"]},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "File"}, "400": {"description": "Unsupported format"}}
            }
        },
        "/api/v1/sessions/{id}/export/link": {
            "post": {
                "tags": ["Export"],
                "summary": "Create a download link for an export",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf", "ics"]},
                    {"name": "order", "in": "query", "type": "string", "enum": ["asc", "desc"]},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Links disabled"}}
            }
        },
        "/api/v1/exports/{token}": {
            "get": {
                "tags": ["Export"],
                "summary": "Download a shared export",
                "produces": ["text/csv", "application/pdf", "text/calendar"],
                "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "File"}, "404": {"description": "Expired or unknown link"}}
            }
        }
    },
    "definitions": {
        "SearchRequest": {
            "type": "object",
            "properties": {
                "keyword": {"type": "string"},
                "country": {"type": "string", "enum": ["ALL", "TW", "JP"]},
                "provider": {"type": "string"}
            }
        },
        "CreateSessionRequest": {
            "type": "object",
            "properties": {
                "timezone": {"type": "string", "example": "Asia/Taipei"},
                "width": {"type": "integer"},
                "height": {"type": "integer"},
                "search": {"$ref": "#/definitions/SearchRequest"}
            }
        },
        "SelectRequest": {
            "type": "object",
            "required": ["eventId"],
            "properties": {"eventId": {"type": "string"}}
        },
        "LatLng": {
            "type": "object",
            "properties": {"lat": {"type": "number"}, "lng": {"type": "number"}}
        },
        "ViewportRequest": {
            "type": "object",
            "properties": {
                "width": {"type": "integer"},
                "height": {"type": "integer"},
                "center": {"$ref": "#/definitions/LatLng"},
                "zoom": {"type": "number"}
            }
        },
        "ClickRequest": {
            "type": "object",
            "properties": {"x": {"type": "number"}, "y": {"type": "number"}}
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
