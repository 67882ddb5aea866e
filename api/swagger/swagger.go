package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Events Hub API",
        "description": "Public events portal and admin console backend",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Feed", "description": "Public portal feed and registration"},
        {"name": "Auth", "description": "Console sessions"},
        {"name": "Events", "description": "Event management"},
        {"name": "Announcements", "description": "Announcement management"},
        {"name": "Winners", "description": "Winner management"},
        {"name": "Registrations", "description": "Registration views and exports"},
        {"name": "Admins", "description": "Console accounts and preferences"},
        {"name": "Uploads", "description": "Image uploads"}
    ],
    "paths": {
        "/feed": {
            "get": {
                "tags": ["Feed"],
                "summary": "Load the public portal feed",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "chip", "in": "query", "type": "string", "enum": ["all", "free", "today", "week"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/feed/ticker": {
            "get": {
                "tags": ["Feed"],
                "summary": "Advance the winner ticker",
                "parameters": [
                    {"name": "after", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "tags": ["Feed"],
                "summary": "Get one event with its winners",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/events/{id}/register": {
            "post": {
                "tags": ["Feed"],
                "summary": "Register for an event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Event no longer exists"},
                    "409": {"description": "Already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in to the console",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials or expired temporary admin"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange a refresh token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign out, ending every session",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/auth/password": {
            "put": {
                "tags": ["Auth"],
                "summary": "Change the caller's password",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/admin/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List events",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Create event",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/admin/events/{id}": {
            "get": {
                "tags": ["Events"],
                "summary": "Get event",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["Events"],
                "summary": "Update event",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Events"],
                "summary": "Delete event",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/admin/announcements": {
            "get": {
                "tags": ["Announcements"],
                "summary": "List announcements",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Announcements"],
                "summary": "Create announcement",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/admin/winners": {
            "get": {
                "tags": ["Winners"],
                "summary": "List winners",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Winners"],
                "summary": "Create winner",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/admin/registrations": {
            "get": {
                "tags": ["Registrations"],
                "summary": "List registrations",
                "parameters": [
                    {"name": "event_id", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/registrations/counts": {
            "get": {
                "tags": ["Registrations"],
                "summary": "Per-event registration totals",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/registrations/export": {
            "get": {
                "tags": ["Registrations"],
                "summary": "Download registrations as xlsx, csv or pdf",
                "parameters": [
                    {"name": "event_id", "in": "query", "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["xlsx", "csv", "pdf"]}
                ],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/admin/users": {
            "get": {
                "tags": ["Admins"],
                "summary": "List console accounts",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Admins"],
                "summary": "Provision a console account",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/admin/preferences/theme": {
            "get": {
                "tags": ["Admins"],
                "summary": "Get console theme",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["Admins"],
                "summary": "Set console theme",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/admin/uploads/{bucket}": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload an image",
                "parameters": [
                    {"name": "bucket", "in": "path", "required": true, "type": "string", "enum": ["event-images", "winner"]}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["name", "email", "class", "department"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "class": {"type": "string"},
                "department": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
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
