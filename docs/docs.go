// Package docs registers the OpenAPI document served at /swagger. Regenerate with `swag init -g cmd/api/main.go`.
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
        "/": {
            "get": {
                "description": "Reports that the chatbot API is up",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Root status",
                "responses": {
                    "200": {
                        "description": "API is running",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/chat/stream": {
            "post": {
                "description": "Runs one user turn and streams server-sent events. Each event's data is a JSON object with a type of token, quiz_json, stream_end or error.",
                "consumes": ["application/json"],
                "produces": ["text/event-stream"],
                "tags": ["Chat"],
                "summary": "Stream a chat turn",
                "parameters": [
                    {
                        "description": "User query and thread id",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.streamReq"}
                    }
                ],
                "responses": {
                    "200": {"description": "SSE stream", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/chat/threads/{thread_id}": {
            "get": {
                "description": "Returns the stored messages of a conversation thread.",
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Get thread history",
                "parameters": [
                    {"type": "string", "description": "Thread ID", "name": "thread_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.threadResp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            },
            "delete": {
                "description": "Forgets the stored conversation of a thread.",
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Delete a thread",
                "parameters": [
                    {"type": "string", "description": "Thread ID", "name": "thread_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Check if the API is healthy",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {"200": {"description": "API is healthy", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/live": {
            "get": {
                "description": "Check if the API is alive",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Check",
                "responses": {"200": {"description": "API is alive", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/ready": {
            "get": {
                "description": "Check if the API is ready to serve traffic",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check",
                "responses": {"200": {"description": "API is ready", "schema": {"type": "object", "additionalProperties": true}}}
            }
        }
    },
    "definitions": {
        "http.messageResp": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "created_at": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"},
                "tool_call_id": {"type": "string"},
                "tool_calls": {"type": "array", "items": {"$ref": "#/definitions/http.toolCallResp"}}
            }
        },
        "http.streamReq": {
            "type": "object",
            "required": ["query", "thread_id"],
            "properties": {
                "query": {"type": "string"},
                "thread_id": {"type": "string"}
            }
        },
        "http.threadResp": {
            "type": "object",
            "properties": {
                "messages": {"type": "array", "items": {"$ref": "#/definitions/http.messageResp"}},
                "thread_id": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "http.toolCallResp": {
            "type": "object",
            "properties": {
                "args": {"type": "object", "additionalProperties": true},
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "response.Resp": {
            "type": "object",
            "properties": {
                "data": {},
                "error_code": {"type": "integer"},
                "errors": {},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8000",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "Exam Prep Assistant API",
	Description:      "Streaming study assistant: notes, quizzes and current affairs over SSE.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
