// Package docs registers the OpenAPI document served at /swagger/.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/auth/login/": {"post": {"tags": ["auth"], "summary": "Log in", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/refresh/": {"post": {"tags": ["auth"], "summary": "Refresh the access token", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/register/": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/auth/user/": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/events/": {
            "get": {"tags": ["events"], "summary": "List events", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["events"], "summary": "Create an event", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/events/joined/": {"get": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "List events the caller joined", "responses": {"200": {"description": "OK"}}}},
        "/events/by_invite_code/{code}/": {"get": {"tags": ["events"], "summary": "Resolve an invite code", "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/events/{id}/": {
            "get": {"tags": ["events"], "summary": "Get an event", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "Update an event", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "Update an event", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "Delete an event", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}
        },
        "/participants/": {
            "get": {"tags": ["participants"], "summary": "List participants", "parameters": [{"type": "integer", "name": "event", "in": "query"}, {"type": "integer", "default": 1, "name": "page", "in": "query"}, {"type": "integer", "default": 20, "name": "page_size", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["participants"], "summary": "Join an event", "responses": {"200": {"description": "already a member"}, "201": {"description": "joined"}}}
        },
        "/participants/{id}/": {
            "get": {"tags": ["participants"], "summary": "Get a participant", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["participants"], "summary": "Leave or remove a participant", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/todos/": {
            "get": {"tags": ["todos"], "summary": "List todos", "parameters": [{"type": "integer", "name": "event", "in": "query"}, {"type": "integer", "default": 1, "name": "page", "in": "query"}, {"type": "integer", "default": 20, "name": "page_size", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["todos"], "summary": "Add a todo to an event", "responses": {"201": {"description": "Created"}}}
        },
        "/todos/{id}/": {
            "get": {"tags": ["todos"], "summary": "Get a todo", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["todos"], "summary": "Update a todo", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["todos"], "summary": "Update a todo", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["todos"], "summary": "Delete a todo", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/themes/": {"get": {"tags": ["themes"], "summary": "List themes", "responses": {"200": {"description": "OK"}}}},
        "/themes/{id}/": {"get": {"tags": ["themes"], "summary": "Get a theme", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/friendships/": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["friendships"], "summary": "List friendships", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["friendships"], "summary": "Send a friend request by email", "responses": {"200": {"description": "already linked"}, "201": {"description": "Created"}}}
        },
        "/friendships/{id}/": {"delete": {"security": [{"BearerAuth": []}], "tags": ["friendships"], "summary": "Remove a friend, or cancel or decline a request", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}},
        "/friendships/{id}/accept/": {"post": {"security": [{"BearerAuth": []}], "tags": ["friendships"], "summary": "Accept a friend request", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
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
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Joiny API",
	Description:      "Party planning: events, invite codes, members, todos, friends and realtime rooms.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
