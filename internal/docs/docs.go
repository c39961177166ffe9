// Package docs registers the OpenAPI 2.0 document served under /swagger.
// It follows the layout produced by `swag init` from the handler annotations.
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
        "/auth/login": {
            "post": {
                "description": "Validates the credentials envelope, checks the password and returns a signed bearer token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "operationId": "login",
                "parameters": [
                    {"type": "string", "description": "Language of validation messages (ru, en)", "name": "Accept-Language", "in": "header"},
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "413": {"description": "Body too large", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "description": "Creates a user with a bcrypt-hashed password and returns a bearer token for it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register an account",
                "operationId": "register",
                "parameters": [
                    {"type": "string", "description": "Language of validation messages (ru, en)", "name": "Accept-Language", "in": "header"},
                    {"description": "New account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Username or email taken", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "413": {"description": "Body too large", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns a page of users ordered by creation time. Supports weak ETag via If-None-Match and may return 304.",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "List users (paginated)",
                "operationId": "listUsers",
                "parameters": [
                    {"type": "string", "description": "Return 304 if ETag matches", "name": "If-None-Match", "in": "header"},
                    {"minimum": 1, "type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 20, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListUsersResponse"}, "headers": {"ETag": {"type": "string", "description": "Weak ETag for current result"}}},
                    "304": {"description": "Not Modified", "schema": {"type": "string"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/users/display-names": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Assigns displayNames[i] to ids[i]. Both arrays must have the same length; otherwise nothing is written and the request fails with different_length_of_arrays. Non-admin callers may only rename themselves. The update is atomic.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Rename several users",
                "operationId": "bulkRenameUsers",
                "parameters": [
                    {"type": "string", "description": "Language of validation messages (ru, en)", "name": "Accept-Language", "in": "header"},
                    {"description": "Parallel arrays of ids and display names", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BulkRenameRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content", "schema": {"type": "string"}},
                    "400": {"description": "Validation failed or arrays of different length", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "403": {"description": "Caller may not rename other users", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Unknown user id", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "413": {"description": "Body too large", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the profile of the user the bearer token was issued to.",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Current user",
                "operationId": "me",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserDTO"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "User no longer exists", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.AuthResponse": {
            "type": "object",
            "properties": {
                "expiresIn": {"type": "integer", "example": 3600},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/dto.UserDTO"}
            }
        },
        "dto.BulkRenameRequest": {
            "type": "object",
            "properties": {
                "displayNames": {"type": "array", "items": {"type": "string"}},
                "ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "not_found"},
                "fieldErrors": {"type": "array", "items": {"$ref": "#/definitions/dto.FieldError"}},
                "message": {"type": "string", "example": "user not found"},
                "path": {"type": "string", "example": "/api/v1/users/me"},
                "requestId": {"type": "string"},
                "status": {"type": "integer", "example": 404},
                "timestamp": {"type": "string", "example": "2025-01-02T15:04:05Z"}
            }
        },
        "dto.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string", "example": "usernameOrEmail"},
                "message": {"type": "string"}
            }
        },
        "dto.ListUsersResponse": {
            "type": "object",
            "properties": {
                "pagination": {"$ref": "#/definitions/dto.Pagination"},
                "users": {"type": "array", "items": {"$ref": "#/definitions/dto.UserDTO"}}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string", "example": "secret"},
                "usernameOrEmail": {"type": "string", "example": "alina"}
            }
        },
        "dto.Pagination": {
            "type": "object",
            "properties": {
                "hasNext": {"type": "boolean"},
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "total": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "dto.RegisterRequest": {
            "type": "object",
            "properties": {
                "displayName": {"type": "string", "example": "Alina"},
                "email": {"type": "string", "example": "alina@example.com"},
                "password": {"type": "string", "example": "s3cret-pass"},
                "username": {"type": "string", "example": "alina"}
            }
        },
        "dto.UserDTO": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "displayName": {"type": "string", "example": "Alina"},
                "email": {"type": "string", "example": "alina@example.com"},
                "id": {"type": "string"},
                "username": {"type": "string", "example": "alina"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Go Auth Backend API",
	Description:      "Credential login, registration and user profile endpoints with localized validation errors.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
