// Package docs регистрирует OpenAPI-описание для /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"], "summary": "Register new user",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.credentialsRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Login",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.credentialsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"], "summary": "Logout", "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/folders": {
            "post": {
                "tags": ["folders"], "summary": "Create folder", "security": [{"BearerAuth": []}],
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/folder.createRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}},
                    "404": {"description": "Parent not found", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}},
                    "409": {"description": "Sibling with the same name", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}}
                }
            }
        },
        "/folders/root/content": {
            "get": {
                "tags": ["folders"], "summary": "Root content", "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}}}
            }
        },
        "/folders/{id}/content": {
            "get": {
                "tags": ["folders"], "summary": "Folder content", "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}}
                }
            }
        },
        "/files": {
            "post": {
                "tags": ["files"], "summary": "Upload file", "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "folder_id", "type": "string", "required": true},
                    {"in": "formData", "name": "file", "type": "file", "required": true},
                    {"in": "formData", "name": "name", "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}},
                    "404": {"description": "Folder not found", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}}
                }
            }
        },
        "/files/{id}": {
            "delete": {
                "tags": ["files"], "summary": "Delete file", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/files/{id}/download": {
            "get": {
                "tags": ["files"], "summary": "Download file", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"302": {"description": "Redirect to signed URL"}, "404": {"description": "Not Found"}}
            }
        },
        "/files/{id}/share-links": {
            "get": {
                "tags": ["share-links"], "summary": "List share links of a file", "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}}, "404": {"description": "Not Found"}}
            }
        },
        "/share-links": {
            "post": {
                "tags": ["share-links"], "summary": "Create share link", "security": [{"BearerAuth": []}],
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/share.createRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.APIEnvelope"}}, "404": {"description": "Not Found"}}
            }
        },
        "/share-links/{id}/disable": {
            "post": {
                "tags": ["share-links"], "summary": "Disable share link", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/public/share/{token}": {
            "get": {
                "tags": ["public"], "summary": "Public share access",
                "parameters": [{"in": "path", "name": "token", "type": "string", "required": true}],
                "responses": {"302": {"description": "Redirect to signed URL"}, "404": {"description": "Not found, disabled or expired"}}
            }
        },
        "/health": {
            "get": {
                "tags": ["health"], "summary": "Health", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SystemHealth"}}}
            }
        },
        "/healthz": {"get": {"tags": ["health"], "summary": "Liveness check", "responses": {"200": {"description": "OK"}}}},
        "/readyz": {"get": {"tags": ["health"], "summary": "Readiness check", "responses": {"200": {"description": "OK"}, "503": {"description": "Unavailable"}}}}
    },
    "definitions": {
        "auth.credentialsRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "folder.createRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "parent_id": {"type": "string", "x-nullable": true}}
        },
        "share.createRequest": {
            "type": "object",
            "properties": {"file_id": {"type": "string"}, "expires_at": {"type": "string", "format": "date-time", "x-nullable": true}}
        },
        "domain.APIError": {
            "type": "object",
            "properties": {"code": {"type": "integer"}, "text": {"type": "string"}}
        },
        "domain.APIEnvelope": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/domain.APIError"}, "data": {}}
        },
        "domain.SystemHealth": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "database_time": {"type": "string", "format": "date-time"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "my-drive API",
	Description:      "Личное файловое хранилище: папки, файлы в S3, публичные ссылки.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
