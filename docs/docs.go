// Package docs holds the OpenAPI description served at /api/swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/register/": {
            "post": {
                "tags": ["auth"],
                "summary": "User registration",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/login/": {
            "post": {
                "tags": ["auth"],
                "summary": "User login",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/models.User"}}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/profile/{id}/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get a user profile",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Profile"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/follow/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["follows"],
                "summary": "Follow a user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/followRequest"}}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/unfollow/": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["follows"],
                "summary": "Unfollow a user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/followRequest"}}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "List posts",
                "parameters": [
                    {"type": "string", "name": "tags__name", "in": "query"},
                    {"type": "string", "name": "tags__name__icontains", "in": "query"},
                    {"type": "string", "name": "text__icontains", "in": "query"},
                    {"type": "string", "name": "date_created__gte", "in": "query"},
                    {"type": "string", "name": "date_created__lte", "in": "query"},
                    {"type": "string", "name": "date_created__exact", "in": "query"},
                    {"type": "integer", "name": "likes_count__exact", "in": "query"},
                    {"type": "integer", "name": "likes_count__gte", "in": "query"},
                    {"type": "integer", "name": "likes_count__lte", "in": "query"},
                    {"type": "string", "name": "ordering", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query", "description": "Page size (default 50, max 100)"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Post"}}, "headers": {"X-Next-Offset": {"type": "integer", "description": "Offset of the next page, absent on the last page"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Create a post",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/postRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Post"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}/like/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Like a post",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/feed/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Following feed",
                "parameters": [
                    {"type": "integer", "name": "limit", "in": "query", "description": "Page size (default 50, max 100)"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Post"}}, "headers": {"X-Next-Offset": {"type": "integer", "description": "Offset of the next page, absent on the last page"}}}
                }
            }
        },
        "/tags/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["tags"],
                "summary": "List tags",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Tag"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tags"],
                "summary": "Create a tag",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/tagRequest"}}],
                "responses": {
                    "200": {"description": "Existing tag", "schema": {"$ref": "#/definitions/models.Tag"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Tag"}}
                }
            }
        },
        "/tags/{id}/delete/": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["tags"],
                "summary": "Delete an unused own tag",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Tag in use or owned by another user", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "credentials": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "followRequest": {
            "type": "object",
            "properties": {"user_id": {"type": "integer"}}
        },
        "tagRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}}
        },
        "postRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "image": {"type": "string"},
                "tags": {"type": "array", "items": {"$ref": "#/definitions/tagRequest"}}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}},
                "details": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"},
                "bio": {"type": "string"},
                "profile_picture": {"type": "string"},
                "role": {"type": "string", "enum": ["user", "staff", "admin"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.Profile": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"},
                "bio": {"type": "string"},
                "role": {"type": "string"},
                "followers_count": {"type": "integer"},
                "following_count": {"type": "integer"},
                "followers": {"type": "array", "items": {"type": "integer"}},
                "following": {"type": "array", "items": {"type": "integer"}},
                "posts": {"type": "array", "items": {"$ref": "#/definitions/models.Post"}}
            }
        },
        "models.Tag": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "user_id": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        },
        "models.Post": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "user": {"$ref": "#/definitions/models.User"},
                "text": {"type": "string"},
                "image": {"type": "string"},
                "tags": {"type": "array", "items": {"$ref": "#/definitions/models.Tag"}},
                "likes_count": {"type": "integer"},
                "liked": {"type": "boolean"},
                "date_created": {"type": "string"},
                "updated_at": {"type": "string"}
            }
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
	Host:             "localhost:8000",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Tagline API",
	Description:      "Social network API with posts, tags, follows, likes and a following feed",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
