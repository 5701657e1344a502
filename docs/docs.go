// Package docs registers the OpenAPI document served at /swagger/doc.json.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register an account",
                "parameters": [
                    {"description": "account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.PublicUser"}},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.LoginResponse"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current account",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/sessions/anonymous": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Start an anonymous help session",
                "parameters": [
                    {"description": "demographics", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.CreateAnonymousSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.CreateAnonymousSessionResponse"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/assessments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["assessments"],
                "summary": "List screening instruments",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/assessments/{code}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assessments"],
                "summary": "Score a completed questionnaire",
                "parameters": [
                    {"type": "string", "description": "phq9, gad7 or ghq12", "name": "code", "in": "path", "required": true},
                    {"description": "answers", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.SubmitAssessmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.AssessmentResponse"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/chat": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Talk to the AI companion",
                "parameters": [
                    {"description": "conversation", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.ChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ChatResponse"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/forum/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["forum"],
                "summary": "List forum posts",
                "parameters": [
                    {"type": "string", "description": "category filter", "name": "category", "in": "query"},
                    {"type": "integer", "description": "max posts", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/analytics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Platform analytics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Dashboard"}},
                    "403": {"description": "Forbidden"}
                }
            }
        }
    },
    "definitions": {
        "model.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string", "enum": ["student", "admin"]}
            }
        },
        "model.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "model.PublicUser": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "model.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expiresIn": {"type": "integer"},
                "user": {"$ref": "#/definitions/model.PublicUser"}
            }
        },
        "model.CreateAnonymousSessionRequest": {
            "type": "object",
            "properties": {
                "ageRange": {"type": "string"},
                "academicYear": {"type": "string"},
                "preferredLanguage": {"type": "string"}
            }
        },
        "model.CreateAnonymousSessionResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "sessionToken": {"type": "string"},
                "expiresAt": {"type": "string", "format": "date-time"}
            }
        },
        "model.SubmitAssessmentRequest": {
            "type": "object",
            "properties": {
                "answers": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "model.AssessmentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "instrumentCode": {"type": "string"},
                "instrumentName": {"type": "string"},
                "totalScore": {"type": "integer"},
                "maxScore": {"type": "integer"},
                "severity": {
                    "type": "object",
                    "properties": {
                        "label": {"type": "string"},
                        "category": {"type": "string"},
                        "description": {"type": "string"}
                    }
                },
                "completedAt": {"type": "string", "format": "date-time"},
                "recommendation": {"type": "string"}
            }
        },
        "model.ChatRequest": {
            "type": "object",
            "properties": {
                "messages": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "role": {"type": "string"},
                            "content": {"type": "string"}
                        }
                    }
                },
                "userContext": {"type": "object"}
            }
        },
        "model.ChatResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "role": {"type": "string"},
                "content": {"type": "string"},
                "suggestedActions": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "title": {"type": "string"},
                            "description": {"type": "string"},
                            "action": {"type": "string"}
                        }
                    }
                },
                "contextualRouting": {"type": "boolean"},
                "metadata": {"type": "object"}
            }
        },
        "model.Dashboard": {
            "type": "object",
            "properties": {
                "totalStudents": {"type": "integer"},
                "activeSessions": {"type": "integer"},
                "therapists": {"type": "integer"},
                "severity": {"type": "object", "additionalProperties": {"type": "integer"}},
                "topics": {"type": "object", "additionalProperties": {"type": "integer"}},
                "riskLevels": {"type": "object", "additionalProperties": {"type": "integer"}},
                "resourceUsage": {"type": "object", "additionalProperties": {"type": "integer"}},
                "moods": {"type": "object", "additionalProperties": {"type": "integer"}},
                "generatedAt": {"type": "string", "format": "date-time"}
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
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "MindBridge API",
	Description:      "Student mental health support: screening, AI companion, peer forum and counselor dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
