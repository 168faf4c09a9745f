// Package docs registers the OpenAPI document served under /swagger/.
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
        "/v1/shares": {
            "post": {
                "description": "Stores a payload under a requested or generated slug.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["slug-registry"],
                "summary": "Create share",
                "parameters": [
                    {
                        "description": "Share payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/sharehttp.CreateShareRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/sharehttp.CreateShareResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/shares/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["slug-registry"],
                "summary": "Get share by slug",
                "parameters": [
                    {"type": "string", "description": "Share slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sharehttp.ShareResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/vote-sessions/{session_id}/votes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["vote-aggregator"],
                "summary": "List session votes",
                "parameters": [
                    {"type": "string", "description": "Session id", "name": "session_id", "in": "path", "required": true},
                    {"type": "string", "description": "Step filter", "name": "step_id", "in": "query"},
                    {"type": "integer", "description": "Row cap (default 100, max 1000)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/votehttp.ListVotesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vote-aggregator"],
                "summary": "Cast vote",
                "parameters": [
                    {"type": "string", "description": "Session id", "name": "session_id", "in": "path", "required": true},
                    {
                        "description": "Vote",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/votehttp.CreateVoteRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/votehttp.VoteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/vote-sessions/{session_id}/tally": {
            "get": {
                "produces": ["application/json"],
                "tags": ["vote-aggregator"],
                "summary": "Tally session votes per option",
                "parameters": [
                    {"type": "string", "description": "Session id", "name": "session_id", "in": "path", "required": true},
                    {"type": "string", "description": "Step filter", "name": "step_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/votehttp.TallyResponse"}}
                }
            }
        },
        "/v1/vote-sessions/{session_id}/stream": {
            "get": {
                "description": "Websocket upgrade. Each new vote arrives as {\"type\":\"vote\",\"data\":VoteResponse}.",
                "tags": ["vote-aggregator"],
                "summary": "Live vote stream",
                "parameters": [
                    {"type": "string", "description": "Session id", "name": "session_id", "in": "path", "required": true},
                    {"type": "string", "description": "Step filter", "name": "step_id", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"}
                }
            }
        }
    },
    "definitions": {
        "httpx.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "sharehttp.CreateShareRequest": {
            "type": "object",
            "required": ["payload"],
            "properties": {
                "payload": {"type": "object"},
                "slug": {"type": "string", "maxLength": 64}
            }
        },
        "sharehttp.CreateShareResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "slug": {"type": "string"}
            }
        },
        "sharehttp.ShareResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "integer"},
                "id": {"type": "string"},
                "payload": {"type": "object"},
                "slug": {"type": "string"}
            }
        },
        "votehttp.CreateVoteRequest": {
            "type": "object",
            "required": ["option_key"],
            "properties": {
                "option_key": {"type": "string"},
                "option_meta": {"type": "object"},
                "step_id": {"type": "string"},
                "voted_by": {"type": "string"}
            }
        },
        "votehttp.VoteResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "integer"},
                "option_key": {"type": "string"},
                "option_meta": {"type": "object"},
                "session_id": {"type": "string"},
                "step_id": {"type": "string"},
                "updated_at": {"type": "integer"},
                "vote_id": {"type": "string"},
                "voted_by": {"type": "string"}
            }
        },
        "votehttp.ListVotesResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/votehttp.VoteResponse"}}
            }
        },
        "votehttp.OptionTallyResponse": {
            "type": "object",
            "properties": {
                "first_vote_at": {"type": "integer"},
                "last_vote_at": {"type": "integer"},
                "option_key": {"type": "string"},
                "votes": {"type": "integer"}
            }
        },
        "votehttp.TallyResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/votehttp.OptionTallyResponse"}},
                "session_id": {"type": "string"},
                "step_id": {"type": "string"},
                "total_votes": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "BeastyPage API",
	Description:      "Share slugs and live session voting.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
