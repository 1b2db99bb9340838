// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/api/grn-approvals": {
            "get": {
                "produces": ["application/json"],
                "tags": ["grn-approvals"],
                "summary": "List approval records",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/grn-approvals/send-bill": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["grn-approvals"],
                "summary": "Send a GRN bill for approval",
                "parameters": [
                    {"description": "Bill details", "name": "bill", "in": "body", "required": true, "schema": {"$ref": "#/definitions/grn.BillDetails"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/grn-approvals/approve-admin/{grn_no}": {
            "patch": {
                "produces": ["application/json"],
                "tags": ["grn-approvals"],
                "summary": "Admin approval",
                "parameters": [{"type": "string", "description": "GRN number", "name": "grn_no", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/grn-approvals/approve-gm/{grn_no}": {
            "patch": {
                "produces": ["application/json"],
                "tags": ["grn-approvals"],
                "summary": "GM approval",
                "parameters": [{"type": "string", "description": "GRN number", "name": "grn_no", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/grn-approvals/close-bill/{grn_no}": {
            "patch": {
                "produces": ["application/json"],
                "tags": ["grn-approvals"],
                "summary": "Close an approved bill",
                "parameters": [{"type": "string", "description": "GRN number", "name": "grn_no", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/grn-approvals/views/{role}/{view}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["grn-approvals"],
                "summary": "Pending or history list for a role",
                "parameters": [
                    {"type": "string", "description": "store, admin or gm", "name": "role", "in": "path", "required": true},
                    {"type": "string", "description": "pending or history", "name": "view", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/grn-approvals/{grn_no}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["grn-approvals"],
                "summary": "Get one approval record",
                "parameters": [{"type": "string", "description": "GRN number", "name": "grn_no", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/store-grn/candidates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["store-grn"],
                "summary": "Store GRN candidates from the ERP feed",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/store-grn/candidates/pending": {
            "get": {
                "produces": ["application/json"],
                "tags": ["store-grn"],
                "summary": "Candidates that have not been sent for approval",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/store-grn/candidates/refresh": {
            "post": {
                "produces": ["application/json"],
                "tags": ["store-grn"],
                "summary": "Reload the ERP candidate feed",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/reports/grn-approvals": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["reports"],
                "summary": "Export approval records",
                "parameters": [
                    {"type": "string", "description": "store, admin or gm; empty exports every record", "name": "role", "in": "query"},
                    {"type": "string", "description": "pending or history (default pending)", "name": "view", "in": "query"},
                    {"type": "string", "description": "xlsx or csv (default xlsx)", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/audit-logs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["audit"],
                "summary": "List audit logs",
                "parameters": [
                    {"type": "string", "description": "grn_no", "name": "record_id", "in": "query"},
                    {"type": "integer", "description": "Page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/debug/me": {
            "get": {
                "description": "The user id and gate roles carried by the bearer token",
                "produces": ["application/json"],
                "tags": ["debug"],
                "summary": "Get current user info",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Check if the server is up",
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "description": "Pings the approval store",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "grn.BillDetails": {
            "type": "object",
            "properties": {
                "grn_date": {"type": "string"},
                "grn_no": {"type": "string"},
                "party_bill_amount": {"type": "string"},
                "party_bill_no": {"type": "string"},
                "party_name": {"type": "string"},
                "planned_date": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "GRN Approval Console API",
	Description:      "Goods receipt note bill approval pipeline: send, admin approval, GM approval, close.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
