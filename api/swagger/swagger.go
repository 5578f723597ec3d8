package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Studio API",
        "description": "Students, class schedules and finances for a fitness studio.",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": ["http", "https"],
    "tags": [
        {"name": "Students", "description": "Enrolment records and exports"},
        {"name": "Schedules", "description": "Booked classes"},
        {"name": "Transactions", "description": "Income and expenses"},
        {"name": "Stats", "description": "Dashboard aggregates"},
        {"name": "AI", "description": "Drafted class notes and outreach messages"}
    ],
    "paths": {
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "description": "Newest first.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Student"}}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "description": "Status defaults to Ativo when omitted.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/StudentInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Student"}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/students/{id}": {
            "patch": {
                "tags": ["Students"],
                "summary": "Update student",
                "description": "Only supplied fields are written. status Inativo deactivates the student.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/StudentInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}},
                    "400": {"description": "Invalid id or body", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "description": "Permanent removal. 204 even when no row matched.",
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/students/export": {
            "get": {
                "tags": ["Students"],
                "summary": "Export students",
                "description": "Downloads the filtered list as alunos_YYYY-MM-DD.csv or .pdf.",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"in": "query", "name": "format", "required": true, "type": "string", "enum": ["csv", "pdf"]},
                    {"in": "query", "name": "search", "type": "string"},
                    {"in": "query", "name": "status", "type": "string", "enum": ["Todos", "Ativo", "Inativo", "Experimental"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List schedules",
                "description": "Chronological, each with the student's name.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ScheduleDetail"}}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Book a class",
                "description": "duration_minutes defaults to 60.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ScheduleInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Schedule"}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "tags": ["Transactions"],
                "summary": "List transactions",
                "description": "Ordered by due date.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Transaction"}}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "post": {
                "tags": ["Transactions"],
                "summary": "Record transaction",
                "description": "Status defaults to Pendente when omitted.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/TransactionInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Transaction"}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/transactions/{id}": {
            "patch": {
                "tags": ["Transactions"],
                "summary": "Change transaction status",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"type": "object", "properties": {"status": {"type": "string", "enum": ["Pendente", "Pago"]}}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Transaction"}},
                    "400": {"description": "Invalid id or missing status", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["Transactions"],
                "summary": "Delete transaction",
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/stats": {
            "get": {
                "tags": ["Stats"],
                "summary": "Dashboard aggregates",
                "description": "X-Cache reports HIT or MISS when the Redis cache is enabled.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DashboardStats"}},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/ai/class-note": {
            "post": {
                "tags": ["AI"],
                "summary": "Draft class note",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"type": "object", "required": ["student_name"], "properties": {"student_name": {"type": "string"}, "context": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/GeneratedText"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "502": {"description": "Provider failure", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "503": {"description": "Not configured", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/ai/messages": {
            "post": {
                "tags": ["AI"],
                "summary": "Draft WhatsApp message",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"type": "object", "required": ["student_name", "intent"], "properties": {"student_name": {"type": "string"}, "intent": {"type": "string", "enum": ["lembrete", "boas-vindas", "cobranca"]}}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/GeneratedText"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "502": {"description": "Provider failure", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "503": {"description": "Not configured", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "status": {"type": "string", "enum": ["Ativo", "Inativo", "Experimental"]},
                "plan": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "StudentInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "status": {"type": "string", "enum": ["Ativo", "Inativo", "Experimental"]},
                "plan": {"type": "string"}
            }
        },
        "Schedule": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "student_id": {"type": "integer"},
                "scheduled_at": {"type": "string", "format": "date-time"},
                "duration_minutes": {"type": "integer"},
                "notes": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "ScheduleDetail": {
            "allOf": [
                {"$ref": "#/definitions/Schedule"},
                {"type": "object", "properties": {"student": {"type": "object", "properties": {"name": {"type": "string"}}}}}
            ]
        },
        "ScheduleInput": {
            "type": "object",
            "properties": {
                "student_id": {"type": "integer"},
                "scheduled_at": {"type": "string"},
                "duration_minutes": {"type": "integer"},
                "notes": {"type": "string"}
            }
        },
        "Transaction": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "description": {"type": "string"},
                "amount": {"type": "number"},
                "type": {"type": "string", "enum": ["Receita", "Despesa"]},
                "category": {"type": "string"},
                "due_date": {"type": "string", "format": "date"},
                "status": {"type": "string", "enum": ["Pendente", "Pago"]},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "TransactionInput": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "amount": {"type": "number"},
                "type": {"type": "string", "enum": ["Receita", "Despesa"]},
                "category": {"type": "string"},
                "due_date": {"type": "string", "format": "date"},
                "status": {"type": "string", "enum": ["Pendente", "Pago"]}
            }
        },
        "DashboardStats": {
            "type": "object",
            "properties": {
                "students": {"type": "object", "properties": {"total": {"type": "integer"}, "active": {"type": "integer"}, "inactive": {"type": "integer"}, "trial": {"type": "integer"}}},
                "schedules": {"type": "object", "properties": {"total": {"type": "integer"}, "upcoming": {"type": "integer"}}},
                "finance": {"type": "object", "properties": {"income": {"type": "number"}, "expense": {"type": "number"}, "balance": {"type": "number"}, "pending": {"type": "number"}, "paid": {"type": "number"}}}
            }
        },
        "GeneratedText": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "share_url": {"type": "string"}
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
