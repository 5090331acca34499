// Package docs holds the OpenAPI description served at /swagger/*.
// Regenerate with: swag init -g cmd/finpal/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness and database reachability",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/user/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Registration request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/user/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [
                    {"description": "Login request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/user/auth/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Refresh access token",
                "parameters": [
                    {"description": "Refresh token request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/profile": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Current user's profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProfileResponse"}}
                }
            },
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Update first and last name",
                "parameters": [
                    {"description": "Names", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProfileResponse"}}
                }
            }
        },
        "/api/v1/family/members": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["family"],
                "summary": "List family members",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.FamilyResponse"}}
                }
            }
        },
        "/api/v1/family/members/{id}": {
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["family"],
                "summary": "Remove a family member",
                "parameters": [
                    {"type": "string", "description": "Member ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/family/invitations": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["family"],
                "summary": "Invite a family member",
                "parameters": [
                    {"description": "Invitee", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.InviteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.InviteResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/categories": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List the family's categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.CategoryResponse"}}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Create a category",
                "parameters": [
                    {"description": "Category", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CategoryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CategoryResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/categories/{id}": {
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "Update a category",
                "parameters": [
                    {"type": "string", "description": "Category ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CategoryUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CategoryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["categories"],
                "summary": "Delete a category",
                "parameters": [
                    {"type": "string", "description": "Category ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/transactions": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "string", "description": "all, income, expense or transfer", "name": "type", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "to", "in": "query"},
                    {"type": "string", "description": "Category ID", "name": "category_id", "in": "query"},
                    {"type": "integer", "description": "Page size (default 50, max 500)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransactionListResponse"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Record a transaction",
                "parameters": [
                    {"description": "Transaction", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TransactionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/transactions/{id}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Get a transaction",
                "parameters": [
                    {"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Update a transaction",
                "parameters": [
                    {"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true},
                    {"description": "Transaction", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["transactions"],
                "summary": "Delete a transaction",
                "parameters": [
                    {"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/budgets": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["budgets"],
                "summary": "Budgets for a month",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BudgetMonthResponse"}}
                }
            },
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["budgets"],
                "summary": "Save a month's budget limits",
                "parameters": [
                    {"description": "Limits", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SaveBudgetsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BudgetMonthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/analytics/dashboard": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Dashboard figures",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DashboardResponse"}}
                }
            }
        },
        "/api/v1/analytics/summary": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Totals, category breakdown and daily series",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SummaryResponse"}}
                }
            }
        },
        "/api/v1/analytics/budgets": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Progress of every budgeted category",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BudgetMonthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "dto.RegisterRequest": {
            "type": "object",
            "required": ["email", "password", "first_name", "last_name"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6, "maxLength": 72},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "family": {"type": "string", "description": "the id of the family to join"}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "remember_me": {"type": "boolean"}
            }
        },
        "dto.RefreshTokenRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {"refresh_token": {"type": "string"}}
        },
        "dto.AuthResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_in": {"type": "integer"},
                "user": {"$ref": "#/definitions/dto.ProfileResponse"}
            }
        },
        "dto.ProfileResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "family_id": {"type": "string"},
                "role": {"type": "string", "enum": ["owner", "member"]},
                "status": {"type": "string", "enum": ["pending", "active"]},
                "created_at": {"type": "string"}
            }
        },
        "dto.UpdateProfileRequest": {
            "type": "object",
            "required": ["first_name", "last_name"],
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"}
            }
        },
        "dto.InviteRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {"email": {"type": "string"}}
        },
        "dto.InviteResponse": {
            "type": "object",
            "properties": {
                "member": {"$ref": "#/definitions/dto.ProfileResponse"},
                "registration_url": {"type": "string"}
            }
        },
        "dto.FamilyResponse": {
            "type": "object",
            "properties": {
                "family_id": {"type": "string"},
                "members": {"type": "array", "items": {"$ref": "#/definitions/dto.ProfileResponse"}}
            }
        },
        "dto.CategoryRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 64},
                "color": {"type": "string", "example": "#9B87F5"},
                "icon": {"type": "string", "example": "Wallet"}
            }
        },
        "dto.CategoryUpdateRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 64},
                "color": {"type": "string", "example": "#112233"},
                "icon": {"type": "string", "example": "Gift"}
            }
        },
        "dto.CategoryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "color": {"type": "string"},
                "icon": {"type": "string"}
            }
        },
        "dto.TransactionRequest": {
            "type": "object",
            "required": ["title", "amount", "type"],
            "properties": {
                "title": {"type": "string"},
                "amount": {"type": "string", "example": "12.50"},
                "date": {"type": "string", "example": "2024-05-14"},
                "type": {"type": "string", "enum": ["income", "expense", "transfer"]},
                "category_id": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "dto.TransactionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "amount": {"type": "string"},
                "date": {"type": "string"},
                "type": {"type": "string"},
                "category": {"$ref": "#/definitions/dto.CategoryResponse"},
                "description": {"type": "string"},
                "created_by": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "dto.TransactionListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"}
            }
        },
        "dto.BudgetLimitRequest": {
            "type": "object",
            "required": ["category_id"],
            "properties": {
                "category_id": {"type": "string"},
                "limit": {"type": "string", "example": "300.00"}
            }
        },
        "dto.SaveBudgetsRequest": {
            "type": "object",
            "required": ["month"],
            "properties": {
                "month": {"type": "string", "example": "2024-05"},
                "limits": {"type": "array", "items": {"$ref": "#/definitions/dto.BudgetLimitRequest"}}
            }
        },
        "dto.ProgressResponse": {
            "type": "object",
            "properties": {
                "spent": {"type": "string"},
                "limit": {"type": "string"},
                "remaining": {"type": "string"},
                "percent": {"type": "integer"},
                "over_budget": {"type": "boolean"},
                "status": {"type": "string", "enum": ["ok", "warning", "over"]}
            }
        },
        "dto.BudgetItemResponse": {
            "type": "object",
            "properties": {
                "category": {"$ref": "#/definitions/dto.CategoryResponse"},
                "progress": {"$ref": "#/definitions/dto.ProgressResponse"}
            }
        },
        "dto.BudgetMonthResponse": {
            "type": "object",
            "properties": {
                "month": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.BudgetItemResponse"}}
            }
        },
        "dto.TotalsResponse": {
            "type": "object",
            "properties": {
                "income": {"type": "string"},
                "expense": {"type": "string"},
                "balance": {"type": "string"}
            }
        },
        "dto.DashboardResponse": {
            "type": "object",
            "properties": {
                "totals": {"$ref": "#/definitions/dto.TotalsResponse"},
                "month": {"type": "string"},
                "monthly_budget": {"$ref": "#/definitions/dto.ProgressResponse"},
                "recent_transactions": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}}
            }
        },
        "dto.CategorySliceResponse": {
            "type": "object",
            "properties": {
                "category_id": {"type": "string"},
                "name": {"type": "string"},
                "color": {"type": "string"},
                "icon": {"type": "string"},
                "total": {"type": "string"},
                "count": {"type": "integer"},
                "percent": {"type": "string"}
            }
        },
        "dto.DailyPointResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "income": {"type": "string"},
                "expense": {"type": "string"}
            }
        },
        "dto.SummaryResponse": {
            "type": "object",
            "properties": {
                "from": {"type": "string"},
                "to": {"type": "string"},
                "totals": {"$ref": "#/definitions/dto.TotalsResponse"},
                "expense_by_category": {"type": "array", "items": {"$ref": "#/definitions/dto.CategorySliceResponse"}},
                "income_by_category": {"type": "array", "items": {"$ref": "#/definitions/dto.CategorySliceResponse"}},
                "daily": {"type": "array", "items": {"$ref": "#/definitions/dto.DailyPointResponse"}}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
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
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "FinPal API",
	Description:      "Family finance tracking: transactions, categories, budgets and analytics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
