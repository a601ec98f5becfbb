// Package api holds the Swagger document of the mock API.
//
// The document is maintained by hand. It follows the swag annotations on the
// handlers in internal/mockapi and internal/router; update both together.
package api

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
                "description": "Returns a new token for the user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "credentials",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/mockapi.httpError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/mockapi.httpError"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "description": "Creates a new user and returns a token for it",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register",
                "parameters": [
                    {
                        "description": "User",
                        "name": "user",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.RegisterRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/mockapi.httpError"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "description": "Returns the user the token belongs to",
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/mockapi.httpError"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Returns the application health and, if not healthy, an error",
                "tags": ["General"],
                "summary": "Get health",
                "responses": {
                    "204": {"description": "No Content"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/mockapi.httpError"}}
                }
            }
        },
        "/version": {
            "get": {
                "description": "Returns the software version of the API",
                "tags": ["General"],
                "summary": "API version",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.VersionResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "description": "Returns one page of transactions, sorted by the given field",
                "produces": ["application/json"],
                "tags": ["Transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "integer", "description": "Page number, starting at 0", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "size", "in": "query"},
                    {"type": "string", "description": "Sort field", "name": "sortBy", "in": "query"},
                    {"type": "string", "description": "asc or desc", "name": "sortDir", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/mockapi.httpError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/mockapi.httpError"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Transactions"],
                "summary": "Create transaction",
                "parameters": [
                    {
                        "description": "Transaction",
                        "name": "transaction",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.TransactionRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Transaction"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/mockapi.httpError"}}
                }
            }
        },
        "/transactions/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Transactions"],
                "summary": "Summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Summary"}}
                }
            }
        },
        "/categories": {
            "get": {
                "description": "Returns the default categories followed by the categories of the user",
                "produces": ["application/json"],
                "tags": ["Categories"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Category"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/mockapi.httpError"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Categories"],
                "summary": "Create category",
                "parameters": [
                    {
                        "description": "Category",
                        "name": "category",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.CategoryRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Category"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/mockapi.httpError"}}
                }
            }
        },
        "/": {
            "get": {
                "description": "Entrypoint for the API, listing all endpoints",
                "tags": ["General"],
                "summary": "API root",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.RootResponse"}}
                }
            }
        },
        "/transactions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Transactions"],
                "summary": "Get transaction",
                "parameters": [
                    {"type": "integer", "description": "ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Transaction"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/mockapi.httpError"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Transactions"],
                "summary": "Update transaction",
                "parameters": [
                    {"type": "integer", "description": "ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Transaction",
                        "name": "transaction",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.TransactionRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Transaction"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/mockapi.httpError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/mockapi.httpError"}}
                }
            },
            "delete": {
                "tags": ["Transactions"],
                "summary": "Delete transaction",
                "parameters": [
                    {"type": "integer", "description": "ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/mockapi.httpError"}}
                }
            }
        },
        "/categories/statistics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Categories"],
                "summary": "Category statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CategoryStatistics"}}
                }
            }
        },
        "/categories/cleanup": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["Categories"],
                "summary": "Delete unused categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CleanupResult"}}
                }
            }
        },
        "/currency/convert-multiple": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Currency"],
                "summary": "Convert into multiple currencies",
                "parameters": [
                    {"type": "string", "description": "Amount", "name": "amount", "in": "query", "required": true},
                    {"type": "string", "description": "Source currency", "name": "fromCurrency", "in": "query", "required": true},
                    {"type": "string", "description": "Comma separated target currencies", "name": "toCurrencies", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Conversion"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/mockapi.httpError"}}
                }
            }
        },
        "/currency/convert": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Currency"],
                "summary": "Convert currency",
                "parameters": [
                    {
                        "description": "Conversion",
                        "name": "conversion",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.ConversionRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Conversion"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/mockapi.httpError"}}
                }
            }
        }
    },
    "definitions": {
        "mockapi.httpError": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Transaction amount must be greater than 0"}
            }
        },
        "models.AuthResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string", "example": "0f8e4f2c-5b1e-4a33-9c55-4e4b1b2e0a11"},
                "type": {"type": "string", "example": "Bearer"},
                "username": {"type": "string", "example": "alice"},
                "email": {"type": "string", "example": "alice@example.com"}
            }
        },
        "models.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "models.RegisterRequest": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "username": {"type": "string", "maxLength": 50, "minLength": 3},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "username": {"type": "string", "example": "alice"},
                "email": {"type": "string", "example": "alice@example.com"}
            }
        },
        "models.Transaction": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 42},
                "description": {"type": "string", "example": "Coffee"},
                "amount": {"type": "number", "example": 4.5},
                "type": {"type": "string", "example": "EXPENSE"},
                "category": {"type": "string", "example": "Food & Dining"},
                "notes": {"type": "string", "example": "Oat milk"},
                "currency": {"type": "string", "example": "USD"},
                "transactionDate": {"type": "string", "example": "2024-05-12T08:15:00.000Z"},
                "createdAt": {"type": "string", "example": "2024-05-12T08:16:02.000Z"},
                "updatedAt": {"type": "string", "example": "2024-05-12T08:16:02.000Z"}
            }
        },
        "models.TransactionRequest": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "amount": {"type": "number"},
                "type": {"type": "string"},
                "transactionDate": {"type": "string"},
                "category": {"type": "string"},
                "notes": {"type": "string"},
                "currency": {"type": "string"}
            }
        },
        "models.Summary": {
            "type": "object",
            "properties": {
                "totalIncome": {"type": "number"},
                "totalExpenses": {"type": "number"},
                "netWorth": {"type": "number"},
                "incomeCount": {"type": "integer"},
                "expenseCount": {"type": "integer"}
            }
        },
        "models.Category": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 7},
                "name": {"type": "string", "example": "Food & Dining"},
                "description": {"type": "string", "example": "Restaurants and groceries"},
                "color": {"type": "string", "example": "#F59E0B"},
                "isDefault": {"type": "boolean", "example": true},
                "transactionCount": {"type": "integer", "example": 12},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.CategoryRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "description": {"type": "string"},
                "color": {"type": "string"}
            }
        },
        "models.CategoryStatistics": {
            "type": "object",
            "properties": {
                "totalCategories": {"type": "integer"},
                "defaultCategories": {"type": "integer"},
                "userCategories": {"type": "integer"},
                "categoriesInUse": {"type": "integer"},
                "unusedCategories": {"type": "integer"}
            }
        },
        "models.CleanupResult": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Deleted 2 unused categories"},
                "deletedCount": {"type": "integer", "example": 2}
            }
        },
        "router.RootResponse": {
            "type": "object",
            "properties": {
                "links": {"$ref": "#/definitions/router.RootLinks"}
            }
        },
        "router.RootLinks": {
            "type": "object",
            "properties": {
                "docs": {"type": "string", "example": "https://example.com/api/docs/index.html"},
                "healthz": {"type": "string", "example": "https://example.com/api/healthz"},
                "version": {"type": "string", "example": "https://example.com/api/version"},
                "metrics": {"type": "string", "example": "https://example.com/api/metrics"},
                "transactions": {"type": "string", "example": "https://example.com/api/transactions"},
                "categories": {"type": "string", "example": "https://example.com/api/categories"},
                "currency": {"type": "string", "example": "https://example.com/api/currency/supported"}
            }
        },
        "models.ConversionRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "fromCurrency": {"type": "string"},
                "toCurrency": {"type": "string"}
            }
        },
        "models.Conversion": {
            "type": "object",
            "properties": {
                "originalAmount": {"type": "number"},
                "fromCurrency": {"type": "string"},
                "convertedAmount": {"type": "number"},
                "toCurrency": {"type": "string"},
                "exchangeRate": {"type": "number"},
                "timestamp": {"type": "string"},
                "source": {"type": "string"}
            }
        },
        "router.VersionResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/router.VersionObject"}
            }
        },
        "router.VersionObject": {
            "type": "object",
            "properties": {
                "version": {"type": "string", "example": "1.1.0"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
