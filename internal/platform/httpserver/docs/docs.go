// Package docs holds the generated OpenAPI document served at /swagger/.
// Regenerate with swag init when HTTP contracts change.
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
        "/api/market/v1/users": {
            "post": {
                "description": "Registers the calling principal with an initial role.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register user",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Already registered"}
                }
            }
        },
        "/api/market/v1/users/{principal}": {
            "get": {
                "description": "Returns the registered user for a principal.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Lookup user",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not registered"}
                }
            }
        },
        "/api/market/v1/users/role": {
            "post": {
                "description": "Switches the calling user's role within the allowed transitions.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Change role",
                "responses": {
                    "200": {"description": "OK"},
                    "422": {"description": "Invalid role change"}
                }
            }
        },
        "/api/market/v1/products": {
            "post": {
                "description": "Publishes a product for the calling seller.",
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Publish product",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Wrong role"}
                }
            },
            "get": {
                "description": "Lists the calling seller's products.",
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List my products",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No products"}
                }
            }
        },
        "/api/market/v1/orders": {
            "post": {
                "description": "Creates an order and reserves stock atomically.",
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Create order",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Insufficient stock"}
                }
            }
        },
        "/api/market/v1/orders/{order_id}/ship": {
            "post": {
                "description": "Seller marks a pending order as shipped.",
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Mark shipped",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Invalid state"}
                }
            }
        },
        "/api/market/v1/orders/{order_id}/receive": {
            "post": {
                "description": "Buyer marks a shipped order as received.",
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Mark received",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Invalid state"}
                }
            }
        },
        "/api/reports/v1/top-sellers": {
            "get": {
                "description": "Ranks sellers by reputation.",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Top sellers",
                "responses": {
                    "200": {"description": "OK"}
                }
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
	Title:            "Mercato Marketplace API",
	Description:      "Order lifecycle engine and reporting endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
