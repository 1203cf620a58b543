// Package docs registers the OpenAPI description of the HTTP API with swag.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler
// annotations.
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
        "/api/digest": {
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Collects every metric and evaluates advisories without pushing a notification",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "digest"
                ],
                "summary": "Preview today's market digest",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.digestResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/digest/run": {
            "post": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Collects, evaluates and delivers the digest to the configured push channels",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "digest"
                ],
                "summary": "Run the digest and push it",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.digestResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports whether the digest service is wired",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.BTCDrawdown": {
            "type": "object",
            "properties": {
                "all_time_high": {
                    "type": "number"
                },
                "current_price": {
                    "type": "number"
                },
                "percent_drop": {
                    "type": "number"
                }
            }
        },
        "domain.FearGreed": {
            "type": "object",
            "properties": {
                "label": {
                    "type": "string"
                },
                "value": {
                    "type": "integer"
                }
            }
        },
        "domain.MetricSnapshot": {
            "type": "object",
            "properties": {
                "ahr999": {
                    "type": "number"
                },
                "btc": {
                    "$ref": "#/definitions/domain.BTCDrawdown"
                },
                "fear_greed": {
                    "$ref": "#/definitions/domain.FearGreed"
                },
                "taken_at": {
                    "type": "string"
                },
                "volatility": {
                    "type": "number"
                }
            }
        },
        "domain.Signal": {
            "type": "object",
            "properties": {
                "category": {
                    "type": "string"
                },
                "text": {
                    "type": "string"
                }
            }
        },
        "handler.digestResponse": {
            "type": "object",
            "properties": {
                "body": {
                    "type": "string"
                },
                "generated_at": {
                    "type": "string"
                },
                "premiums": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.premiumResponse"
                    }
                },
                "signals": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Signal"
                    }
                },
                "snapshot": {
                    "$ref": "#/definitions/domain.MetricSnapshot"
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "handler.premiumResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "premium_percent": {
                    "type": "number"
                },
                "status": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
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
	Title:            "Market Pulse API",
	Description:      "Daily market signal digest with OpenTelemetry tracing.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
