// Package docs holds the OpenAPI description of the billing API served at /swagger.
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
		"/billing/invoices": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Fetches the caller's invoices and returns normalized, filtered and sorted rows for the billing table. Stats always cover the full collection. When the invoice store is unreachable the sample dataset is returned with a notice.",
				"produces": [
					"application/json"
				],
				"tags": [
					"billing"
				],
				"summary": "List invoices",
				"parameters": [
					{
						"type": "string",
						"description": "Quick search over patient, clinic and status",
						"name": "q",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Patient name contains",
						"name": "patient_name",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Clinic name contains",
						"name": "clinic",
						"in": "query"
					},
					{
						"type": "string",
						"description": "low | medium | high",
						"name": "amount_range",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Bill date (YYYY-MM-DD)",
						"name": "bill_date",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Payment method contains",
						"name": "payment_method",
						"in": "query"
					},
					{
						"type": "string",
						"description": "latest | oldest | patient | amount_desc | amount_asc | due_date | status",
						"name": "sort",
						"in": "query"
					},
					{
						"type": "integer",
						"default": 0,
						"description": "Offset",
						"name": "offset",
						"in": "query"
					},
					{
						"type": "integer",
						"default": 20,
						"description": "Limit",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/handler.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.InvoiceListing"
										},
										"meta": {
											"$ref": "#/definitions/handler.PagMeta"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Invalid filter or sort key",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"403": {
						"description": "Insufficient role",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				}
			}
		},
		"/billing/invoices/export.csv": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Downloads the filtered and sorted invoice table (all pages) as CSV.",
				"produces": [
					"text/csv"
				],
				"tags": [
					"billing"
				],
				"summary": "Export invoice table as CSV",
				"parameters": [
					{
						"type": "string",
						"description": "Quick search over patient, clinic and status",
						"name": "q",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Patient name contains",
						"name": "patient_name",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Clinic name contains",
						"name": "clinic",
						"in": "query"
					},
					{
						"type": "string",
						"description": "low | medium | high",
						"name": "amount_range",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Bill date (YYYY-MM-DD)",
						"name": "bill_date",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Payment method contains",
						"name": "payment_method",
						"in": "query"
					},
					{
						"type": "string",
						"description": "latest | oldest | patient | amount_desc | amount_asc | due_date | status",
						"name": "sort",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "file"
						}
					},
					"400": {
						"description": "Invalid filter or sort key",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				}
			}
		},
		"/billing/invoices/refresh": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Refetches the caller's invoices from the store. A refresh that finishes after a newer one has been applied is discarded (applied=false).",
				"produces": [
					"application/json"
				],
				"tags": [
					"billing"
				],
				"summary": "Refetch invoices",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/handler.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.RefreshResult"
										}
									}
								}
							]
						}
					}
				}
			}
		},
		"/billing/invoices/{id}": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"billing"
				],
				"summary": "Get invoice detail",
				"parameters": [
					{
						"type": "string",
						"description": "Invoice ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/handler.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/domain.DetailView"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Invoice not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				}
			}
		},
		"/billing/invoices/{id}/export": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Downloads a single invoice as an Excel workbook. When archiving is enabled the X-Archive-URL header carries a presigned link to the archived copy.",
				"produces": [
					"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
				],
				"tags": [
					"billing"
				],
				"summary": "Export invoice as xlsx",
				"parameters": [
					{
						"type": "string",
						"description": "Invoice ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "file"
						}
					},
					"404": {
						"description": "Invoice not found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"500": {
						"description": "Export failed",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				}
			}
		},
		"/billing/stats": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"billing"
				],
				"summary": "Get billing statistics",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/handler.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.StatsResult"
										}
									}
								}
							]
						}
					}
				}
			}
		},
		"/billing/clinics": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"billing"
				],
				"summary": "List clinic names for the clinic filter",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/handler.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.ClinicList"
										}
									}
								}
							]
						}
					}
				}
			}
		}
	},
	"definitions": {
		"domain.InvoiceStatus": {
			"type": "string",
			"enum": [
				"paid",
				"pending",
				"overdue",
				"partially_paid"
			],
			"x-enum-varnames": [
				"InvoiceStatusPaid",
				"InvoiceStatusPending",
				"InvoiceStatusOverdue",
				"InvoiceStatusPartiallyPaid"
			]
		},
		"domain.InvoiceSource": {
			"type": "string",
			"enum": [
				"store",
				"sample"
			],
			"x-enum-varnames": [
				"InvoiceSourceStore",
				"InvoiceSourceSample"
			]
		},
		"domain.NoticeLevel": {
			"type": "string",
			"enum": [
				"info",
				"error"
			],
			"x-enum-varnames": [
				"NoticeLevelInfo",
				"NoticeLevelError"
			]
		},
		"domain.LineItem": {
			"type": "object",
			"properties": {
				"description": {
					"type": "string"
				},
				"quantity": {
					"type": "number"
				},
				"unit_price": {
					"type": "number"
				}
			}
		},
		"domain.DetailLineItem": {
			"type": "object",
			"properties": {
				"description": {
					"type": "string"
				},
				"quantity": {
					"type": "number"
				},
				"unit_price": {
					"type": "number"
				},
				"total": {
					"type": "number"
				},
				"unit_price_formatted": {
					"type": "string"
				},
				"total_formatted": {
					"type": "string"
				}
			}
		},
		"domain.DetailView": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"patient_id": {
					"type": "string"
				},
				"patient_name": {
					"type": "string"
				},
				"clinic_id": {
					"type": "string"
				},
				"clinic_name": {
					"type": "string"
				},
				"invoice_number": {
					"type": "string"
				},
				"total": {
					"type": "number"
				},
				"paid_amount": {
					"type": "number"
				},
				"bill_date": {
					"type": "string"
				},
				"due_date": {
					"type": "string"
				},
				"payment_method": {
					"type": "string"
				},
				"services": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"line_items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.LineItem"
					}
				},
				"status": {
					"$ref": "#/definitions/domain.InvoiceStatus"
				},
				"description": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				},
				"approved_at": {
					"type": "string"
				},
				"balance": {
					"type": "number"
				},
				"total_formatted": {
					"type": "string"
				},
				"paid_amount_formatted": {
					"type": "string"
				},
				"balance_formatted": {
					"type": "string"
				},
				"bill_date_formatted": {
					"type": "string"
				},
				"due_date_formatted": {
					"type": "string"
				},
				"created_at_formatted": {
					"type": "string"
				},
				"approved_at_formatted": {
					"type": "string"
				},
				"status_label": {
					"type": "string"
				},
				"line_item_rows": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.DetailLineItem"
					}
				},
				"line_items_total_formatted": {
					"type": "string"
				}
			}
		},
		"domain.Notice": {
			"type": "object",
			"properties": {
				"level": {
					"$ref": "#/definitions/domain.NoticeLevel"
				},
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"domain.RenderRow": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"invoice_number": {
					"type": "string"
				},
				"patient_id": {
					"type": "string"
				},
				"patient_name": {
					"type": "string"
				},
				"clinic_name": {
					"type": "string"
				},
				"bill_date": {
					"type": "string"
				},
				"due_date": {
					"type": "string"
				},
				"total": {
					"type": "string"
				},
				"paid_amount": {
					"type": "string"
				},
				"balance": {
					"type": "string"
				},
				"payment_method": {
					"type": "string"
				},
				"services": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"status": {
					"$ref": "#/definitions/domain.InvoiceStatus"
				},
				"status_label": {
					"type": "string"
				}
			}
		},
		"domain.Stats": {
			"type": "object",
			"properties": {
				"total": {
					"type": "integer"
				},
				"paid": {
					"type": "integer"
				},
				"pending": {
					"type": "integer"
				},
				"overdue": {
					"type": "integer"
				},
				"partially_paid": {
					"type": "integer"
				},
				"total_revenue": {
					"type": "number"
				},
				"distinct_clinics": {
					"type": "integer"
				}
			}
		},
		"handler.APIError": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"handler.ErrorResponseBody": {
			"type": "object",
			"properties": {
				"error": {
					"$ref": "#/definitions/handler.APIError"
				},
				"success": {
					"type": "boolean",
					"example": false
				}
			}
		},
		"handler.PagMeta": {
			"type": "object",
			"properties": {
				"limit": {
					"type": "integer"
				},
				"offset": {
					"type": "integer"
				},
				"total": {
					"type": "integer"
				}
			}
		},
		"handler.Response": {
			"type": "object",
			"properties": {
				"data": {},
				"meta": {
					"$ref": "#/definitions/handler.PagMeta"
				},
				"success": {
					"type": "boolean",
					"example": true
				}
			}
		},
		"service.ClinicList": {
			"type": "object",
			"properties": {
				"clinics": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"notices": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.Notice"
					}
				},
				"source": {
					"$ref": "#/definitions/domain.InvoiceSource"
				}
			}
		},
		"service.InvoiceListing": {
			"type": "object",
			"properties": {
				"fetched_at": {
					"type": "string"
				},
				"notices": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.Notice"
					}
				},
				"rows": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.RenderRow"
					}
				},
				"source": {
					"$ref": "#/definitions/domain.InvoiceSource"
				},
				"stats": {
					"$ref": "#/definitions/domain.Stats"
				}
			}
		},
		"service.RefreshResult": {
			"type": "object",
			"properties": {
				"applied": {
					"type": "boolean"
				},
				"count": {
					"type": "integer"
				},
				"fetched_at": {
					"type": "string"
				},
				"notices": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.Notice"
					}
				},
				"source": {
					"$ref": "#/definitions/domain.InvoiceSource"
				}
			}
		},
		"service.StatsResult": {
			"type": "object",
			"properties": {
				"notices": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.Notice"
					}
				},
				"source": {
					"$ref": "#/definitions/domain.InvoiceSource"
				},
				"stats": {
					"$ref": "#/definitions/domain.Stats"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and the access token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "MediBill Billing API",
	Description:      "Clinic billing: invoice listings, statistics, detail and exports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
