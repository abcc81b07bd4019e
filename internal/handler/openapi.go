package handler

import (
	_ "embed"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/credit-risk/internal/model"
	"github.com/deppfellow/credit-risk/internal/server"
)

//go:embed static/openapi.html
var openAPIUI string

// OpenAPIHandler serves the OpenAPI document and a Swagger UI page to
// try the API from a browser.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves the docs page. Cache-Control is set to "no-cache"
// so clients do not reuse old docs.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.HTML(http.StatusOK, openAPIUI); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}
	return nil
}

// ServeOpenAPIDocument serves the OpenAPI 3 document of the API.
func (h *OpenAPIHandler) ServeOpenAPIDocument(c echo.Context) error {
	return c.JSON(http.StatusOK, h.document())
}

func (h *OpenAPIHandler) document() map[string]any {
	app := h.server.Config.App
	paybackPath := strings.TrimSuffix(app.APIPrefix, "/") + "/payback/"

	stringField := func(description string) map[string]any {
		return map[string]any{"type": "string", "minLength": 1, "description": description}
	}
	numberField := func(description string) map[string]any {
		return map[string]any{"type": "number", "minimum": 0, "description": description}
	}

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   app.ProjectName,
			"version": app.Version,
		},
		"paths": map[string]any{
			"/": map[string]any{
				"get": map[string]any{
					"summary":   "Service banner",
					"responses": map[string]any{"200": map[string]any{"description": "Banner"}},
				},
			},
			"/health": map[string]any{
				"get": map[string]any{
					"summary":   "Liveness probe",
					"responses": map[string]any{"200": map[string]any{"description": "Service is up"}},
				},
			},
			paybackPath: map[string]any{
				"post": map[string]any{
					"tags":    []string{"payback"},
					"summary": "Predict loan payback",
					"requestBody": map[string]any{
						"required": true,
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/PaybackRequest"},
							},
						},
					},
					"responses": map[string]any{
						"200": map[string]any{
							"description": "Prediction",
							"content": map[string]any{
								"application/json": map[string]any{
									"schema": map[string]any{"$ref": "#/components/schemas/PaybackResponse"},
								},
							},
						},
						"422": map[string]any{"description": "Validation failed"},
					},
				},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"PaybackRequest": map[string]any{
					"type": "object",
					"required": []string{
						"gender", "marital_status", "education_level", "employment_status",
						"loan_purpose", "grade_subgrade", "annual_income", "debt_to_income_ratio",
						"credit_score", "loan_amount", "interest_rate",
					},
					"properties": map[string]any{
						"gender":               stringField("Borrower gender"),
						"marital_status":       stringField("Borrower marital status"),
						"education_level":      stringField("Borrower education level"),
						"employment_status":    stringField("Borrower employment status"),
						"loan_purpose":         stringField("Borrower loan purpose"),
						"grade_subgrade":       stringField("Borrower grade subgrade"),
						"annual_income":        numberField("Borrower annual income"),
						"debt_to_income_ratio": numberField("Borrower debt to income ratio"),
						"credit_score":         numberField("Borrower credit score"),
						"loan_amount":          numberField("Borrower loan amount"),
						"interest_rate":        numberField("Borrower interest rate"),
					},
				},
				"PaybackResponse": map[string]any{
					"type":     "object",
					"required": []string{"payback_proba", "insights"},
					"properties": map[string]any{
						"loan_paid_back": map[string]any{
							"type":        "boolean",
							"default":     false,
							"description": "True when the payback probability meets the decision threshold",
						},
						"payback_proba": map[string]any{
							"type": "number", "minimum": 0, "maximum": 1,
							"description": "Payback probability",
						},
						"insights": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Additional insights",
						},
					},
					"example": model.PaybackResponseExample,
				},
			},
		},
	}
}
