// Package http implements the HTTP handlers of the kpicast service.
// Handlers are a thin layer between the transport and the service layer:
// they decode and validate requests, call a service and render the result.
//
// # Routes
//
//	GET  /health                        {"status":"ok"}
//	GET  /health/live                   liveness with runtime details
//	GET  /version                       build information
//	POST /forecast_and_explain          forecast, insights and trend label
//	POST /forecast_and_explain/export   the same forecast as CSV or XLSX
//
// # Request Decoding
//
// The forecast body must be a JSON array of {"day": string, "value": number}
// objects. Elements are decoded one at a time so every rejected field is
// reported with its index:
//
//	{
//	    "type": "/errors/validation",
//	    "title": "Unprocessable Entity",
//	    "status": 422,
//	    "detail": "Request validation failed",
//	    "instance": "/forecast_and_explain",
//	    "errors": [{"field": "body[1].value", "message": "value is required"}]
//	}
//
// # Testing
//
// Handlers are tested with httptest against a chi router and testify mocks
// of the service interfaces in interfaces.go.
package http
