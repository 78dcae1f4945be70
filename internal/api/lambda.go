package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/BerylCAtieno/business-insights-agent/internal/insights"
)

// HandleAPIGateway serves an API Gateway proxy event with the same semantics as the HTTP route.
func (h *Handler) HandleAPIGateway(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			status, payload := h.errorResponse(&insights.ValidationError{Reason: "body is not valid base64"})
			return jsonResponse(status, payload)
		}
		body = decoded
	}

	status, payload := h.Process(ctx, req.HTTPMethod, bytes.NewReader(body))
	return jsonResponse(status, payload)
}

func jsonResponse(status int, payload any) (events.APIGatewayProxyResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
		Body:       string(data),
	}, nil
}
