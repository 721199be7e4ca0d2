package lambdatransport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/awmpietro/tracecheck/internal/app"
	"github.com/awmpietro/tracecheck/internal/transport/checkdto"
)

type Handler struct {
	svc app.CheckService
}

func NewHandler(svc app.CheckService) *Handler {
	return &Handler{svc: svc}
}

// Check assumes API Gateway already routed POST /check.
func (h *Handler) Check(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	body, err := readBody(req)
	if err != nil {
		return jsonResp(http.StatusBadRequest, map[string]any{"error": "invalid body", "details": err.Error()}), nil
	}

	var in checkdto.CheckRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return jsonResp(http.StatusBadRequest, map[string]any{"error": "invalid json", "details": err.Error()}), nil
	}

	if in.Debug {
		report, diag, err := h.svc.CheckWithDiagnostics(in.ToApp())
		if err != nil {
			zap.L().Info("check rejected", zap.String("request_id", req.RequestContext.RequestID), zap.Error(err))
			return jsonResp(http.StatusBadRequest, checkdto.ErrorBody(err)), nil
		}
		return jsonResp(http.StatusOK, checkdto.CheckResponse{Report: report, Diagnostics: diag}), nil
	}

	report, err := h.svc.Check(in.ToApp())
	if err != nil {
		zap.L().Info("check rejected", zap.String("request_id", req.RequestContext.RequestID), zap.Error(err))
		return jsonResp(http.StatusBadRequest, checkdto.ErrorBody(err)), nil
	}
	return jsonResp(http.StatusOK, checkdto.CheckResponse{Report: report}), nil
}

func readBody(req events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if req.IsBase64Encoded {
		return base64.StdEncoding.DecodeString(req.Body)
	}
	return []byte(req.Body), nil
}

func jsonResp(status int, body any) events.APIGatewayV2HTTPResponse {
	b, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"content-type": "application/json"},
			Body:       `{"error":"failed to encode response"}`,
		}
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"content-type": "application/json"},
		Body:       string(b),
	}
}
