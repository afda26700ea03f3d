package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ColinToft/GeometricRoute/internal/util/errors"
	"github.com/ColinToft/GeometricRoute/internal/util/reqid"
	"github.com/ColinToft/GeometricRoute/pkg/routegen"
	"github.com/ColinToft/GeometricRoute/pkg/routegen/endpoints"
)

// Largest request body accepted, enough for a few thousand vertices.
const maxBodyBytes = 4 << 20

func NewHTTPHandler(ep endpoints.Set, logger log.Logger) http.Handler {
	opts := []httptransport.ServerOption{
		httptransport.ServerBefore(reqid.PopulateRequestContext),
		httptransport.ServerAfter(reqid.SetResponseHeader),
		httptransport.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
		httptransport.ServerErrorEncoder(encodeError),
	}

	m := http.NewServeMux()

	m.Handle("POST /api/route", httptransport.NewServer(
		ep.GenerateEndpoint,
		decodeGenerateRequest,
		encodeGenerateResponse,
		opts...,
	))
	m.Handle("GET /api/status", httptransport.NewServer(
		ep.StatusEndpoint,
		decodeStatusRequest,
		encodeResponse,
		opts...,
	))
	m.Handle("GET /metrics", promhttp.Handler())
	m.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		encodeError(r.Context(), errors.ErrUnknown, w)
	})

	return m
}

func decodeGenerateRequest(_ context.Context, r *http.Request) (interface{}, error) {
	params := routegen.DefaultParams()
	req := endpoints.GenerationRequest{Params: &params}
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return nil, errors.InvalidArgument("decoding route request: %v", err)
	}
	if len(req.Polygon) == 0 {
		return nil, errors.InvalidArgument("route request has no polygon")
	}
	return req, nil
}

func decodeStatusRequest(_ context.Context, _ *http.Request) (interface{}, error) {
	return endpoints.StatusRequest{}, nil
}

// encodeGenerateResponse writes the route collection as it was encoded by
// the service.
func encodeGenerateResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if e, ok := response.(error); ok && e != nil {
		encodeError(ctx, e, w)
		return nil
	}
	resp, ok := response.(endpoints.GenerationResponse)
	if !ok {
		return errors.ContractViolation("generate response is %T", response)
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, err := w.Write(resp.Route)
	return err
}

func encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if e, ok := response.(error); ok && e != nil {
		encodeError(ctx, e, w)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}

func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	switch {
	case pkgerrors.Is(err, errors.ErrUnknown):
		w.WriteHeader(http.StatusNotFound)
	case pkgerrors.Is(err, errors.ErrInvalidArgument):
		w.WriteHeader(http.StatusBadRequest)
	case errors.IsDomain(err):
		w.WriteHeader(http.StatusUnprocessableEntity)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}
