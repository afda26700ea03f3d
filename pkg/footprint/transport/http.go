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
	"github.com/ColinToft/GeometricRoute/internal/util/footprint"
	"github.com/ColinToft/GeometricRoute/internal/util/reqid"
	"github.com/ColinToft/GeometricRoute/pkg/footprint/endpoints"
	"github.com/ColinToft/GeometricRoute/pkg/routegen"
)

const maxBodyBytes = 4 << 20

func NewHTTPHandler(ep endpoints.Set, logger log.Logger) http.Handler {
	opts := []httptransport.ServerOption{
		httptransport.ServerBefore(reqid.PopulateRequestContext),
		httptransport.ServerAfter(reqid.SetResponseHeader),
		httptransport.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
		httptransport.ServerErrorEncoder(encodeError),
	}

	m := http.NewServeMux()

	m.Handle("POST /api/summary", httptransport.NewServer(
		ep.SummaryEndpoint,
		decodeSummaryRequest,
		encodeResponse,
		opts...,
	))
	m.Handle("POST /api/extrusion", httptransport.NewServer(
		ep.ExtrusionEndpoint,
		decodeExtrusionRequest,
		encodeExtrusionResponse,
		opts...,
	))
	m.Handle("GET /metrics", promhttp.Handler())
	m.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		encodeError(r.Context(), errors.ErrUnknown, w)
	})

	return m
}

func decodeSummaryRequest(_ context.Context, r *http.Request) (interface{}, error) {
	params := routegen.DefaultParams()
	req := endpoints.SummaryRequest{Params: &params}
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return nil, errors.InvalidArgument("decoding summary request: %v", err)
	}
	if len(req.Polygon) == 0 {
		return nil, errors.InvalidArgument("summary request has no polygon")
	}
	return req, nil
}

func decodeExtrusionRequest(_ context.Context, r *http.Request) (interface{}, error) {
	req := endpoints.ExtrusionRequest{Coordinates: footprint.Geographic}
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return nil, errors.InvalidArgument("decoding extrusion request: %v", err)
	}
	if len(req.Polygon) == 0 {
		return nil, errors.InvalidArgument("extrusion request has no polygon")
	}
	return req, nil
}

func encodeExtrusionResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if e, ok := response.(error); ok && e != nil {
		encodeError(ctx, e, w)
		return nil
	}
	resp, ok := response.(endpoints.ExtrusionResponse)
	if !ok {
		return errors.ContractViolation("extrusion response is %T", response)
	}
	w.Header().Set("Content-Type", "application/geo+json")
	return json.NewEncoder(w).Encode(resp.Feature)
}

func encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if e, ok := response.(error); ok && e != nil {
		encodeError(ctx, e, w)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}

// encodeError answers 422 for footprints and parameters that cannot be
// worked with, and 400 for requests that are not well formed.
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
