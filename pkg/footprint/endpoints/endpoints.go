package endpoints

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/ColinToft/GeometricRoute/internal/util/errors"
	"github.com/ColinToft/GeometricRoute/pkg/footprint"
	"github.com/ColinToft/GeometricRoute/pkg/routegen"
)

type Set struct {
	SummaryEndpoint   endpoint.Endpoint
	ExtrusionEndpoint endpoint.Endpoint
}

func NewEndpointSet(svc footprint.Service) Set {
	return Set{
		SummaryEndpoint:   MakeSummaryEndpoint(svc),
		ExtrusionEndpoint: MakeExtrusionEndpoint(svc),
	}
}

func MakeSummaryEndpoint(svc footprint.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(SummaryRequest)
		if !ok {
			return nil, errors.ContractViolation("summary endpoint got %T", request)
		}

		params := routegen.DefaultParams()
		if req.Params != nil {
			params = *req.Params
		}

		s, err := svc.Summarize(ctx, req.Polygon, params)
		if err != nil {
			return nil, err
		}
		return SummaryResponse{Summary: s}, nil
	}
}

func MakeExtrusionEndpoint(svc footprint.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(ExtrusionRequest)
		if !ok {
			return nil, errors.ContractViolation("extrusion endpoint got %T", request)
		}

		f, err := svc.Extrusion(ctx, req.Polygon, req.BaseHeight, req.TopHeight, req.Coordinates)
		if err != nil {
			return nil, err
		}
		return ExtrusionResponse{Feature: f}, nil
	}
}
