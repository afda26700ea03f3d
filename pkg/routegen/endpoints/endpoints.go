package endpoints

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/ColinToft/GeometricRoute/internal/util/errors"
	"github.com/ColinToft/GeometricRoute/pkg/routegen"
)

type Set struct {
	GenerateEndpoint endpoint.Endpoint
	StatusEndpoint   endpoint.Endpoint
}

func NewEndpointSet(svc routegen.Service) Set {
	return Set{
		GenerateEndpoint: MakeGenerateEndpoint(svc),
		StatusEndpoint:   MakeStatusEndpoint(svc),
	}
}

func MakeGenerateEndpoint(svc routegen.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(GenerationRequest)
		if !ok {
			return nil, errors.ContractViolation("generate endpoint got %T", request)
		}

		params := routegen.DefaultParams()
		if req.Params != nil {
			params = *req.Params
		}

		route, err := svc.GenerateRoute(ctx, req.Polygon, params)
		if err != nil {
			return nil, err
		}
		return GenerationResponse{Route: route.Body, Loops: route.Loops, Cached: route.Cached}, nil
	}
}

func MakeStatusEndpoint(svc routegen.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		return StatusResponse{Status: svc.Status(ctx)}, nil
	}
}
