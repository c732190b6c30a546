package controllers

import (
	"context"

	"github.com/lintang-b-s/Ambulancex/pkg/engine/routing"
	"github.com/lintang-b-s/Ambulancex/pkg/http/usecases"
)

type RoutingService interface {
	Dispatch(ctx context.Context, query usecases.DispatchQuery) (*usecases.DispatchResult, error)
	Destinations() []routing.Candidate
}
