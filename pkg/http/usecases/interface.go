package usecases

import (
	"github.com/lintang-b-s/Ambulancex/pkg/engine"
)

type EngineStore interface {
	Get(key engine.RegionKey) (*engine.Engine, error)
}
