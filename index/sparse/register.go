package sparse

import (
	"github.com/bvbever/osm2pgsql/index"
	"github.com/bvbever/osm2pgsql/model"
)

func init() {
	index.NodeLocations.Register(Name, func() index.Map[model.NodeID, model.Location] {
		return New[model.NodeID, model.Location]()
	})
}
