package model

import (
	"github.com/Harishsaini91/BlenderHub-sub001/cache"
	"github.com/Harishsaini91/BlenderHub-sub001/database"
	"github.com/Harishsaini91/BlenderHub-sub001/mongodatabase"
)

// Repos container to hold handles for cache / db repos
type Repos struct {
	MasterDB  *database.Database
	ReplicaDB *database.Database
	Cache     *cache.Cache
	MongoDB   *mongodatabase.DBConfig
}
