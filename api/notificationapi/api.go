package notificationapi

import (
	"github.com/Harishsaini91/BlenderHub-sub001/api/common"
	"github.com/Harishsaini91/BlenderHub-sub001/app"
	"github.com/Harishsaini91/BlenderHub-sub001/model"
)

type api struct {
	config *common.Config
	repos  *model.Repos
	App    *app.App
}

// New creates a new notification api
func New(conf *common.Config, repos *model.Repos, app *app.App) *api {
	return &api{
		config: conf,
		repos:  repos,
		App:    app,
	}
}
