package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Harishsaini91/BlenderHub-sub001/api/common"
	"github.com/Harishsaini91/BlenderHub-sub001/api/notificationapi"
	"github.com/Harishsaini91/BlenderHub-sub001/api/requestapi"
	"github.com/Harishsaini91/BlenderHub-sub001/app"
)

// API blenderhub api
type API struct {
	App    *app.App
	Config *common.Config
}

// New creates a new api
func New(a *app.App) (api *API, err error) {
	api = &API{App: a}
	api.Config, err = common.InitConfig()
	if err != nil {
		return nil, err
	}
	return api, nil
}

func (a *API) Init(r *mux.Router) {

	/* ****************** REQUESTS ****************** */
	requestAPI := requestapi.New(a.Config, a.App.Repos, a.App)
	r.Handle("/request/{category}/send", a.handler(requestAPI.SendRequest)).Methods(http.MethodPost)
	r.Handle("/request/{category}/respond", a.handler(requestAPI.RespondRequest)).Methods(http.MethodPost)
	r.Handle("/request/{userID}/{category}", a.handler(requestAPI.ListRequests)).Methods(http.MethodGet)

	/* ****************** NOTIFICATIONS ****************** */
	notificationAPI := notificationapi.New(a.Config, a.App.Repos, a.App)
	r.Handle("/notifications/{userID}", a.handler(notificationAPI.NotificationListing)).Methods(http.MethodGet)
	r.Handle("/notifications/{userID}/count", a.handler(notificationAPI.GetNotificationDisplayCount)).Methods(http.MethodGet)
	r.Handle("/notifications/{userID}/read", a.handler(notificationAPI.MarkNotificationAsRead)).Methods(http.MethodPost)
	r.Handle("/notifications/{userID}/read-all", a.handler(notificationAPI.MarkAllNotificationAsRead)).Methods(http.MethodPost)
}
