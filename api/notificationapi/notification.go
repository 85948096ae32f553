package notificationapi

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/Harishsaini91/BlenderHub-sub001/app"
	"github.com/Harishsaini91/BlenderHub-sub001/util"
)

func (a *api) NotificationListing(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	userID := ctx.Vars["userID"]
	if userID == "" {
		json.NewEncoder(w).Encode(util.SetResponse(nil, 0, "userID can not be empty."))
		return nil
	}

	notifications, err := a.App.NotificationService.GetNotificationList(userID)
	if err != nil {
		return errors.Wrap(err, "error while getting notifications")
	}

	res := make(map[string]interface{})
	res["notifications"] = notifications
	json.NewEncoder(w).Encode(util.SetResponse(res, 1, "Notification list"))
	return nil
}

func (a *api) GetNotificationDisplayCount(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	userID := ctx.Vars["userID"]
	if userID == "" {
		json.NewEncoder(w).Encode(util.SetResponse(nil, 0, "userID can not be empty."))
		return nil
	}

	count, err := a.App.NotificationService.GetNotificationDisplayCount(userID)
	if err != nil {
		return errors.Wrap(err, "error while getting notification display count")
	}

	json.NewEncoder(w).Encode(util.SetResponse(map[string]int64{"count": count}, 1, "Notification count"))
	return nil
}

func (a *api) MarkNotificationAsRead(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	userID := ctx.Vars["userID"]

	var req map[string]string
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		return errors.Wrap(err, "unable to decode request body")
	}

	notificationID, ok := req["id"]
	if !ok {
		json.NewEncoder(w).Encode(util.SetResponse(nil, 0, "id not found in request."))
		return nil
	}

	if notificationID == "" {
		json.NewEncoder(w).Encode(util.SetResponse(nil, 0, "id can not be empty."))
		return nil
	}

	err = a.App.NotificationService.MarkNotificationAsRead(notificationID, userID)
	if err != nil {
		return errors.Wrap(err, "unable to mark notification as read.")
	}

	json.NewEncoder(w).Encode(util.SetResponse(nil, 1, "Notification mark as read"))
	return nil
}

func (a *api) MarkAllNotificationAsRead(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	userID := ctx.Vars["userID"]
	if userID == "" {
		json.NewEncoder(w).Encode(util.SetResponse(nil, 0, "userID can not be empty."))
		return nil
	}

	err := a.App.NotificationService.MarkAllNotificationAsRead(userID)
	if err != nil {
		return errors.Wrap(err, "unable to mark notification as read.")
	}

	json.NewEncoder(w).Encode(util.SetResponse(nil, 1, "All Notification mark as read"))
	return nil
}
