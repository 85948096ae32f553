package requestapi

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/Harishsaini91/BlenderHub-sub001/app"
	"github.com/Harishsaini91/BlenderHub-sub001/consts"
	"github.com/Harishsaini91/BlenderHub-sub001/model"
	"github.com/Harishsaini91/BlenderHub-sub001/util"
)

type sendRequestBody struct {
	FromUser string              `json:"fromUser"`
	ToUser   string              `json:"toUser"`
	Payload  model.InvitePayload `json:"payload"`
}

type respondRequestBody struct {
	RespondingUser string `json:"respondingUser"`
	CounterpartyID string `json:"counterpartyId"`
	Decision       string `json:"decision"`
}

func (a *api) SendRequest(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	category := ctx.Vars["category"]

	var body sendRequestBody
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return errors.Wrap(consts.InvalidRequestError, "unable to decode request body")
	}

	entry, err := a.App.RequestService.SendInvite(r.Context(), category, body.FromUser, body.ToUser, &body.Payload)
	if err != nil {
		return err
	}

	json.NewEncoder(w).Encode(util.SetResponse(entry, 1, "Request sent"))
	return nil
}

func (a *api) RespondRequest(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	category := ctx.Vars["category"]

	var body respondRequestBody
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return errors.Wrap(consts.InvalidRequestError, "unable to decode request body")
	}

	status, err := a.App.RequestService.Respond(r.Context(), category, body.RespondingUser, body.CounterpartyID, body.Decision)
	if err != nil {
		return err
	}

	json.NewEncoder(w).Encode(util.SetResponse(map[string]string{"status": status}, 1, "Request resolved"))
	return nil
}

func (a *api) ListRequests(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	userID := ctx.Vars["userID"]
	category := ctx.Vars["category"]

	invites, err := a.App.RequestService.ListInvites(r.Context(), userID, category)
	if err != nil {
		return err
	}

	json.NewEncoder(w).Encode(util.SetResponse(invites, 1, "Request list"))
	return nil
}
