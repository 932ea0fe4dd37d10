package http

import (
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
)

type ProfileHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type profileHandlerImpl struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &profileHandlerImpl{profileService: profileService}
}

func (h *profileHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req := profile.ListProfilesRequest{
		IncludeInactive: r.URL.Query().Get("include_inactive") == "true",
	}

	result, err := h.profileService.ListProfiles(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *profileHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	result, err := h.profileService.Me(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
