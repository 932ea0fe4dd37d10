package profile

type ListProfilesRequest struct {
	IncludeInactive bool
}

type ProfileResponse struct {
	ID            string  `json:"id"`
	DisplayName   string  `json:"display_name"`
	FullName      *string `json:"full_name"`
	PreferredName *string `json:"preferred_name"`
	Role          Role    `json:"role"`
	IsActive      bool    `json:"is_active"`
}

func NewProfileResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:            p.ID,
		DisplayName:   p.DisplayName(),
		FullName:      p.FullName,
		PreferredName: p.PreferredName,
		Role:          p.Role,
		IsActive:      p.IsActive,
	}
}
