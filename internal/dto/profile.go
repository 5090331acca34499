package dto

type ProfileResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FamilyID  string `json:"family_id"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type InviteResponse struct {
	Member          ProfileResponse `json:"member"`
	RegistrationURL string          `json:"registration_url"`
}

type FamilyResponse struct {
	FamilyID string            `json:"family_id"`
	Members  []ProfileResponse `json:"members"`
}
