package dto

type CategoryRequest struct {
	Name  string `json:"name" validate:"required,max=64"`
	Color string `json:"color" validate:"omitempty,len=7,hexcolor"`
	Icon  string `json:"icon" validate:"omitempty,max=32"`
}

// CategoryUpdateRequest is a partial update; empty fields keep the stored value.
type CategoryUpdateRequest struct {
	Name  string `json:"name" validate:"omitempty,max=64"`
	Color string `json:"color" validate:"omitempty,len=7,hexcolor"`
	Icon  string `json:"icon" validate:"omitempty,max=32"`
}

type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}
