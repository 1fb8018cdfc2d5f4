package dto

// UserListRequest filters the users listing.
type UserListRequest struct {
	ListParams
	Role        string `form:"role"`
	Active      string `form:"active"`
	Email       string `form:"email"`
	Search      string `form:"search"`
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
}

// CreateUserRequest creates a user account from the admin surface.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2,max=120"`
	Role     string `json:"role" validate:"required,oneof=ADMIN EMPLOYER CANDIDATE"`
}
