package dto

import "time"

// CreateUserRequest entrada para que un admin cree una cuenta
// (password en texto, se hashea en el use case).
type CreateUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"` // conciliador | tercero
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Cedula      string `json:"cedula"`
	PhoneNumber string `json:"phoneNumber"`
	NumeroSicac string `json:"numeroSicac"`
}

// UpdateUserRequest actualización parcial por admin. No tiene campo de
// contraseña: cualquier "password" en el JSON se descarta al deserializar;
// los cambios de contraseña van por su ruta dedicada.
type UpdateUserRequest struct {
	Email       *string `json:"email"`
	Role        *string `json:"role"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Cedula      *string `json:"cedula"`
	PhoneNumber *string `json:"phoneNumber"`
	NumeroSicac *string `json:"numeroSicac"`
	IsActive    *bool   `json:"isActive"`
}

// SetPasswordRequest asignación de contraseña por admin (sin verificar la actual).
type SetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ChangePasswordRequest cambio de contraseña propio.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse proyección externa de una cuenta: nunca incluye la contraseña.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Cedula      string    `json:"cedula"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	NumeroSicac string    `json:"numeroSicac,omitempty"`
	IsActive    bool      `json:"isActive"`
	PictureURL  string    `json:"pictureUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LoginResponse salida con token JWT y la proyección del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserListResponse página de usuarios con metadatos.
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
	HasMore    bool           `json:"hasMore"`
}
