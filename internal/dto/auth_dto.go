package dto

type LoginRequest struct {
	Usuario    string `json:"usuario" validate:"required,max=50"`
	Contrasena string `json:"contrasena" validate:"required"`
}

type EmpleadoRequest struct {
	Nombres    string `json:"nombres" validate:"required,max=100"`
	Apellidos  string `json:"apellidos" validate:"required,max=100"`
	Usuario    string `json:"usuario" validate:"required,min=3,max=50"`
	Contrasena string `json:"contrasena" validate:"omitempty,min=6"`
	Rol        string `json:"rol" validate:"required,oneof=Administrador Ayudante"`
}
