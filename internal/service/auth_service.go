package service

import (
	"context"
	"errors"
	"time"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims travel inside the JWT issued at login.
type Claims struct {
	EmpleadoID int64  `json:"empleado_id"`
	Usuario    string `json:"usuario"`
	Rol        string `json:"rol"`
	jwt.RegisteredClaims
}

type SesionIniciada struct {
	Token    string          `json:"token"`
	Empleado *model.Empleado `json:"empleado"`
}

type DatosEmpleado struct {
	Nombres    string
	Apellidos  string
	Usuario    string
	Contrasena string
	Rol        string
}

type AuthService interface {
	Login(ctx context.Context, usuario, contrasena string) (*SesionIniciada, error)
	ValidarToken(token string) (*Claims, error)

	ListarEmpleados(ctx context.Context) ([]model.Empleado, error)
	DetalleEmpleado(ctx context.Context, id int64) (*model.Empleado, error)
	CrearEmpleado(ctx context.Context, in DatosEmpleado) (*model.Empleado, error)
	ActualizarEmpleado(ctx context.Context, id int64, in DatosEmpleado) (*model.Empleado, error)
	CambiarEstadoEmpleado(ctx context.Context, id int64, estado int) error
	EliminarEmpleado(ctx context.Context, id int64) error
}

type authService struct {
	repo      repository.EmpleadoRepository
	secret    []byte
	expiresIn time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo repository.EmpleadoRepository, secret string, expirationHours int, log zerolog.Logger) AuthService {
	return &authService{
		repo:      repo,
		secret:    []byte(secret),
		expiresIn: time.Duration(expirationHours) * time.Hour,
		log:       log.With().Str("service", "auth").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, usuario, contrasena string) (*SesionIniciada, error) {
	emp, err := s.repo.FindByUsuario(ctx, usuario)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCredenciales
	}
	if err != nil {
		return nil, err
	}
	if emp.Estado != model.EstadoActivo {
		return nil, ErrUsuarioInactivo
	}
	if bcrypt.CompareHashAndPassword([]byte(emp.Contrasena), []byte(contrasena)) != nil {
		return nil, ErrCredenciales
	}

	now := time.Now()
	claims := Claims{
		EmpleadoID: emp.ID,
		Usuario:    emp.Usuario,
		Rol:        emp.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	emp.Contrasena = ""
	s.log.Info().Str("usuario", usuario).Str("rol", emp.Rol).Msg("login exitoso")
	return &SesionIniciada{Token: token, Empleado: emp}, nil
}

func (s *authService) ValidarToken(raw string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrCredenciales
	}
	return &claims, nil
}

func (s *authService) ListarEmpleados(ctx context.Context) ([]model.Empleado, error) {
	empleados, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range empleados {
		empleados[i].Contrasena = ""
	}
	return empleados, nil
}

func (s *authService) DetalleEmpleado(ctx context.Context, id int64) (*model.Empleado, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUsuarioNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	emp.Contrasena = ""
	return emp, nil
}

func (s *authService) CrearEmpleado(ctx context.Context, in DatosEmpleado) (*model.Empleado, error) {
	if in.Rol != model.RolAdministrador && in.Rol != model.RolAyudante {
		return nil, ErrRolInvalido
	}
	if _, err := s.repo.FindByUsuario(ctx, in.Usuario); err == nil {
		return nil, ErrUsuarioDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// New accounts without an explicit password start with the username
	// as password; the employee changes it on first use.
	if in.Contrasena == "" {
		in.Contrasena = in.Usuario
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	emp := &model.Empleado{
		Nombres:    in.Nombres,
		Apellidos:  in.Apellidos,
		Usuario:    in.Usuario,
		Contrasena: string(hash),
		Rol:        in.Rol,
		Estado:     model.EstadoActivo,
	}
	if err := s.repo.Create(ctx, emp); err != nil {
		return nil, err
	}
	s.log.Info().Int64("empleado_id", emp.ID).Str("usuario", emp.Usuario).Msg("empleado creado")
	emp.Contrasena = ""
	return emp, nil
}

func (s *authService) ActualizarEmpleado(ctx context.Context, id int64, in DatosEmpleado) (*model.Empleado, error) {
	if in.Rol != model.RolAdministrador && in.Rol != model.RolAyudante {
		return nil, ErrRolInvalido
	}
	emp, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUsuarioNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	if otro, err := s.repo.FindByUsuario(ctx, in.Usuario); err == nil && otro.ID != id {
		return nil, ErrUsuarioDuplicado
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	emp.Nombres = in.Nombres
	emp.Apellidos = in.Apellidos
	emp.Usuario = in.Usuario
	emp.Rol = in.Rol
	if in.Contrasena != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Contrasena), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		emp.Contrasena = string(hash)
	}
	if err := s.repo.Update(ctx, emp); err != nil {
		return nil, err
	}
	emp.Contrasena = ""
	return emp, nil
}

func (s *authService) CambiarEstadoEmpleado(ctx context.Context, id int64, estado int) error {
	if estado != model.EstadoActivo && estado != model.EstadoInactivo {
		return ErrRolInvalido
	}
	emp, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUsuarioNoEncontrado
	}
	if err != nil {
		return err
	}
	emp.Estado = estado
	return s.repo.Update(ctx, emp)
}

func (s *authService) EliminarEmpleado(ctx context.Context, id int64) error {
	emp, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUsuarioNoEncontrado
	}
	if err != nil {
		return err
	}
	emp.Estado = model.EstadoEliminado
	return s.repo.Update(ctx, emp)
}
