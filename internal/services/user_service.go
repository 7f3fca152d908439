package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lumob/backend/internal/models"
)

// DefaultResetPassword is set when an admin resets a user's password
const DefaultResetPassword = "lumob@123"

// UserRepository is the interface that wraps usuario table data access
type UserRepository interface {
	GetByID(ctx context.Context, id int) (*models.Usuario, error)
	GetByUsername(ctx context.Context, username string) (*models.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*models.Usuario, error)
	List(ctx context.Context) ([]models.Usuario, error)
	Create(ctx context.Context, user *models.Usuario) error
	Update(ctx context.Context, user *models.Usuario) error
	ResetPassword(ctx context.Context, id int, passwordHash string) error
	Delete(ctx context.Context, id int) error
}

// ModuloRepository is the interface that wraps modulo and permission data access
type ModuloRepository interface {
	List(ctx context.Context) ([]models.Modulo, error)
	GetByNome(ctx context.Context, nome string) (*models.Modulo, error)
	Create(ctx context.Context, m *models.Modulo) error
	GetPermissoesUsuario(ctx context.Context, userID int) ([]string, error)
	GetPermissoesIDs(ctx context.Context, userID int) ([]int, error)
	ReplacePermissoes(ctx context.Context, userID int, moduloIDs []int) error
	GrantPermissao(ctx context.Context, userID, moduloID int) error
	RevokePermissao(ctx context.Context, userID, moduloID int) error
}

// userService manages accounts and their module permissions
type userService struct {
	userRepo   UserRepository
	moduloRepo ModuloRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, moduloRepo ModuloRepository) *userService {
	return &userService{
		userRepo:   userRepo,
		moduloRepo: moduloRepo,
	}
}

// List returns all user accounts
func (s *userService) List(ctx context.Context) ([]models.Usuario, error) {
	return s.userRepo.List(ctx)
}

// Get returns one user account
func (s *userService) Get(ctx context.Context, id int) (*models.Usuario, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, NotFound("Usuário não encontrado.")
	}
	return user, nil
}

// Create registers a new account after checking username and email uniqueness
func (s *userService) Create(ctx context.Context, req *models.CreateUsuarioRequest) (*models.Usuario, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, Invalid("Username, email e senha são obrigatórios.")
	}
	if req.Role == "" {
		req.Role = "comum"
	}

	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, Conflict(fmt.Sprintf("Nome de usuário '%s' já existe.", req.Username))
	}

	existing, err = s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, Conflict(fmt.Sprintf("E-mail '%s' já cadastrado.", req.Email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.Usuario{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Update changes an account. An empty password keeps the current one.
func (s *userService) Update(ctx context.Context, id int, req *models.UpdateUsuarioRequest) (*models.Usuario, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != "" && req.Username != user.Username {
		existing, err := s.userRepo.GetByUsername(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, Conflict(fmt.Sprintf("Nome de usuário '%s' já existe.", req.Username))
		}
		user.Username = req.Username
	}

	if req.Email != "" && req.Email != user.Email {
		existing, err := s.userRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, Conflict(fmt.Sprintf("E-mail '%s' já cadastrado.", req.Email))
		}
		user.Email = req.Email
	}

	if req.Role != "" {
		user.Role = req.Role
	}

	user.PasswordHash = ""
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// ResetPassword sets the account password back to the default
func (s *userService) ResetPassword(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultResetPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.ResetPassword(ctx, id, string(hash))
}

// Delete removes an account and its permissions. The acting admin cannot
// delete their own account.
func (s *userService) Delete(ctx context.Context, id, actingUserID int) error {
	if id == actingUserID {
		return Invalid("Você não pode excluir seu próprio usuário.")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// ListModulos returns the module catalog
func (s *userService) ListModulos(ctx context.Context) ([]models.Modulo, error) {
	return s.moduloRepo.List(ctx)
}

// CreateModulo registers a module after checking the name is free
func (s *userService) CreateModulo(ctx context.Context, m *models.Modulo) (*models.Modulo, error) {
	if m.Nome == "" {
		return nil, Invalid("Nome do módulo é obrigatório.")
	}

	existing, err := s.moduloRepo.GetByNome(ctx, m.Nome)
	if err != nil {
		return nil, fmt.Errorf("failed to check modulo nome: %w", err)
	}
	if existing != nil {
		return nil, Conflict(fmt.Sprintf("Módulo '%s' já existe.", m.Nome))
	}

	if err := s.moduloRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create modulo: %w", err)
	}
	return m, nil
}

// GetPermissoes returns the module ids granted to a user
func (s *userService) GetPermissoes(ctx context.Context, userID int) ([]int, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.moduloRepo.GetPermissoesIDs(ctx, userID)
}

// ReplacePermissoes swaps a user's granted modules for the given set.
// Takes effect on the user's next request.
func (s *userService) ReplacePermissoes(ctx context.Context, userID int, moduloIDs []int) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	return s.moduloRepo.ReplacePermissoes(ctx, userID, moduloIDs)
}

// GrantPermissao grants a single module to a user
func (s *userService) GrantPermissao(ctx context.Context, userID, moduloID int) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	return s.moduloRepo.GrantPermissao(ctx, userID, moduloID)
}

// RevokePermissao revokes a single module from a user
func (s *userService) RevokePermissao(ctx context.Context, userID, moduloID int) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	return s.moduloRepo.RevokePermissao(ctx, userID, moduloID)
}
