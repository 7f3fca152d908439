package models

// Roles conhecidos da tabela usuarios. "admin" ignora permissões de módulo.
const (
	RoleAdmin = "admin"
)

// Usuario representa uma conta de acesso ao sistema
type Usuario struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never serialize password hash
	Role         string `json:"role"`
}

// Modulo é uma unidade de permissão nomeada (Pessoal, Obras, Seguranca, Usuarios)
type Modulo struct {
	ID   int    `json:"id_modulo"`
	Nome string `json:"nome_modulo"`
}

// Identity é o usuário autenticado da requisição, com suas permissões de módulo
type Identity struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Role     string   `json:"role"`
	Modulos  []string `json:"modulos"`
}

// PodeAcessar reports whether the identity may access the named module.
// Admin sempre tem acesso total, ignorando permissões explícitas.
func (i Identity) PodeAcessar(modulo string) bool {
	if i.Role == RoleAdmin {
		return true
	}
	for _, m := range i.Modulos {
		if m == modulo {
			return true
		}
	}
	return false
}

// LoginRequest is the login payload (JSON body or form fields)
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the successful login payload: the signed token, the
// authenticated account and the modules it may access
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	User        *Usuario `json:"user"`
	Modulos     []string `json:"modulos"`
}

// CreateUsuarioRequest is the payload for creating a user
type CreateUsuarioRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUsuarioRequest is the payload for updating a user.
// Password vazio mantém a senha atual.
type UpdateUsuarioRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
