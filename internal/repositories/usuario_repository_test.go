package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lumob/backend/internal/models"
)

func setupUsuarioTestRepository(t *testing.T) (*usuarioRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	repo := NewUsuarioRepository(db, zap.NewNop())
	return repo, mock, func() { db.Close() }
}

func TestUsuarioRepository_GetByUsername(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		setupMock func(mock sqlmock.Sqlmock)
		want      *models.Usuario
		wantErr   bool
	}{
		{
			name:     "found",
			username: "maria",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "username", "password", "role", "email"}).
					AddRow(3, "maria", "$2a$10$hash", "comum", "maria@lumob.com.br")
				mock.ExpectQuery(`SELECT id, username, password, role, email FROM usuarios WHERE username = \?`).
					WithArgs("maria").
					WillReturnRows(rows)
			},
			want: &models.Usuario{
				ID:           3,
				Username:     "maria",
				Email:        "maria@lumob.com.br",
				PasswordHash: "$2a$10$hash",
				Role:         "comum",
			},
		},
		{
			name:     "not found returns nil without error",
			username: "ninguem",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, password, role, email FROM usuarios WHERE username = \?`).
					WithArgs("ninguem").
					WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "role", "email"}))
			},
			want: nil,
		},
		{
			name:     "query error",
			username: "maria",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, password, role, email FROM usuarios WHERE username = \?`).
					WithArgs("maria").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, closeDB := setupUsuarioTestRepository(t)
			defer closeDB()

			tt.setupMock(mock)

			got, err := repo.GetByUsername(context.Background(), tt.username)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUsuarioRepository_Create(t *testing.T) {
	repo, mock, closeDB := setupUsuarioTestRepository(t)
	defer closeDB()

	mock.ExpectExec(`INSERT INTO usuarios \(username, password, role, email\) VALUES \(\?, \?, \?, \?\)`).
		WithArgs("joao", "$2a$10$hash", "comum", "joao@lumob.com.br").
		WillReturnResult(sqlmock.NewResult(8, 1))

	u := &models.Usuario{
		Username:     "joao",
		Email:        "joao@lumob.com.br",
		PasswordHash: "$2a$10$hash",
		Role:         "comum",
	}
	err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, 8, u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsuarioRepository_Update(t *testing.T) {
	tests := []struct {
		name      string
		usuario   *models.Usuario
		setupMock func(mock sqlmock.Sqlmock)
	}{
		{
			name: "without password keeps stored hash",
			usuario: &models.Usuario{
				ID:       3,
				Username: "maria",
				Email:    "maria@lumob.com.br",
				Role:     "comum",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE usuarios SET username = \?, email = \?, role = \? WHERE id = \?`).
					WithArgs("maria", "maria@lumob.com.br", "comum", 3).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "with password updates hash",
			usuario: &models.Usuario{
				ID:           3,
				Username:     "maria",
				Email:        "maria@lumob.com.br",
				Role:         "admin",
				PasswordHash: "$2a$10$novo",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE usuarios SET username = \?, email = \?, role = \?, password = \? WHERE id = \?`).
					WithArgs("maria", "maria@lumob.com.br", "admin", "$2a$10$novo", 3).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, closeDB := setupUsuarioTestRepository(t)
			defer closeDB()

			tt.setupMock(mock)

			err := repo.Update(context.Background(), tt.usuario)
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUsuarioRepository_ResetPassword(t *testing.T) {
	repo, mock, closeDB := setupUsuarioTestRepository(t)
	defer closeDB()

	mock.ExpectExec(`UPDATE usuarios SET password = \? WHERE id = \?`).
		WithArgs("$2a$10$reset", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ResetPassword(context.Background(), 5, "$2a$10$reset")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsuarioRepository_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "removes permissions then user",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM permissoes_usuarios WHERE ID_Usuario = \?`).
					WithArgs(4).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec(`DELETE FROM usuarios WHERE id = \?`).
					WithArgs(4).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "rolls back when user delete fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM permissoes_usuarios WHERE ID_Usuario = \?`).
					WithArgs(4).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`DELETE FROM usuarios WHERE id = \?`).
					WithArgs(4).
					WillReturnError(errors.New("deadlock"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, closeDB := setupUsuarioTestRepository(t)
			defer closeDB()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), 4)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUsuarioRepository_List(t *testing.T) {
	repo, mock, closeDB := setupUsuarioTestRepository(t)
	defer closeDB()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "role"}).
		AddRow(1, "admin", "admin@lumob.com.br", "admin").
		AddRow(3, "maria", nil, "comum")
	mock.ExpectQuery(`SELECT id, username, email, role FROM usuarios ORDER BY username`).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "admin", got[0].Username)
	assert.Equal(t, "maria", got[1].Username)
	assert.Empty(t, got[1].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
