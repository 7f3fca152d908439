package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupFuncionarioTestRepository(t *testing.T) (*funcionarioRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	repo := NewFuncionarioRepository(db, zap.NewNop())
	return repo, mock, func() { db.Close() }
}

func TestFuncionarioRepository_NextMatricula(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      string
		wantErr   bool
	}{
		{
			name: "increments the highest existing matricula",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"Matricula"}).AddRow("MATR042")
				mock.ExpectQuery(`SELECT Matricula FROM funcionarios(.|\n)+LIMIT 1`).
					WillReturnRows(rows)
			},
			want: "MATR043",
		},
		{
			name: "starts at MATR001 on an empty table",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT Matricula FROM funcionarios(.|\n)+LIMIT 1`).
					WillReturnRows(sqlmock.NewRows([]string{"Matricula"}))
			},
			want: "MATR001",
		},
		{
			name: "keeps zero padding past three digits",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"Matricula"}).AddRow("MATR999")
				mock.ExpectQuery(`SELECT Matricula FROM funcionarios(.|\n)+LIMIT 1`).
					WillReturnRows(rows)
			},
			want: "MATR1000",
		},
		{
			name: "query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT Matricula FROM funcionarios(.|\n)+LIMIT 1`).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, closeDB := setupFuncionarioTestRepository(t)
			defer closeDB()

			tt.setupMock(mock)

			got, err := repo.NextMatricula(context.Background())
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

func TestFuncionarioRepository_ExistsCpf(t *testing.T) {
	tests := []struct {
		name             string
		cpf              string
		excludeMatricula string
		setupMock        func(mock sqlmock.Sqlmock)
		want             bool
	}{
		{
			name: "cpf already registered",
			cpf:  "123.456.789-00",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
				mock.ExpectQuery(`SELECT EXISTS\(SELECT \* FROM funcionarios_documentos WHERE Cpf_Numero = \?\)`).
					WithArgs("123.456.789-00").
					WillReturnRows(rows)
			},
			want: true,
		},
		{
			name:             "own record excluded on update",
			cpf:              "123.456.789-00",
			excludeMatricula: "MATR007",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(false)
				mock.ExpectQuery(`SELECT EXISTS\(SELECT \* FROM funcionarios_documentos WHERE Cpf_Numero = \? AND Matricula_Funcionario != \?\)`).
					WithArgs("123.456.789-00", "MATR007").
					WillReturnRows(rows)
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, closeDB := setupFuncionarioTestRepository(t)
			defer closeDB()

			tt.setupMock(mock)

			got, err := repo.ExistsCpf(context.Background(), tt.cpf, tt.excludeMatricula)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFuncionarioRepository_StatusCounts(t *testing.T) {
	repo, mock, closeDB := setupFuncionarioTestRepository(t)
	defer closeDB()

	rows := sqlmock.NewRows([]string{"Status", "Total"}).
		AddRow("Ativo", 12).
		AddRow("Ferias", 2).
		AddRow("Inativo", 3)
	mock.ExpectQuery(`SELECT Status, COUNT\(\*\) AS Total FROM funcionarios GROUP BY Status`).
		WillReturnRows(rows)

	got, err := repo.StatusCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Ativo": 12, "Ferias": 2, "Inativo": 3}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
