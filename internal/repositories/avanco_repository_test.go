package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lumob/backend/internal/models"
)

func setupAvancoTestRepository(t *testing.T) (*avancoRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewAvancoRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestAvancoRepository_Create(t *testing.T) {
	dia := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		avanco      *models.AvancoFisico
		setupMock   func(sqlmock.Sqlmock)
		expectLimit bool
		expectError bool
	}{
		{
			name:   "success under the cap",
			avanco: &models.AvancoFisico{IDObra: 7, Percentual: 40, DataAvanco: dia},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT COALESCE\(SUM\(Percentual_Avanco_Fisico\), 0\)`).
					WithArgs(7, 0).
					WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(60.0))
				mock.ExpectExec(`INSERT INTO avancos_fisicos`).
					WithArgs(7, 40.0, dia).
					WillReturnResult(sqlmock.NewResult(12, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:   "exactly 100 accepted",
			avanco: &models.AvancoFisico{IDObra: 7, Percentual: 40, DataAvanco: dia},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT COALESCE\(SUM\(Percentual_Avanco_Fisico\), 0\)`).
					WithArgs(7, 0).
					WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(60.0))
				mock.ExpectExec(`INSERT INTO avancos_fisicos`).
					WithArgs(7, 40.0, dia).
					WillReturnResult(sqlmock.NewResult(13, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:   "cap exceeded rolls back before insert",
			avanco: &models.AvancoFisico{IDObra: 7, Percentual: 41, DataAvanco: dia},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT COALESCE\(SUM\(Percentual_Avanco_Fisico\), 0\)`).
					WithArgs(7, 0).
					WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(60.0))
				mock.ExpectRollback()
			},
			expectLimit: true,
		},
		{
			name:   "database error on insert",
			avanco: &models.AvancoFisico{IDObra: 7, Percentual: 10, DataAvanco: dia},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT COALESCE\(SUM\(Percentual_Avanco_Fisico\), 0\)`).
					WithArgs(7, 0).
					WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(0.0))
				mock.ExpectExec(`INSERT INTO avancos_fisicos`).
					WithArgs(7, 10.0, dia).
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupAvancoTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.avanco)

			switch {
			case tt.expectLimit:
				var limite *ErrLimiteAvanco
				require.Error(t, err)
				require.True(t, errors.As(err, &limite))
				assert.Equal(t, 7, limite.IDObra)
				assert.Equal(t, 60.0, limite.Acumulado)
				assert.Equal(t, 41.0, limite.Novo)
			case tt.expectError:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.NotZero(t, tt.avanco.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAvancoRepository_Update_ExcludesOwnRecord(t *testing.T) {
	repo, mock, cleanup := setupAvancoTestRepository(t)
	defer cleanup()

	dia := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	// the record being replaced must not count toward the accumulated sum
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(Percentual_Avanco_Fisico\), 0\)`).
		WithArgs(7, 3).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(55.0))
	mock.ExpectExec(`UPDATE avancos_fisicos`).
		WithArgs(7, 45.0, dia, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &models.AvancoFisico{
		ID: 3, IDObra: 7, Percentual: 45, DataAvanco: dia,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvancoRepository_GetByID(t *testing.T) {
	repo, mock, cleanup := setupAvancoTestRepository(t)
	defer cleanup()

	dia := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"ID_Avancos_Fisicos", "ID_Obras", "Percentual_Avanco_Fisico", "Data_Avanco",
		"Numero_Obra", "Nome_Obra",
	}).AddRow(3, 7, 25.5, dia, "OBR-007", "Subestação Leste")

	mock.ExpectQuery(`SELECT(.|\n)+FROM avancos_fisicos`).
		WithArgs(3).
		WillReturnRows(rows)

	a, err := repo.GetByID(context.Background(), 3)

	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, 7, a.IDObra)
	assert.Equal(t, 25.5, a.Percentual)
	assert.Equal(t, "OBR-007", a.NumeroObra)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvancoRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupAvancoTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT(.|\n)+FROM avancos_fisicos`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{
			"ID_Avancos_Fisicos", "ID_Obras", "Percentual_Avanco_Fisico", "Data_Avanco",
			"Numero_Obra", "Nome_Obra",
		}))

	a, err := repo.GetByID(context.Background(), 99)

	require.NoError(t, err)
	assert.Nil(t, a)
	assert.NoError(t, mock.ExpectationsWereMet())
}
