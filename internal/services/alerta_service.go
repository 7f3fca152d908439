package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lumob/backend/internal/models"
)

// AlertaFuncionarioRepository wraps the funcionario reads the alert
// computations need. Window filtering happens here, not in SQL, so the
// queries stay simple and the date rules stay testable.
type AlertaFuncionarioRepository interface {
	ListAtivos(ctx context.Context) ([]models.Funcionario, error)
	ListAtivosComCNH(ctx context.Context) ([]models.AlertaDocumento, error)
}

// AlertaFeriasRepository wraps the ferias reads the alert computations need
type AlertaFeriasRepository interface {
	ListProgramadasEGozo(ctx context.Context) ([]models.Ferias, error)
}

// alertaService computes the HR expiration alerts
type alertaService struct {
	funcionarioRepo AlertaFuncionarioRepository
	feriasRepo      AlertaFeriasRepository
	now             func() time.Time
}

// NewAlertaService creates a new alerta service
func NewAlertaService(funcionarioRepo AlertaFuncionarioRepository, feriasRepo AlertaFeriasRepository) *alertaService {
	return &alertaService{
		funcionarioRepo: funcionarioRepo,
		feriasRepo:      feriasRepo,
		now:             time.Now,
	}
}

// midnight truncates a time to the start of its day
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole days from "from" to "to", negative when "to" is in the past
func daysBetween(from, to time.Time) int {
	return int(midnight(to).Sub(midnight(from)).Hours() / 24)
}

// inWindow reports whether today falls within [due-15d, due+7d], the
// notification window around a probation due date.
func inExperienciaWindow(today, due time.Time) bool {
	start := due.AddDate(0, 0, -15)
	end := due.AddDate(0, 0, 7)
	return !today.Before(start) && !today.After(end)
}

// Experiencia lists active funcionarios whose 30-day or 90-day probation
// period due date falls inside the notification window. When the 90-day
// window is open it supersedes the 30-day alert for the same funcionario.
// Sorted by due date, soonest first.
func (s *alertaService) Experiencia(ctx context.Context) ([]models.AlertaExperiencia, error) {
	funcionarios, err := s.funcionarioRepo.ListAtivos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list funcionarios ativos: %w", err)
	}

	today := midnight(s.now())
	var alertas []models.AlertaExperiencia

	for _, f := range funcionarios {
		venc30 := midnight(f.DataAdmissao).AddDate(0, 0, 30)
		venc90 := midnight(f.DataAdmissao).AddDate(0, 0, 90)

		switch {
		case inExperienciaWindow(today, venc90):
			alertas = append(alertas, models.AlertaExperiencia{
				Matricula:      f.Matricula,
				NomeCompleto:   f.NomeCompleto,
				DataAdmissao:   f.DataAdmissao,
				NomeCargo:      f.NomeCargo,
				Status:         f.Status,
				TipoVencimento: models.Vencimento90Dias,
				DataVencimento: venc90,
				DiasRestantes:  daysBetween(today, venc90),
			})
		case inExperienciaWindow(today, venc30):
			alertas = append(alertas, models.AlertaExperiencia{
				Matricula:      f.Matricula,
				NomeCompleto:   f.NomeCompleto,
				DataAdmissao:   f.DataAdmissao,
				NomeCargo:      f.NomeCargo,
				Status:         f.Status,
				TipoVencimento: models.Vencimento30Dias,
				DataVencimento: venc30,
				DiasRestantes:  daysBetween(today, venc30),
			})
		}
	}

	sort.Slice(alertas, func(i, j int) bool {
		return alertas[i].DataVencimento.Before(alertas[j].DataVencimento)
	})
	return alertas, nil
}

// Documentos lists active funcionarios whose CNH validity date falls inside
// the [validade-30d, validade+7d] notification window.
func (s *alertaService) Documentos(ctx context.Context) ([]models.AlertaDocumento, error) {
	docs, err := s.funcionarioRepo.ListAtivosComCNH(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list CNHs: %w", err)
	}

	today := midnight(s.now())
	var alertas []models.AlertaDocumento

	for _, d := range docs {
		validade := midnight(d.DataVencimento)
		start := validade.AddDate(0, 0, -30)
		end := validade.AddDate(0, 0, 7)
		if today.Before(start) || today.After(end) {
			continue
		}
		d.DataVencimento = validade
		d.DiasRestantes = daysBetween(today, validade)
		alertas = append(alertas, d)
	}
	return alertas, nil
}

// Ferias lists ferias Programadas starting within the next 60 days and
// ferias in Gozo that have not finished yet.
func (s *alertaService) Ferias(ctx context.Context) ([]models.AlertaFerias, error) {
	ferias, err := s.feriasRepo.ListProgramadasEGozo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ferias: %w", err)
	}

	today := midnight(s.now())
	limite := today.AddDate(0, 0, 60)
	var alertas []models.AlertaFerias

	for _, f := range ferias {
		switch f.StatusFerias {
		case models.FeriasProgramada:
			if f.DataInicioGozo == nil {
				continue
			}
			inicio := midnight(*f.DataInicioGozo)
			if inicio.Before(today) || inicio.After(limite) {
				continue
			}
			alertas = append(alertas, models.AlertaFerias{
				Ferias:         f,
				DataReferencia: inicio,
				DiasRestantes:  daysBetween(today, inicio),
			})
		case models.FeriasGozo:
			if f.DataFimGozo == nil {
				continue
			}
			fim := midnight(*f.DataFimGozo)
			if fim.Before(today) {
				continue
			}
			alertas = append(alertas, models.AlertaFerias{
				Ferias:         f,
				DataReferencia: fim,
				DiasRestantes:  daysBetween(today, fim),
			})
		}
	}

	sort.Slice(alertas, func(i, j int) bool {
		return alertas[i].DataReferencia.Before(alertas[j].DataReferencia)
	})
	return alertas, nil
}
