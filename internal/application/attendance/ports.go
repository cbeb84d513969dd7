package attendance

import (
	"context"

	"github.com/tu-usuario/asistencia-pro/internal/domain/repository"
)

// TxRunner ejecuta el callback dentro de una transacción con repos atados
// a ella. Para el QR, el consumo condicional y el insert de asistencia
// deben confirmar o deshacerse juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		challengeRepo repository.ChallengeRepository,
		attendanceRepo repository.AttendanceRepository,
	) error) error
}
