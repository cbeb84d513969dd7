package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/asistencia-pro/internal/application/attendance"
	"github.com/tu-usuario/asistencia-pro/internal/domain/repository"
)

var _ attendance.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. El consumo del QR y el insert de asistencia confirman
// o se deshacen juntos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	challengeRepo repository.ChallengeRepository,
	attendanceRepo repository.AttendanceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	challengeRepo := NewChallengeRepository(tx)
	attendanceRepo := NewAttendanceRepository(tx)

	if err := fn(challengeRepo, attendanceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit transaction", err)
	}
	return nil
}
