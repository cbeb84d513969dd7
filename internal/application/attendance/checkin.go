package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/asistencia-pro/internal/application/challenge"
	"github.com/tu-usuario/asistencia-pro/internal/application/dto"
	"github.com/tu-usuario/asistencia-pro/internal/application/scope"
	"github.com/tu-usuario/asistencia-pro/internal/domain"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
	"github.com/tu-usuario/asistencia-pro/internal/domain/repository"
)

// CheckInUseCase registra asistencia: resuelve el scope del empleado,
// valida el código enviado y escribe el evento de asistencia. Para el QR
// el consumo y el insert van en la misma transacción.
type CheckInUseCase struct {
	resolver *scope.Resolver
	tx       TxRunner
	cfg      challenge.Config
	now      func() time.Time
}

// NewCheckInUseCase construye el caso de uso de check-in.
func NewCheckInUseCase(resolver *scope.Resolver, tx TxRunner, cfg challenge.Config) *CheckInUseCase {
	return &CheckInUseCase{resolver: resolver, tx: tx, cfg: cfg, now: time.Now}
}

// WithNow inyecta el reloj (tests).
func (uc *CheckInUseCase) WithNow(now func() time.Time) *CheckInUseCase {
	uc.now = now
	return uc
}

// CheckIn valida (locationID, kind, value) para la identidad y registra la
// asistencia. Ubicación fuera del scope → ErrForbidden, que el caller debe
// presentar como acceso denegado, distinto de un código incorrecto.
func (uc *CheckInUseCase) CheckIn(ctx context.Context, identityID string, role entity.Role, companyID string, in dto.CheckInRequest) (*dto.CheckInResponse, error) {
	kind, ok := entity.ParseChallengeKind(in.Kind)
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	sc, err := uc.resolver.Resolve(ctx, identityID, role, companyID)
	if err != nil {
		return nil, err
	}
	// Empleado sin asignación: scope vacío, operación inaplicable.
	if sc.Empty() || !sc.Allows(in.LocationID) {
		return nil, domain.ErrForbidden
	}

	// Dentro de la transacción no se reintenta (un fallo la invalida
	// completa); el reintento acotado envuelve la transacción entera.
	txCfg := uc.cfg
	txCfg.StoreRetries = 0

	var att *entity.Attendance
	attempt := func() error {
		return uc.tx.Run(ctx, func(chRepo repository.ChallengeRepository, attRepo repository.AttendanceRepository) error {
			v := challenge.NewValidator(chRepo, txCfg).WithNow(uc.now)
			acc, err := v.Validate(ctx, in.LocationID, kind, in.Value, identityID)
			if err != nil {
				return err
			}
			att = &entity.Attendance{
				ID:          uuid.New().String(),
				IdentityID:  acc.IdentityID,
				LocationID:  acc.LocationID,
				Kind:        acc.Kind,
				CheckedInAt: acc.ValidatedAt,
			}
			return attRepo.Create(ctx, att)
		})
	}

	err = attempt()
	for retries := uc.cfg.StoreRetries; retries > 0 && errors.Is(err, domain.ErrStoreUnavailable); retries-- {
		err = attempt()
	}
	if err != nil {
		return nil, err
	}

	return &dto.CheckInResponse{
		AttendanceID: att.ID,
		LocationID:   att.LocationID,
		Kind:         string(att.Kind),
		CheckedInAt:  att.CheckedInAt,
	}, nil
}
