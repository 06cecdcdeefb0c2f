package usecase

import (
	"context"
	"errors"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"
	"clinic-booking-service/internal/scheduling"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrWindowReversed    = errors.New("availability window must start before it ends")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	ReplaceAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.ReplaceAvailabilityRequest) (*dto.DoctorResponse, error)
	DeactivateDoctor(ctx context.Context, doctorID uuid.UUID) error
}

type doctorUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	profileRepo      repository.DoctorProfileRepository
	availabilityRepo repository.DoctorAvailabilityRepository
	auditService     service.AuditService
	directory        *service.DirectorySnapshotService
	defaultEndBuffer int
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.DoctorProfileRepository,
	availabilityRepo repository.DoctorAvailabilityRepository,
	auditService service.AuditService,
	directory *service.DirectorySnapshotService,
	defaultEndBuffer int,
) DoctorUsecase {
	return &doctorUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		availabilityRepo: availabilityRepo,
		auditService:     auditService,
		directory:        directory,
		defaultEndBuffer: defaultEndBuffer,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	windows, err := validateAvailability(req.Availability)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	active := true
	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDDoctor,
		IsActive: &active,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	endBuffer := req.EndBufferDays
	if endBuffer <= 0 {
		endBuffer = u.defaultEndBuffer
	}

	profile := &entity.DoctorProfile{
		UserID:          user.ID,
		Specialization:  req.Specialization,
		Biography:       req.Biography,
		StartBufferDays: req.StartBufferDays,
		EndBufferDays:   endBuffer,
	}

	if err := u.profileRepo.Create(tx, profile); err != nil {
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	if len(windows) > 0 {
		if err := u.availabilityRepo.ReplaceForDoctor(tx, user.ID, windows); err != nil {
			u.log.Warnf("Failed to create availability: %+v", err)
			return nil, err
		}
	}

	if err := u.auditService.LogCreate(ctx, tx, actorFrom(ctx), entity.AuditActionDoctorCreate, "doctor", user.ID.String(), profile); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.directory.Invalidate(ctx)

	return u.GetDoctor(ctx, user.ID)
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.profileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(profile), nil
}

// GetAllDoctors serves the roster from the directory snapshot so the
// doctor-picker step does not hit PostgreSQL on every request.
func (u *doctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.directory.GetDoctors(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.profileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	old := *profile

	if req.Email != "" {
		profile.User.Email = req.Email
	}
	if req.FullName != "" {
		profile.User.FullName = req.FullName
	}
	if req.IsActive != nil {
		profile.User.IsActive = req.IsActive
	}
	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.Biography != "" {
		profile.Biography = req.Biography
	}
	if req.StartBufferDays != nil {
		profile.StartBufferDays = *req.StartBufferDays
	}
	if req.EndBufferDays != nil {
		profile.EndBufferDays = *req.EndBufferDays
	}

	if err := u.userRepo.Update(tx, &profile.User); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update doctor account: %+v", err)
		return nil, err
	}

	if err := u.profileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorFrom(ctx), entity.AuditActionDoctorUpdate, "doctor", doctorID.String(), old, profile); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.directory.Invalidate(ctx)

	return u.GetDoctor(ctx, doctorID)
}

// ReplaceAvailability swaps a doctor's whole weekly template. The editor
// always submits the full template, so partial updates are not supported.
func (u *doctorUsecase) ReplaceAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.ReplaceAvailabilityRequest) (*dto.DoctorResponse, error) {
	windows, err := validateAvailability(req.Availability)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.profileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	if err := u.availabilityRepo.ReplaceForDoctor(tx, doctorID, windows); err != nil {
		u.log.Warnf("Failed to replace availability: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorFrom(ctx), entity.AuditActionAvailabilityUpdate, "availability", doctorID.String(), profile.Availability, windows); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.directory.Invalidate(ctx)

	return u.GetDoctor(ctx, doctorID)
}

// DeactivateDoctor takes a doctor off the roster without touching their
// appointment history.
func (u *doctorUsecase) DeactivateDoctor(ctx context.Context, doctorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.profileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if profile == nil {
		return ErrDoctorNotFound
	}

	inactive := false
	profile.User.IsActive = &inactive
	if err := u.userRepo.Update(tx, &profile.User); err != nil {
		u.log.Warnf("Failed to deactivate doctor: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorFrom(ctx), entity.AuditActionDoctorDelete, "doctor", doctorID.String(), profile); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.directory.Invalidate(ctx)

	return nil
}

// validateAvailability checks window times parse and run forward, then maps
// the inputs onto storage rows.
func validateAvailability(inputs []dto.AvailabilityInput) ([]entity.DoctorAvailability, error) {
	windows := make([]entity.DoctorAvailability, 0, len(inputs))
	for _, input := range inputs {
		start, err := scheduling.ParseTimeOfDay(input.StartTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		end, err := scheduling.ParseTimeOfDay(input.EndTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		if !input.Closed && start >= end {
			return nil, ErrWindowReversed
		}
		windows = append(windows, converter.AvailabilityInputToEntity(input))
	}
	return windows, nil
}
