package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/repository"
)

type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	seq     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.seq++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", f.seq)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, id string, active bool) error {
	user, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.IsActive = active
	return nil
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role domain.Role, _, _ int) ([]domain.User, error) {
	var out []domain.User
	for _, user := range f.byID {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

type fakePatientRepo struct {
	byID map[string]*domain.Patient
	seq  int
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{byID: map[string]*domain.Patient{}}
}

func (f *fakePatientRepo) Create(_ context.Context, patient *domain.Patient) error {
	f.seq++
	if patient.ID == "" {
		patient.ID = fmt.Sprintf("patient-%d", f.seq)
	}
	f.byID[patient.ID] = patient
	return nil
}

func (f *fakePatientRepo) Update(_ context.Context, patient *domain.Patient) error {
	if _, ok := f.byID[patient.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.byID[patient.ID] = patient
	return nil
}

func (f *fakePatientRepo) GetByID(_ context.Context, id string) (*domain.Patient, error) {
	patient, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return patient, nil
}

func (f *fakePatientRepo) GetByUserID(_ context.Context, userID string) (*domain.Patient, error) {
	for _, patient := range f.byID {
		if patient.UserID == userID {
			return patient, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePatientRepo) List(_ context.Context, _, _ int) ([]domain.Patient, error) {
	var out []domain.Patient
	for _, patient := range f.byID {
		out = append(out, *patient)
	}
	return out, nil
}

type fakeDoctorRepo struct {
	byID    map[string]*domain.Doctor
	windows map[string][]domain.AvailabilityWindow
	seq     int
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{byID: map[string]*domain.Doctor{}, windows: map[string][]domain.AvailabilityWindow{}}
}

func (f *fakeDoctorRepo) Create(_ context.Context, doctor *domain.Doctor) error {
	f.seq++
	if doctor.ID == "" {
		doctor.ID = fmt.Sprintf("doctor-%d", f.seq)
	}
	f.byID[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) Update(_ context.Context, doctor *domain.Doctor) error {
	if _, ok := f.byID[doctor.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.byID[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) GetByID(_ context.Context, id string) (*domain.Doctor, error) {
	doctor, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return doctor, nil
}

func (f *fakeDoctorRepo) GetByUserID(_ context.Context, userID string) (*domain.Doctor, error) {
	for _, doctor := range f.byID {
		if doctor.UserID == userID {
			return doctor, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeDoctorRepo) List(_ context.Context, specialty string, _, _ int) ([]domain.Doctor, error) {
	var out []domain.Doctor
	for _, doctor := range f.byID {
		if specialty == "" || doctor.Specialty == specialty {
			out = append(out, *doctor)
		}
	}
	return out, nil
}

func (f *fakeDoctorRepo) ReplaceAvailability(_ context.Context, doctorID string, windows []domain.AvailabilityWindow) error {
	f.windows[doctorID] = windows
	return nil
}

func (f *fakeDoctorRepo) ListAvailability(_ context.Context, doctorID string) ([]domain.AvailabilityWindow, error) {
	return f.windows[doctorID], nil
}

type fakeAppointmentRepo struct {
	byID map[string]*domain.Appointment
	seq  int
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{byID: map[string]*domain.Appointment{}}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) error {
	f.seq++
	if appt.ID == "" {
		appt.ID = fmt.Sprintf("appt-%d", f.seq)
	}
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	f.byID[appt.ID] = appt
	return nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, appt *domain.Appointment) error {
	if _, ok := f.byID[appt.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.byID[appt.ID] = appt
	return nil
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeAppointmentRepo) ListWithFilter(_ context.Context, filter repository.AppointmentFilter) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, appt := range f.byID {
		if filter.PatientID != nil && appt.PatientID != *filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && appt.DoctorID != *filter.DoctorID {
			continue
		}
		out = append(out, *appt)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListForDoctorBetween(_ context.Context, doctorID string, from, to time.Time) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, appt := range f.byID {
		if appt.DoctorID != doctorID || appt.Status == domain.AppointmentStatusCancelled {
			continue
		}
		if appt.StartsAt.Before(to) && appt.EndsAt.After(from) {
			out = append(out, *appt)
		}
	}
	return out, nil
}

type fakeResetRepo struct {
	byToken map[string]*repository.PasswordResetToken
	seq     int
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{byToken: map[string]*repository.PasswordResetToken{}}
}

func (f *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	f.seq++
	if token.ID == "" {
		token.ID = fmt.Sprintf("reset-%d", f.seq)
	}
	token.CreatedAt = time.Now()
	f.byToken[token.Token] = token
	return nil
}

func (f *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	token, ok := f.byToken[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return token, nil
}

func (f *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	for _, token := range f.byToken {
		if token.ID == id {
			now := time.Now()
			token.UsedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}
