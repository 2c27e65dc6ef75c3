package submit_appointments

import (
	"context"

	submitAppointments "github.com/m04kA/SMC-ScheduleService/internal/usecase/submit_appointments"
)

type SubmitAppointmentsUseCase interface {
	Execute(ctx context.Context, req *submitAppointments.Request) (*submitAppointments.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
