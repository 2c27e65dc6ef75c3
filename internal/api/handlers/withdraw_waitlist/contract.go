package withdraw_waitlist

import (
	"context"

	withdrawWaitlist "github.com/m04kA/SMC-ScheduleService/internal/usecase/withdraw_waitlist"
)

type WithdrawWaitlistUseCase interface {
	Execute(ctx context.Context, req *withdrawWaitlist.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
