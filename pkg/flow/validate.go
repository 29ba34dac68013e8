package flow

import (
	"errors"
	"sync"

	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/multierr"
)

const (
	msgBlankName    = "Port name cannot be blank."
	msgInvalidTasks = "Concurrent tasks must be a positive integer."
	msgMissingID    = "Port id must be specified."
	msgInvalidState = "Scheduled state must be one of RUNNING, STOPPED or DISABLED."
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
	})
	return validate
}

// Validate checks the fields present in an update and collects every failure.
// The returned error is a *domain.ValidationError, or nil.
func Validate(update domain.PortUpdate) error {
	v := validatorInstance()
	var err error

	if v.Var(update.ID, "required") != nil {
		err = multierr.Append(err, errors.New(msgMissingID))
	}
	if update.Name != nil && v.Var(*update.Name, "notblank") != nil {
		err = multierr.Append(err, errors.New(msgBlankName))
	}
	if update.ConcurrentlySchedulableTaskCount != nil {
		n, perr := update.ConcurrentlySchedulableTaskCount.Int()
		if perr != nil || v.Var(n, "gt=0") != nil {
			err = multierr.Append(err, errors.New(msgInvalidTasks))
		}
	}

	if update.State != nil && v.Var(string(*update.State), "oneof=RUNNING STOPPED DISABLED") != nil {
		err = multierr.Append(err, errors.New(msgInvalidState))
	}

	errs := multierr.Errors(err)
	if len(errs) == 0 {
		return nil
	}
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Error()
	}
	return &domain.ValidationError{Messages: messages}
}
