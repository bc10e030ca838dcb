package providers

import (
	"fmt"
	"studytrack/internal/models"
	"studytrack/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors.ErrOrNil()
	}
	if t := cv.conf.Notifications.DefaultEventTime; t != "" {
		if _, err := models.ParseClock(t); err != nil {
			return fmt.Errorf("notifications.defaultEventTime: %w", err)
		}
	}
	return nil
}
