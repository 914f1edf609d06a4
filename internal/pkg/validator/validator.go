package validator

import (
	stderrors "errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/atl08-heightmap/internal/pkg/errors"
)

var validate *validator.Validate

// Имена колонок попадают в SQL, поэтому допускаем только идентификаторы
var columnPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("column", func(fl validator.FieldLevel) bool {
		return columnPattern.MatchString(fl.Field().String())
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// ValidateRequest валидирует структуру и превращает ошибки в INVALID_REQUEST
func ValidateRequest(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.ErrInvalidRequest.Wrap(err)
	}

	details := make(map[string]interface{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return errors.ErrInvalidRequest.WithDetails(details).Wrap(err)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
