package validator

import (
	"ctchen222/tictactoe-term/internal/bot"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// opponent accepts any name bot.ParseOpponent understands.
	if err := validate.RegisterValidation("opponent", validateOpponent); err != nil {
		panic(err)
	}
}

func validateOpponent(fl validator.FieldLevel) bool {
	_, err := bot.ParseOpponent(fl.Field().String())
	return err == nil
}

func GetValidator() *validator.Validate {
	return validate
}
