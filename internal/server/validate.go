package server

import (
	"sync"

	"B3Radar/internal/universe"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators adds the ticker tags to gin's validator: b3ticker is the strict
// watchlist format, b3lookup also admits every universe ticker.
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("b3ticker", validB3Ticker)
			_ = v.RegisterValidation("b3lookup", validB3Lookup)
		}
	})
}

func validB3Ticker(fl validator.FieldLevel) bool {
	return universe.ValidateTicker(universe.Normalize(fl.Field().String())) == nil
}

func validB3Lookup(fl validator.FieldLevel) bool {
	return universe.ValidateLookup(universe.Normalize(fl.Field().String())) == nil
}
