package spatial

import "github.com/go-playground/validator/v10"

var validate = validator.New()

type kQuery struct {
	K int `validate:"gte=1"`
}

// ValidateK reports ErrInvalidK when k <= 0.
func ValidateK(k int) error {
	if err := validate.Struct(kQuery{K: k}); err != nil {
		return ErrInvalidK
	}
	return nil
}

type radiusQuery struct {
	Radius float64 `validate:"gte=0"`
}

// ValidateRadius reports ErrInvalidRadius for a negative radius.
func ValidateRadius(radius float64) error {
	if err := validate.Struct(radiusQuery{Radius: radius}); err != nil {
		return ErrInvalidRadius
	}
	return nil
}

type capacityQuery struct {
	MaxChildren int `validate:"gte=2"`
}

// ValidateCapacity reports ErrInvalidCapacity when maxChildren < 2.
func ValidateCapacity(maxChildren int) error {
	if err := validate.Struct(capacityQuery{MaxChildren: maxChildren}); err != nil {
		return ErrInvalidCapacity
	}
	return nil
}
