package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallblue4/tustockya-backend/internal/apierror"
	"github.com/wallblue4/tustockya-backend/internal/middleware"
	"github.com/wallblue4/tustockya-backend/internal/service"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps domain errors to HTTP statuses. Unknown errors become a
// masked 500; the ErrorHandler middleware logs the original.
func respondError(c *gin.Context, err error) {
	var insufficient *service.InsufficientStockError
	var mismatch *service.PaymentMismatchError
	var transition *service.InvalidTransitionError
	var invalid *service.ValidationError

	switch {
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, apierror.New(insufficient.Error()))
	case errors.As(err, &mismatch):
		c.JSON(http.StatusBadRequest, apierror.New(mismatch.Error()))
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, apierror.New(transition.Error()))
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, apierror.New(invalid.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Resource not found"))
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, apierror.New("Not allowed"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}

// actorID extracts the authenticated user's id from the JWT claims.
func actorID(c *gin.Context) uuid.UUID {
	claims := middleware.GetClaims(c)
	id, _ := uuid.Parse(claims.UserID)
	return id
}

// actorLocationID extracts the authenticated user's location. Returns false
// (and writes the response) when the token carries no location, which means
// the account is not assigned to a store or warehouse.
func actorLocationID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims.LocationID == nil {
		c.JSON(http.StatusForbidden, apierror.New("Account has no assigned location"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(*claims.LocationID)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New("Account has no assigned location"))
		return uuid.Nil, false
	}
	return id, true
}
