package handler

import (
	"net/http"
	"reflect"
	"strconv"

	"github.com/TheGeorge88/app-celulares/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
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
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
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

// queryInt parses an integer query parameter, falling back to def.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// respondError translates a domain error Kind into an HTTP status.
// Unknown errors are logged and returned as an opaque 500.
func respondError(c *gin.Context, err error) {
	switch apierror.KindOf(err) {
	case apierror.KindNotFound:
		c.JSON(http.StatusNotFound, apierror.FromError(err))
	case apierror.KindValidation:
		c.JSON(http.StatusBadRequest, apierror.FromError(err))
	case apierror.KindForbidden:
		c.JSON(http.StatusForbidden, apierror.FromError(err))
	case apierror.KindInvalidState, apierror.KindInsufficientStock, apierror.KindConflict:
		c.JSON(http.StatusConflict, apierror.FromError(err))
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unexpected error")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
