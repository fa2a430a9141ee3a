package handlers

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	youtubeLinkPattern = regexp.MustCompile(`^(https?://)?(www\.youtube\.com|youtu\.?be)/.+$`)
	registerOnce       sync.Once
)

// createRecommendationRequest 创建推荐的请求体
type createRecommendationRequest struct {
	Name        string `json:"name" form:"name" binding:"required,notblank"`
	YoutubeLink string `json:"youtubeLink" form:"youtubeLink" binding:"required,youtube"`
}

// RegisterValidators installs the custom tags on gin's validator and makes
// JSON bodies with unknown fields fail binding.
func RegisterValidators() {
	registerOnce.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("youtube", func(fl validator.FieldLevel) bool {
			return youtubeLinkPattern.MatchString(fl.Field().String())
		})
	})
}
