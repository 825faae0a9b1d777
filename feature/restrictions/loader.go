package restrictions

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates a new restrictions feature around an existing service. A nil
// service leaves the feature disabled.
func NewFeature(service *Service) *Feature {
	if service == nil {
		return &Feature{}
	}
	return &Feature{service: service, handler: NewHandler(service), enabled: true}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "restrictions"
}

// IsEnabled reports whether the feature has a working service behind it.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Service returns the service behind the feature, nil when disabled.
func (f *Feature) Service() *Service {
	return f.service
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
