package inspect

import (
	"github.com/deploymenttheory/go-mbr/pkg/app"
)

// Validate validates an inspection request
func (r *Request) Validate() error {
	if r.ImagePath == "" {
		return app.NewError(app.ErrCodeInvalidInput, "image path is required", nil)
	}
	return nil
}
