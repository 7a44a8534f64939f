package edit

import (
	"fmt"
	"os"

	"github.com/deploymenttheory/go-mbr/internal/device"
	"github.com/deploymenttheory/go-mbr/pkg/app"
	"github.com/deploymenttheory/go-mbr/pkg/mbr"
)

// HandleInit writes an empty partition table and the boot signature. The
// bootstrap region of an existing image is kept as is.
func HandleInit(ctx *app.Context, req *InitRequest) (*InitResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	config := *ctx.Config
	config.CreateIfMissing = config.CreateIfMissing || req.Create

	_, statErr := os.Stat(req.ImagePath)
	created := os.IsNotExist(statErr) && config.CreateIfMissing

	dev, err := device.Create(req.ImagePath, &config)
	if err != nil {
		return nil, app.NewError(app.ErrCodeDeviceAccess, "cannot open image for writing", err)
	}
	defer dev.Close()

	response := &InitResponse{
		ImagePath: dev.Path(),
		Offset:    dev.Offset(),
		Created:   created,
	}

	if !created {
		if _, err := dev.ReadMBR(); err == nil {
			if !req.Force {
				return nil, app.NewError(app.ErrCodeInvalidInput,
					fmt.Sprintf("%s already contains a valid MBR; use --force to replace it", req.ImagePath), nil)
			}
			response.Replaced = true
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, app.NewError(app.ErrCodeDeviceAccess, "init cancelled before writing", err)
	}
	if err := dev.WriteMBR(mbr.Empty()); err != nil {
		return nil, app.NewError(app.ErrCodeEncodeFailed, "cannot write partition table", err)
	}
	if err := dev.Sync(); err != nil {
		return nil, app.NewError(app.ErrCodeDeviceAccess, "cannot sync image", err)
	}

	ctx.Info(fmt.Sprintf("Initialized empty partition table in %s at offset %d", response.ImagePath, response.Offset))

	return response, nil
}
