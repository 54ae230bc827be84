package packages

import (
	"context"

	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
)

var _ ports.ChangeDetector = EverythingDetector{}

// EverythingDetector reports every file as modified, forcing a full reload.
type EverythingDetector struct{}

// ModifiedFiles implements ports.ChangeDetector.
func (EverythingDetector) ModifiedFiles(context.Context) (domain.ModifiedFileSet, error) {
	return domain.EverythingModified, nil
}
