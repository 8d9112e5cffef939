package docsystem

import (
	models "atrium/internal/domain/models/docsystem"
)

// applyFolderUsage fills a folder's computed fields from its file list.
// The size is always re-summed from the full list rather than adjusted
// incrementally, so the size invariant self-heals after every operation.
func applyFolderUsage(folder *models.Folder, files []models.File, maxFolderSize int64) {
	if files == nil {
		files = []models.File{}
	}

	var total int64
	for i := range files {
		total += files[i].Size
	}

	folder.Files = files
	folder.Size = total
	folder.RemainingSpace = maxFolderSize - total
}
