package catalog

import (
	"time"

	"github.com/AngellusMortis/sxm-player/domain/model/unit"
)

// Entry is a finished unit sitting on disk.
type Entry struct {
	Unit       unit.Unit `json:"unit"`
	FilePath   string    `json:"file_path"`
	FinishedAt time.Time `json:"finished_at"`
}
