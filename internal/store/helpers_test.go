package store

import (
	"github.com/palemoky/dynasty-timeline/internal/index"
	"github.com/palemoky/dynasty-timeline/internal/model"
)

func indexFor(st model.State) *index.Index {
	return index.Build(st)
}
