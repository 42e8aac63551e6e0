package render

import (
	"strconv"

	"github.com/google/uuid"
)

// runNamespace scopes the name-based run ids derived from seeds.
var runNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/goliatone/go-samplify/run"))

// Batch is one generation run handed to a renderer.
type Batch struct {
	RunID   uuid.UUID
	Shape   string
	Seed    uint64
	Seeded  bool
	Samples []any
}

// NewBatch stamps samples with a run id. Seeded runs get a stable id derived
// from the seed and shape so that repeated runs render identical output.
func NewBatch(shapeName string, seed uint64, seeded bool, samples []any) Batch {
	id := uuid.New()
	if seeded {
		id = uuid.NewSHA1(runNamespace, []byte(shapeName+"#"+strconv.FormatUint(seed, 10)))
	}
	if samples == nil {
		samples = []any{}
	}
	return Batch{
		RunID:   id,
		Shape:   shapeName,
		Seed:    seed,
		Seeded:  seeded,
		Samples: samples,
	}
}

// Len reports the number of samples in the batch.
func (b Batch) Len() int {
	return len(b.Samples)
}

// Single reports whether the batch holds exactly one sample.
func (b Batch) Single() bool {
	return len(b.Samples) == 1
}
