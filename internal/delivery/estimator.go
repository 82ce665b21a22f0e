package delivery

import (
	"context"
	"hash/fnv"
)

// Estimator supplies a per-retailer delivery estimate in minutes. A real
// deployment plugs a maps provider in here; failures are tolerated by callers.
type Estimator interface {
	Estimate(ctx context.Context, retailerID, address string) (int, error)
}

// StaticEstimator derives a stable pseudo-distance from the retailer/address
// pair so estimates are deterministic without an external provider.
type StaticEstimator struct {
	BaseMins   int
	PerKmMins  int
	DefaultKms int
}

func NewStaticEstimator(baseMins, perKmMins, defaultKms int) *StaticEstimator {
	return &StaticEstimator{BaseMins: baseMins, PerKmMins: perKmMins, DefaultKms: defaultKms}
}

func (e *StaticEstimator) Estimate(_ context.Context, retailerID, address string) (int, error) {
	h := fnv.New32a()
	h.Write([]byte(retailerID))
	h.Write([]byte(address))
	kms := int(h.Sum32()%10) + e.DefaultKms
	return e.BaseMins + kms*e.PerKmMins, nil
}
